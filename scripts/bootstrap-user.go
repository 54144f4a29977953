// Command bootstrap-user seeds an initial user account, for local
// development and fresh deployments.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/shopcart/internal/auth"
	"github.com/shopcart/shopcart/internal/model"
	"github.com/shopcart/shopcart/internal/repository"
)

type output struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		username    = flag.String("username", "admin", "Username for the seeded account")
		email       = flag.String("email", "admin@shopcart.local", "User email")
		password    = flag.String("password", "", "Plaintext password (required)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hasher := auth.NewHasher(auth.Params{})
	hash, err := hasher.Hash(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			fmt.Fprintln(os.Stderr, "a user with this email already exists")
		} else {
			fmt.Fprintln(os.Stderr, "create user:", err)
		}
		os.Exit(1)
	}

	out := output{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	if *format == "json" {
		_ = json.NewEncoder(os.Stdout).Encode(out)
		return
	}

	fmt.Printf("user created\n  id:       %s\n  username: %s\n  email:    %s\n", out.UserID, out.Username, out.Email)
}
