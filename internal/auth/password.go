// Package auth provides credential hashing for stored passwords.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id defaults (OWASP recommended minimum).
const (
	DefaultTime    = 3
	DefaultMemory  = 64 * 1024 // 64 MB
	DefaultThreads = 4

	keyLen  = 32
	saltLen = 16
)

var (
	// ErrInvalidHash indicates the hash format is invalid.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the hash version is not supported.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// Params holds the Argon2id work factor.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// Hasher produces salted one-way Argon2id hashes of plaintext
// credentials.
type Hasher struct {
	params Params
}

// NewHasher creates a Hasher with the given work factor. Zero fields
// fall back to the defaults.
func NewHasher(params Params) *Hasher {
	if params.Time == 0 {
		params.Time = DefaultTime
	}
	if params.Memory == 0 {
		params.Memory = DefaultMemory
	}
	if params.Threads == 0 {
		params.Threads = DefaultThreads
	}
	return &Hasher{params: params}
}

// Hash creates an Argon2id hash of the given password.
// Returns the hash in PHC string format.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		keyLen,
	)

	// PHC string format:
	// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		b64Salt,
		b64Hash,
	), nil
}

// Verify checks if the password matches the encoded hash.
// Uses constant-time comparison to prevent timing attacks.
//
// The HTTP API itself has no login flow; Verify is the decode
// counterpart of Hash, kept exported so operators and future
// credential checks can validate stored hashes without reimplementing
// the PHC parsing.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidHash
	}

	// Recompute with the parameters embedded in the hash, not the
	// hasher's current ones, so old hashes stay verifiable.
	computedHash := argon2.IDKey(
		[]byte(password),
		salt,
		time,
		memory,
		threads,
		uint32(len(expectedHash)),
	)

	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1, nil
}
