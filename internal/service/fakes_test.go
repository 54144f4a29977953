package service

import (
	"context"
	"sort"

	"github.com/shopcart/shopcart/internal/model"
	"github.com/shopcart/shopcart/internal/repository"
	"github.com/shopcart/shopcart/internal/validate"
)

// fakeUserStore is an in-memory UserStore. It returns the same sentinel
// errors the repository does so services classify them identically.
type fakeUserStore struct {
	users       map[string]*model.User
	activeCarts map[string]*model.Cart
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       make(map[string]*model.User),
		activeCarts: make(map[string]*model.Cart),
	}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetUserWithActiveCart(ctx context.Context, id string) (*model.User, *model.Cart, error) {
	user, err := f.GetUserByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	cart, ok := f.activeCarts[id]
	if !ok {
		return user, nil, nil
	}
	clone := *cart
	return user, &clone, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context, order validate.SortOrder, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	for _, u := range f.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		if order == validate.SortDesc {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return page(users, limit, offset), nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeProductStore is an in-memory ProductStore preserving insertion
// order for listings.
type fakeProductStore struct {
	products map[string]*model.Product
	order    []string
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]*model.Product)}
}

func (f *fakeProductStore) CreateProduct(_ context.Context, product *model.Product) error {
	clone := *product
	f.products[product.ID] = &clone
	f.order = append(f.order, product.ID)
	return nil
}

func (f *fakeProductStore) GetProductByID(_ context.Context, id string) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductStore) ListProducts(_ context.Context, order validate.SortOrder, limit, offset int, ownerID string) ([]*model.Product, error) {
	var products []*model.Product
	for _, id := range f.order {
		p, ok := f.products[id]
		if !ok || (ownerID != "" && p.OwnerID != ownerID) {
			continue
		}
		clone := *p
		products = append(products, &clone)
	}
	if order == validate.SortDesc {
		for i, j := 0, len(products)-1; i < j; i, j = i+1, j-1 {
			products[i], products[j] = products[j], products[i]
		}
	}
	return page(products, limit, offset), nil
}

func (f *fakeProductStore) UpdateProduct(_ context.Context, product *model.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductStore) DeleteProduct(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

// fakeCartStore is an in-memory CartStore mirroring the store's
// append-only, deduplicated product links and one-active-per-user rule.
type fakeCartStore struct {
	carts map[string]*model.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*model.Cart)}
}

func (f *fakeCartStore) CreateCart(_ context.Context, cart *model.Cart) error {
	if cart.IsActive {
		for _, c := range f.carts {
			if c.UserID == cart.UserID && c.IsActive {
				return repository.ErrActiveCartExists
			}
		}
	}
	clone := *cart
	clone.ProductIDs = dedupe(cart.ProductIDs)
	f.carts[cart.ID] = &clone
	return nil
}

func (f *fakeCartStore) GetCartByID(_ context.Context, id string) (*model.Cart, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	clone := *cart
	clone.ProductIDs = append([]string(nil), cart.ProductIDs...)
	return &clone, nil
}

func (f *fakeCartStore) UpdateCart(_ context.Context, id string, productIDs []string, isActive *bool) (*model.Cart, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	if isActive != nil {
		cart.IsActive = *isActive
	}
	cart.ProductIDs = dedupe(append(cart.ProductIDs, productIDs...))
	clone := *cart
	clone.ProductIDs = append([]string(nil), cart.ProductIDs...)
	return &clone, nil
}

func (f *fakeCartStore) DeleteCart(_ context.Context, id string) error {
	if _, ok := f.carts[id]; !ok {
		return repository.ErrCartNotFound
	}
	delete(f.carts, id)
	return nil
}

// fakeHasher marks the plaintext so tests can assert hashing happened
// without paying for a real key derivation.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
