package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopcart/shopcart/internal/apperr"
	"github.com/shopcart/shopcart/internal/model"
)

const (
	widgetID = "33333333-3333-4333-8333-333333333333"
	gadgetID = "44444444-4444-4444-8444-444444444444"
)

func newProductFixture() (*fakeUserStore, *fakeProductStore, *ProductService) {
	users := newFakeUserStore()
	products := newFakeProductStore()
	svc := NewProductService(products, newUserService(users), nil)
	return users, products, svc
}

func seedProduct(store *fakeProductStore, id, name, ownerID string) *model.Product {
	product := &model.Product{
		ID:        id,
		Name:      name,
		Price:     9.99,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	store.products[id] = product
	store.order = append(store.order, id)
	return product
}

func TestProductCreate(t *testing.T) {
	ctx := context.Background()
	users, products, svc := newProductFixture()
	seedUser(users, aliceID, "Alice", "alice@example.com")

	desc := "A fine widget"
	product, err := svc.Create(ctx, CreateProductInput{
		Name:        "Widget",
		Description: &desc,
		Price:       12.50,
		OwnerID:     aliceID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if product.OwnerID != aliceID {
		t.Errorf("OwnerID = %q", product.OwnerID)
	}
	if _, ok := products.products[product.ID]; !ok {
		t.Error("product not persisted")
	}
}

func TestProductCreate_OwnerMissing(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newProductFixture()

	_, err := svc.Create(ctx, CreateProductInput{
		Name:    "Widget",
		Price:   12.50,
		OwnerID: aliceID,
	})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.Create(ctx, CreateProductInput{
		Name:    "Widget",
		Price:   12.50,
		OwnerID: "bad-id",
	})
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestProductGet(t *testing.T) {
	ctx := context.Background()
	_, products, svc := newProductFixture()
	seedProduct(products, widgetID, "Widget", aliceID)

	product, err := svc.Get(ctx, widgetID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if product.Name != "Widget" {
		t.Errorf("Name = %q", product.Name)
	}

	_, err = svc.Get(ctx, gadgetID)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductList_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	_, products, svc := newProductFixture()
	seedProduct(products, widgetID, "Widget", aliceID)
	seedProduct(products, gadgetID, "Gadget", bobID)

	listed, err := svc.List(ctx, ListProductsInput{OwnerID: aliceID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != widgetID {
		t.Fatalf("expected only the owner's product, got %d", len(listed))
	}

	// No owner given means no filter.
	listed, err = svc.List(ctx, ListProductsInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected all products without an owner filter, got %d", len(listed))
	}
}

func TestProductUpdate(t *testing.T) {
	ctx := context.Background()
	_, products, svc := newProductFixture()
	seedProduct(products, widgetID, "Widget", aliceID)

	price := 19.99
	product, err := svc.Update(ctx, widgetID, UpdateProductInput{Price: &price}, aliceID)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if product.Price != 19.99 {
		t.Errorf("Price = %v", product.Price)
	}
	if product.Name != "Widget" {
		t.Errorf("untouched name changed: %q", product.Name)
	}
}

func TestProductUpdate_NotOwner(t *testing.T) {
	ctx := context.Background()
	_, products, svc := newProductFixture()
	seedProduct(products, widgetID, "Widget", aliceID)

	price := 19.99
	_, err := svc.Update(ctx, widgetID, UpdateProductInput{Price: &price}, bobID)
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if products.products[widgetID].Price != 9.99 {
		t.Error("product changed despite forbidden update")
	}
}

func TestProductRemove(t *testing.T) {
	ctx := context.Background()
	_, products, svc := newProductFixture()
	seedProduct(products, widgetID, "Widget", aliceID)

	tests := []struct {
		name        string
		id          string
		requesterID string
		wantKind    apperr.Kind
	}{
		{"not_owner", widgetID, bobID, apperr.Forbidden},
		{"malformed_product_id", "nope", aliceID, apperr.BadRequest},
		{"malformed_requester_id", widgetID, "nope", apperr.BadRequest},
		{"owner", widgetID, aliceID, 0},
		{"already_gone", widgetID, aliceID, apperr.NotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			product, err := svc.Remove(ctx, test.id, test.requesterID)
			if test.wantKind != 0 {
				if !apperr.IsKind(err, test.wantKind) {
					t.Fatalf("expected %v, got %v", test.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if product.ID != test.id {
				t.Errorf("removed ID = %q", product.ID)
			}
		})
	}
}
