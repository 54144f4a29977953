package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopcart/shopcart/internal/apperr"
	"github.com/shopcart/shopcart/internal/model"
)

const cartID = "55555555-5555-4555-8555-555555555555"

func newCartFixture() (*fakeUserStore, *fakeProductStore, *fakeCartStore, *CartService) {
	users := newFakeUserStore()
	products := newFakeProductStore()
	carts := newFakeCartStore()
	svc := NewCartService(carts, users, products, nil)
	return users, products, carts, svc
}

func seedCart(users *fakeUserStore, carts *fakeCartStore, id, userID string, active bool, productIDs ...string) *model.Cart {
	cart := &model.Cart{
		ID:         id,
		UserID:     userID,
		ProductIDs: productIDs,
		IsActive:   active,
		CreatedAt:  time.Now().UTC(),
	}
	carts.carts[id] = cart
	if active {
		users.activeCarts[userID] = cart
	}
	return cart
}

func TestCartCreate(t *testing.T) {
	ctx := context.Background()
	users, products, carts, svc := newCartFixture()
	seedUser(users, aliceID, "Alice", "alice@example.com")
	seedProduct(products, widgetID, "Widget", aliceID)
	seedProduct(products, gadgetID, "Gadget", aliceID)

	cart, err := svc.Create(ctx, []string{widgetID, gadgetID}, aliceID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !cart.IsActive {
		t.Error("new cart should be active")
	}
	if !reflect.DeepEqual(cart.ProductIDs, []string{widgetID, gadgetID}) {
		t.Errorf("ProductIDs = %v", cart.ProductIDs)
	}
	if _, ok := carts.carts[cart.ID]; !ok {
		t.Error("cart not persisted")
	}
}

func TestCartCreate_DropsUnknownProducts(t *testing.T) {
	ctx := context.Background()
	users, products, _, svc := newCartFixture()
	seedUser(users, aliceID, "Alice", "alice@example.com")
	seedProduct(products, widgetID, "Widget", aliceID)

	// Unknown IDs are dropped without a per-item error.
	cart, err := svc.Create(ctx, []string{gadgetID, widgetID}, aliceID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !reflect.DeepEqual(cart.ProductIDs, []string{widgetID}) {
		t.Errorf("ProductIDs = %v, want only the resolvable one", cart.ProductIDs)
	}
}

func TestCartCreate_AllProductsUnknown(t *testing.T) {
	ctx := context.Background()
	users, _, _, svc := newCartFixture()
	seedUser(users, aliceID, "Alice", "alice@example.com")

	_, err := svc.Create(ctx, []string{widgetID, gadgetID}, aliceID)
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestCartCreate_ActiveCartExists(t *testing.T) {
	ctx := context.Background()
	users, products, carts, svc := newCartFixture()
	seedUser(users, aliceID, "Alice", "alice@example.com")
	seedProduct(products, widgetID, "Widget", aliceID)
	seedCart(users, carts, cartID, aliceID, true, widgetID)

	_, err := svc.Create(ctx, []string{widgetID}, aliceID)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCartCreate_UserMissing(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newCartFixture()

	_, err := svc.Create(ctx, []string{widgetID}, aliceID)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.Create(ctx, []string{widgetID}, "bad-id")
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestCartGet(t *testing.T) {
	ctx := context.Background()
	users, _, carts, svc := newCartFixture()
	seedCart(users, carts, cartID, aliceID, true, widgetID)

	tests := []struct {
		name     string
		cartID   string
		userID   string
		wantKind apperr.Kind
	}{
		{"owner", cartID, aliceID, 0},
		{"not_owner", cartID, bobID, apperr.Forbidden},
		{"missing", gadgetID, aliceID, apperr.NotFound},
		{"malformed_cart_id", "nope", aliceID, apperr.BadRequest},
		{"malformed_user_id", cartID, "nope", apperr.BadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cart, err := svc.Get(ctx, test.cartID, test.userID)
			if test.wantKind != 0 {
				if !apperr.IsKind(err, test.wantKind) {
					t.Fatalf("expected %v, got %v", test.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if cart.ID != test.cartID {
				t.Errorf("ID = %q", cart.ID)
			}
		})
	}
}

func TestCartUpdate_AppendsProducts(t *testing.T) {
	ctx := context.Background()
	users, products, carts, svc := newCartFixture()
	seedProduct(products, widgetID, "Widget", aliceID)
	seedProduct(products, gadgetID, "Gadget", aliceID)
	seedCart(users, carts, cartID, aliceID, true, widgetID)

	cart, err := svc.Update(ctx, cartID, UpdateCartInput{ProductIDs: []string{gadgetID, widgetID}}, aliceID)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Links are append-only and deduplicated; the pre-existing widget
	// link survives.
	if !reflect.DeepEqual(cart.ProductIDs, []string{widgetID, gadgetID}) {
		t.Errorf("ProductIDs = %v", cart.ProductIDs)
	}
}

func TestCartUpdate_Deactivate(t *testing.T) {
	ctx := context.Background()
	users, products, carts, svc := newCartFixture()
	seedProduct(products, widgetID, "Widget", aliceID)
	seedCart(users, carts, cartID, aliceID, true, widgetID)

	inactive := false
	cart, err := svc.Update(ctx, cartID, UpdateCartInput{
		ProductIDs: []string{widgetID},
		IsActive:   &inactive,
	}, aliceID)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cart.IsActive {
		t.Error("cart should be inactive")
	}

	// Inactive carts are immutable, checked before ownership.
	_, err = svc.Update(ctx, cartID, UpdateCartInput{ProductIDs: []string{widgetID}}, bobID)
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected bad request on inactive cart, got %v", err)
	}
}

func TestCartUpdate_NotOwner(t *testing.T) {
	ctx := context.Background()
	users, products, carts, svc := newCartFixture()
	seedProduct(products, widgetID, "Widget", aliceID)
	seedCart(users, carts, cartID, aliceID, true, widgetID)

	_, err := svc.Update(ctx, cartID, UpdateCartInput{ProductIDs: []string{widgetID}}, bobID)
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCartUpdate_NoResolvableProducts(t *testing.T) {
	ctx := context.Background()
	users, _, carts, svc := newCartFixture()
	seedCart(users, carts, cartID, aliceID, true, widgetID)

	for _, ids := range [][]string{nil, {}, {gadgetID}} {
		_, err := svc.Update(ctx, cartID, UpdateCartInput{ProductIDs: ids}, aliceID)
		if !apperr.IsKind(err, apperr.BadRequest) {
			t.Fatalf("expected bad request for %v, got %v", ids, err)
		}
	}
}

func TestCartRemove(t *testing.T) {
	ctx := context.Background()
	users, _, carts, svc := newCartFixture()
	seedCart(users, carts, cartID, aliceID, false, widgetID)

	_, err := svc.Remove(ctx, cartID, bobID)
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	removed, err := svc.Remove(ctx, cartID, aliceID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.ID != cartID {
		t.Errorf("removed ID = %q", removed.ID)
	}
	if _, ok := carts.carts[cartID]; ok {
		t.Error("cart still present after removal")
	}

	_, err = svc.Remove(ctx, cartID, aliceID)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
