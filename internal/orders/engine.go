// Package orders implements the cart-to-order flow: a user's cart is
// their single "new" order, and confirming it moves it into history
// and fires the follow-up notifications.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

// ErrInvalidQuantity rejects non-positive line quantities before any
// store work happens.
var ErrInvalidQuantity = errors.New("orders: quantity must be positive")

// Notifier receives the follow-up work a confirmation triggers. Calls
// must not block; delivery is asynchronous and at-least-once.
type Notifier interface {
	OrderConfirmed(order *models.OrderView, userEmail, userName string)
	RecomputeAvailability(shopID int64)
}

// Engine coordinates carts and orders on top of the store. It never
// stores totals: every view prices its lines from current listings.
type Engine struct {
	store    store.Store
	notifier Notifier
	logger   *zap.Logger
}

func New(st store.Store, n Notifier, logger *zap.Logger) *Engine {
	return &Engine{store: st, notifier: n, logger: logger}
}

// Cart returns the user's cart, creating it when absent. Repeated
// calls settle on the same order.
func (e *Engine) Cart(ctx context.Context, userID int64) (*models.OrderView, error) {
	cart, err := e.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.view(ctx, cart)
}

// AddLine puts quantity of a (product, shop) listing into the cart,
// merging into an existing line for the same pair. The stock check is
// advisory: nothing is reserved and a parallel order can still drain
// the listing.
func (e *Engine) AddLine(ctx context.Context, userID, productID, shopID int64, quantity int) (*models.OrderView, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := e.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing, err := e.store.Listing(ctx, productID, shopID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotAvailable
		}
		return nil, err
	}
	if listing.Quantity < quantity {
		return nil, store.ErrInsufficientStock
	}

	if err := e.store.AddCartLine(ctx, cart.ID, productID, shopID, quantity); err != nil {
		return nil, err
	}
	return e.view(ctx, cart)
}

// RemoveLine deletes one line from the caller's cart. Lines of other
// users or of already-confirmed orders look absent.
func (e *Engine) RemoveLine(ctx context.Context, userID, lineID int64) (*models.OrderView, error) {
	if err := e.store.DeleteCartLine(ctx, userID, lineID); err != nil {
		return nil, err
	}
	return e.Cart(ctx, userID)
}

// Confirm turns the cart into a confirmed order bound to one of the
// caller's contacts, then hands the follow-ups to the notifier. The
// store checks the preconditions in order; the first failure wins.
func (e *Engine) Confirm(ctx context.Context, userID, contactID int64) (*models.OrderView, error) {
	orderID, err := e.store.ConfirmCart(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	order, err := e.store.OrderForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	view, err := e.view(ctx, order)
	if err != nil {
		return nil, err
	}

	e.dispatchConfirmed(ctx, userID, view)
	return view, nil
}

// dispatchConfirmed enqueues the confirmation email and one
// availability refresh per distinct shop in the order. The order is
// already committed, so failures here are logged, never surfaced.
func (e *Engine) dispatchConfirmed(ctx context.Context, userID int64, view *models.OrderView) {
	if e.notifier == nil {
		return
	}

	user, err := e.store.UserByID(ctx, userID)
	if err != nil {
		e.logger.Error("order confirmed but user lookup failed, skipping notifications",
			zap.Int64("order_id", view.ID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return
	}

	e.notifier.OrderConfirmed(view, user.Email, user.FullName())

	seen := make(map[int64]bool)
	for _, item := range view.Items {
		if seen[item.Shop.ID] {
			continue
		}
		seen[item.Shop.ID] = true
		e.notifier.RecomputeAvailability(item.Shop.ID)
	}
}

// History lists the caller's orders excluding the cart, newest first.
func (e *Engine) History(ctx context.Context, userID int64) ([]models.OrderView, error) {
	rows, err := e.store.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(rows))
	for i := range rows {
		v, err := e.view(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Get returns one of the caller's orders. Foreign or unknown ids look
// the same: not found.
func (e *Engine) Get(ctx context.Context, userID, orderID int64) (*models.OrderView, error) {
	order, err := e.store.OrderForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return e.view(ctx, order)
}

// view assembles the API shape of an order. The total is the sum of
// current listing price times quantity over all lines; a line whose
// listing disappeared is a data-integrity fault, never silently
// skipped.
func (e *Engine) view(ctx context.Context, o *models.Order) (*models.OrderView, error) {
	items, err := e.store.OrderLineViews(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		listing, err := e.store.Listing(ctx, item.Product.ID, item.Shop.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("order %d line %d has no listing: %w", o.ID, item.ID, store.ErrIntegrity)
			}
			return nil, err
		}
		total = total.Add(listing.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	view := &models.OrderView{
		ID:        o.ID,
		CreatedAt: o.CreatedAt,
		Status:    o.Status,
		Items:     items,
		TotalSum:  models.NewMoney(total),
	}

	if o.ContactID != nil {
		contact, err := e.store.ContactForUser(ctx, o.UserID, *o.ContactID)
		switch {
		case err == nil:
			view.Contact = contact
		case errors.Is(err, store.ErrNotFound):
			// Contact deleted after confirmation; the order stays
			// readable without it.
		default:
			return nil, err
		}
	}
	return view, nil
}
