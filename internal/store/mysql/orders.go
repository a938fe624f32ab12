package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

func (s *Store) GetOrCreateCart(ctx context.Context, userID int64) (*models.Order, error) {
	// The (user_id, cart_marker) unique key turns concurrent creates
	// into a get: LAST_INSERT_ID(id) hands back the existing row's id
	// on conflict.
	query := `
		INSERT INTO orders (user_id, status) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`

	result, err := s.db.ExecContext(ctx, query, userID, models.StatusNew)
	if err != nil {
		return nil, err
	}
	cartID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.orderByID(ctx, cartID)
}

func (s *Store) orderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	query := `SELECT id, user_id, status, contact_id, dt FROM orders WHERE id = ?`

	var o models.Order
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.UserID, &o.Status, &o.ContactID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *Store) AddCartLine(ctx context.Context, orderID, productID, shopID int64, quantity int) error {
	query := `
		INSERT INTO order_lines (order_id, product_id, shop_id, quantity)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`

	_, err := s.db.ExecContext(ctx, query, orderID, productID, shopID, quantity)
	return err
}

func (s *Store) DeleteCartLine(ctx context.Context, userID, lineID int64) error {
	// The join scopes the delete to the caller's own cart.
	query := `
		DELETE ol FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE ol.id = ? AND o.user_id = ? AND o.status = ?`

	result, err := s.db.ExecContext(ctx, query, lineID, userID, models.StatusNew)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ConfirmCart(ctx context.Context, userID, contactID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// 1. --- Lock the cart row so two confirms cannot both pass ---
	var cartID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM orders WHERE user_id = ? AND status = ? FOR UPDATE`,
		userID, models.StatusNew).Scan(&cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrNoCart
		}
		return 0, err
	}

	// 2. --- The cart must hold at least one line ---
	var lineCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_lines WHERE order_id = ?`, cartID).Scan(&lineCount)
	if err != nil {
		return 0, err
	}
	if lineCount == 0 {
		return 0, store.ErrEmptyCart
	}

	// 3. --- The contact must belong to the caller ---
	var ownedContact int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM contacts WHERE id = ? AND user_id = ?`,
		contactID, userID).Scan(&ownedContact)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrInvalidContact
		}
		return 0, err
	}

	// 4. --- Flip status and bind the contact, exactly once ---
	result, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = ?, contact_id = ? WHERE id = ? AND status = ?`,
		models.StatusConfirmed, contactID, cartID, models.StatusNew)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, store.ErrNoCart
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return cartID, nil
}

func (s *Store) OrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	query := `
		SELECT id, user_id, status, contact_id, dt
		FROM orders
		WHERE user_id = ? AND status <> ?
		ORDER BY dt DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, models.StatusNew)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.ContactID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) OrderForUser(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	query := `
		SELECT id, user_id, status, contact_id, dt
		FROM orders
		WHERE id = ? AND user_id = ? AND status <> ?`

	var o models.Order
	err := s.db.QueryRowContext(ctx, query, orderID, userID, models.StatusNew).Scan(
		&o.ID, &o.UserID, &o.Status, &o.ContactID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *Store) OrderLineViews(ctx context.Context, orderID int64) ([]models.OrderLineView, error) {
	query := `
		SELECT ol.id, ol.quantity,
		       p.id, p.name, p.slug, p.image, c.id, c.name, c.slug,
		       s.id, s.name, s.url
		FROM order_lines ol
		JOIN products p ON p.id = ol.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN shops s ON s.id = ol.shop_id
		WHERE ol.order_id = ?
		ORDER BY ol.id`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]models.OrderLineView, 0)
	for rows.Next() {
		var v models.OrderLineView
		if err := rows.Scan(&v.ID, &v.Quantity,
			&v.Product.ID, &v.Product.Name, &v.Product.Slug, &v.Product.Image,
			&v.Product.Category.ID, &v.Product.Category.Name, &v.Product.Category.Slug,
			&v.Shop.ID, &v.Shop.Name, &v.Shop.URL); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
