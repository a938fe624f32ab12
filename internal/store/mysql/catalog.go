package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

// ImportCatalog applies one price-list file in a single transaction.
// Shops, categories and products are get-or-created by their natural
// keys; listings are replaced per (product, shop).
func (s *Store) ImportCatalog(ctx context.Context, snap *models.CatalogImport) (*models.ImportResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	shopID, err := upsertShop(ctx, tx, snap.ShopName, snap.ShopURL)
	if err != nil {
		return nil, fmt.Errorf("import shop %q: %w", snap.ShopName, err)
	}
	res := &models.ImportResult{ShopID: shopID}

	for _, name := range snap.Categories {
		if _, err := ensureCategory(ctx, tx, name, shopID); err != nil {
			return nil, fmt.Errorf("import category %q: %w", name, err)
		}
		res.Categories++
	}

	for _, g := range snap.Goods {
		categoryID, err := ensureCategory(ctx, tx, g.Category, shopID)
		if err != nil {
			return nil, fmt.Errorf("import good %q: %w", g.Name, err)
		}

		productID, created, err := ensureProduct(ctx, tx, categoryID, g.Name, g.Image)
		if err != nil {
			return nil, fmt.Errorf("import good %q: %w", g.Name, err)
		}
		if created {
			res.Products++
		}
		if g.Image != "" {
			res.ImageProducts = append(res.ImageProducts, productID)
		}

		if err := upsertListing(ctx, tx, productID, shopID, &g); err != nil {
			return nil, fmt.Errorf("import good %q: %w", g.Name, err)
		}
		res.Listings++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func upsertShop(ctx context.Context, tx *sql.Tx, name, url string) (int64, error) {
	// LAST_INSERT_ID(id) makes the upsert return the existing row's id
	// on conflict.
	query := `
		INSERT INTO shops (name, url) VALUES (?, NULLIF(?, ''))
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), url = COALESCE(NULLIF(?, ''), url)`

	result, err := tx.ExecContext(ctx, query, name, url, url)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func ensureCategory(ctx context.Context, tx *sql.Tx, name string, shopID int64) (int64, error) {
	query := `
		INSERT INTO categories (name, slug) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`

	result, err := tx.ExecContext(ctx, query, name, slug.Make(name))
	if err != nil {
		return 0, err
	}
	categoryID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT IGNORE INTO category_shops (category_id, shop_id) VALUES (?, ?)`,
		categoryID, shopID)
	return categoryID, err
}

func ensureProduct(ctx context.Context, tx *sql.Tx, categoryID int64, name, image string) (int64, bool, error) {
	query := `
		INSERT INTO products (category_id, name, slug, image) VALUES (?, ?, ?, NULLIF(?, ''))
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), image = COALESCE(NULLIF(?, ''), image)`

	result, err := tx.ExecContext(ctx, query, categoryID, name, slug.Make(name), image, image)
	if err != nil {
		return 0, false, err
	}
	productID, err := result.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	return productID, affected == 1, nil
}

func upsertListing(ctx context.Context, tx *sql.Tx, productID, shopID int64, g *models.CatalogGood) error {
	query := `
		INSERT INTO product_listings (product_id, shop_id, external_id, name, quantity, price, price_rrc)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			id = LAST_INSERT_ID(id),
			external_id = VALUES(external_id),
			name = VALUES(name),
			quantity = VALUES(quantity),
			price = VALUES(price),
			price_rrc = VALUES(price_rrc)`

	result, err := tx.ExecContext(ctx, query,
		productID, shopID, g.ExternalID, g.Name, g.Quantity, g.Price, g.PriceRRC)
	if err != nil {
		return err
	}
	listingID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	// Parameters are replaced wholesale on every import.
	if _, err := tx.ExecContext(ctx, `DELETE FROM listing_parameters WHERE listing_id = ?`, listingID); err != nil {
		return err
	}
	for _, p := range g.Parameters {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO listing_parameters (listing_id, name, value) VALUES (?, ?, ?)`,
			listingID, p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Shops(ctx context.Context) ([]models.Shop, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, url FROM shops ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := make([]models.Shop, 0)
	for rows.Next() {
		var sh models.Shop
		if err := rows.Scan(&sh.ID, &sh.Name, &sh.URL); err != nil {
			return nil, err
		}
		shops = append(shops, sh)
	}
	return shops, rows.Err()
}

func (s *Store) Products(ctx context.Context, categoryID int64) ([]models.ProductView, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT p.id, p.name, p.slug, p.image, c.id, c.name, c.slug
		FROM products p
		JOIN categories c ON c.id = p.category_id`)
	args := []interface{}{}

	if categoryID != 0 {
		sb.WriteString(" WHERE p.category_id = ?")
		args = append(args, categoryID)
	}
	sb.WriteString(" ORDER BY p.id")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.ProductView, 0)
	for rows.Next() {
		var p models.ProductView
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Image,
			&p.Category.ID, &p.Category.Name, &p.Category.Slug); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) Listing(ctx context.Context, productID, shopID int64) (*models.ProductListing, error) {
	query := `
		SELECT id, product_id, shop_id, external_id, name, quantity, price, price_rrc
		FROM product_listings
		WHERE product_id = ? AND shop_id = ?`

	var l models.ProductListing
	err := s.db.QueryRowContext(ctx, query, productID, shopID).Scan(
		&l.ID, &l.ProductID, &l.ShopID, &l.ExternalID, &l.Name, &l.Quantity, &l.Price, &l.PriceRRC,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *Store) ListingsByShop(ctx context.Context, shopID int64) ([]models.ProductListing, error) {
	query := `
		SELECT id, product_id, shop_id, external_id, name, quantity, price, price_rrc
		FROM product_listings
		WHERE shop_id = ?
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]models.ProductListing, 0)
	for rows.Next() {
		var l models.ProductListing
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ShopID, &l.ExternalID,
			&l.Name, &l.Quantity, &l.Price, &l.PriceRRC); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (s *Store) SearchListings(ctx context.Context, f store.ListingFilter) ([]models.ListingView, error) {
	// 1. --- Build the query dynamically based on filters ---
	var sb strings.Builder
	sb.WriteString(`
		SELECT l.id, l.name, l.quantity, l.price, l.price_rrc,
		       p.id, p.name, p.slug, p.image, c.id, c.name, c.slug,
		       s.id, s.name, s.url
		FROM product_listings l
		JOIN products p ON p.id = l.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN shops s ON s.id = l.shop_id
		WHERE 1=1`)
	args := []interface{}{}

	if f.ShopID != 0 {
		sb.WriteString(" AND l.shop_id = ?")
		args = append(args, f.ShopID)
	}
	if f.CategoryID != 0 {
		sb.WriteString(" AND p.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Search != "" {
		sb.WriteString(" AND (LOWER(l.name) LIKE ? OR LOWER(p.name) LIKE ?)")
		pattern := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, pattern, pattern)
	}
	sb.WriteString(" ORDER BY l.id")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]models.ListingView, 0)
	for rows.Next() {
		var v models.ListingView
		if err := rows.Scan(&v.ID, &v.Name, &v.Quantity, &v.Price, &v.PriceRRC,
			&v.Product.ID, &v.Product.Name, &v.Product.Slug, &v.Product.Image,
			&v.Product.Category.ID, &v.Product.Category.Name, &v.Product.Category.Slug,
			&v.Shop.ID, &v.Shop.Name, &v.Shop.URL); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 2. --- Attach parameters per listing ---
	for i := range views {
		params, err := s.listingParameters(ctx, views[i].ID)
		if err != nil {
			return nil, err
		}
		views[i].Parameters = params
	}
	return views, nil
}

func (s *Store) listingParameters(ctx context.Context, listingID int64) ([]models.ListingParameter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM listing_parameters WHERE listing_id = ? ORDER BY name`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	params := make([]models.ListingParameter, 0)
	for rows.Next() {
		var p models.ListingParameter
		if err := rows.Scan(&p.Name, &p.Value); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, rows.Err()
}
