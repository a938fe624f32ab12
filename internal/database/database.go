package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open creates the MySQL connection pool. The DSN must carry
// parseTime=true so TIMESTAMP columns scan into time.Time.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the schema. Every statement is idempotent, so
// running it on every start is safe.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		email VARCHAR(254) NOT NULL,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS shops (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		url VARCHAR(255) NULL,
		UNIQUE KEY uq_shops_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		slug VARCHAR(120) NOT NULL,
		UNIQUE KEY uq_categories_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS category_shops (
		category_id BIGINT NOT NULL,
		shop_id BIGINT NOT NULL,
		PRIMARY KEY (category_id, shop_id),
		FOREIGN KEY (category_id) REFERENCES categories (id),
		FOREIGN KEY (shop_id) REFERENCES shops (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		category_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(280) NOT NULL,
		image VARCHAR(255) NULL,
		UNIQUE KEY uq_products_category_name (category_id, name),
		FOREIGN KEY (category_id) REFERENCES categories (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS product_listings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		shop_id BIGINT NOT NULL,
		external_id BIGINT NULL,
		name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL DEFAULT 0,
		price DECIMAL(10,2) NOT NULL,
		price_rrc DECIMAL(10,2) NOT NULL,
		UNIQUE KEY uq_listings_product_shop (product_id, shop_id),
		FOREIGN KEY (product_id) REFERENCES products (id),
		FOREIGN KEY (shop_id) REFERENCES shops (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS listing_parameters (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		listing_id BIGINT NOT NULL,
		name VARCHAR(100) NOT NULL,
		value VARCHAR(255) NOT NULL,
		UNIQUE KEY uq_listing_parameters (listing_id, name),
		FOREIGN KEY (listing_id) REFERENCES product_listings (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS contacts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		type VARCHAR(10) NOT NULL,
		value VARCHAR(255) NOT NULL,
		KEY idx_contacts_user (user_id),
		FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	// cart_marker is 1 only while status is 'new', so the unique key
	// allows exactly one cart per user and any number of past orders.
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'new',
		contact_id BIGINT NULL,
		dt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		cart_marker TINYINT AS (IF(status = 'new', 1, NULL)) STORED,
		UNIQUE KEY uq_orders_user_cart (user_id, cart_marker),
		KEY idx_orders_user (user_id),
		FOREIGN KEY (user_id) REFERENCES users (id),
		FOREIGN KEY (contact_id) REFERENCES contacts (id) ON DELETE SET NULL
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS order_lines (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		shop_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		UNIQUE KEY uq_order_lines (order_id, product_id, shop_id),
		FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products (id),
		FOREIGN KEY (shop_id) REFERENCES shops (id)
	) ENGINE=InnoDB`,
}
