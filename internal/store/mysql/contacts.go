package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

func (s *Store) CreateContact(ctx context.Context, c *models.Contact) error {
	query := `INSERT INTO contacts (user_id, type, value) VALUES (?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query, c.UserID, c.Type, c.Value)
	if err != nil {
		return err
	}
	c.ID, err = result.LastInsertId()
	return err
}

func (s *Store) ContactsByUser(ctx context.Context, userID int64) ([]models.Contact, error) {
	query := `SELECT id, user_id, type, value FROM contacts WHERE user_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Type, &c.Value); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *Store) ContactForUser(ctx context.Context, userID, contactID int64) (*models.Contact, error) {
	query := `SELECT id, user_id, type, value FROM contacts WHERE id = ? AND user_id = ?`

	var c models.Contact
	err := s.db.QueryRowContext(ctx, query, contactID, userID).Scan(&c.ID, &c.UserID, &c.Type, &c.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateContact(ctx context.Context, c *models.Contact) error {
	query := `UPDATE contacts SET type = ?, value = ? WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, c.Type, c.Value, c.ID, c.UserID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the row does not exist or it belongs to someone else.
		if _, err := s.ContactForUser(ctx, c.UserID, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) DeleteContact(ctx context.Context, userID, contactID int64) error {
	query := `DELETE FROM contacts WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, contactID, userID)
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
