package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Contact struct {
	ID        uuid.UUID      `db:"id"`
	Phone     string         `db:"phone"`
	Name      sql.NullString `db:"name"`
	Email     sql.NullString `db:"email"`
	CreatedAt string         `db:"created_at"`
}

const sqlGetContactByPhone = `
SELECT * FROM contacts WHERE phone = $1`

func (s Store) GetContactByPhone(ctx context.Context, phone string) (*Contact, error) {
	var contact Contact
	err := s.db.GetContext(ctx, &contact, sqlGetContactByPhone, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get contact by phone", err)
		return nil, fmt.Errorf("failed to get contact by phone: %w", err)
	}
	return &contact, nil
}

const sqlUpsertContact = `
INSERT INTO contacts (phone, name, email)
VALUES ($1, $2, $3)
ON CONFLICT (phone) DO UPDATE
SET name = COALESCE(EXCLUDED.name, contacts.name),
    email = COALESCE(EXCLUDED.email, contacts.email)
RETURNING *`

func (s Store) UpsertContact(ctx context.Context, phone, name, email string) (*Contact, error) {
	var contact Contact
	err := s.db.GetContext(ctx, &contact, sqlUpsertContact, phone, nullIfEmpty(name), nullIfEmpty(email))
	if err != nil {
		s.logger.Error(ctx, "failed to upsert contact", err)
		return nil, fmt.Errorf("failed to upsert contact: %w", err)
	}
	return &contact, nil
}
