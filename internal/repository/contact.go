package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tourism/internal/database"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const contactColumns = `id, name, email, phone, subject, message, status, created_at, updated_at`

type ContactRepository struct {
	db database.DBTX
}

func NewContactRepository(db database.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func scanContact(row pgx.Row) (model.ContactForm, error) {
	var c model.ContactForm
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Subject,
		&c.Message,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *ContactRepository) Create(ctx context.Context, req model.CreateContactRequest) (*model.ContactForm, error) {
	c, err := scanContact(r.db.QueryRow(ctx, `
		INSERT INTO contact_forms (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contactColumns,
		req.Name, req.Email, req.Phone, req.Subject, req.Message,
	))
	if err != nil {
		return nil, fmt.Errorf("insert contact form: %w", err)
	}
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context, q model.ListContactQuery) ([]model.ContactForm, int64, error) {
	var w where
	if q.Status != "" {
		w.add(`status = ?`, q.Status)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_forms`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact forms: %w", err)
	}

	limit, args := w.page(q.Limit, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contact_forms`+w.String()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact forms: %w", err)
	}
	forms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ContactForm, error) {
		return scanContact(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan contact forms: %w", err)
	}
	return forms, total, nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ContactStatus) (*model.ContactForm, error) {
	c, err := scanContact(r.db.QueryRow(ctx, `
		UPDATE contact_forms SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+contactColumns, id, status))
	if err != nil {
		return nil, notFound("contact_forms", err)
	}
	return &c, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "contact_forms", id)
}
