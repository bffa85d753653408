package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-contact-backend/internal/domain"
)

type contactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepository{db: db}
}

// Create appends the submission. The timestamp comes from the database
// clock so rows order consistently across instances.
func (r *contactRepository) Create(ctx context.Context, rec *domain.ContactFormRecord) error {
	query := `
		INSERT INTO contact_form (fullname, email, phone, enquiry_type, message, submitted_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, submitted_at`

	err := r.db.QueryRow(ctx, query,
		rec.FullName, rec.Email, rec.Phone, rec.EnquiryType, rec.Message,
	).Scan(&rec.ID, &rec.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert contact_form: %w", err)
	}
	return nil
}
