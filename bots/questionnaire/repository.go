package questionnaire

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Submission is one finished questionnaire.
type Submission struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	Age       int       `db:"age"`
	City      string    `db:"city"`
	CreatedAt time.Time `db:"created_at"`
}

// Repository persists finished questionnaires.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps the shared connection pool. A nil db yields a nil
// repository, which disables persistence.
func NewRepository(db *sqlx.DB) *Repository {
	if db == nil {
		return nil
	}
	return &Repository{db: db}
}

// Save inserts one submission. City may be empty when the step was skipped.
func (r *Repository) Save(ctx context.Context, s Submission) error {
	if r == nil {
		return nil
	}
	const q = `
		INSERT INTO questionnaire_submissions (user_id, name, age, city)
		VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, s.UserID, s.Name, s.Age, s.City)
	return err
}

// CountByUser reports how many questionnaires the user has completed.
func (r *Repository) CountByUser(ctx context.Context, userID int64) (int, error) {
	if r == nil {
		return 0, nil
	}
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM questionnaire_submissions WHERE user_id = $1`, userID)
	return n, err
}
