package repository

import (
	"context"
	"errors"

	"nychousing-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// quizResultsKey identifies the single stored quiz row
const quizResultsKey = "current"

// SessionRepository handles database operations for quiz results and reviews
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetQuizResults retrieves the stored quiz results, or nil if none exist
func (r *SessionRepository) GetQuizResults(ctx context.Context) (*models.PreferenceVector, error) {
	prefs := &models.PreferenceVector{}
	query := `
		SELECT answers
		FROM quiz_results
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, quizResultsKey).Scan(prefs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return prefs, nil
}

// SaveQuizResults replaces the stored quiz results
func (r *SessionRepository) SaveQuizResults(ctx context.Context, prefs *models.PreferenceVector) error {
	if prefs == nil {
		_, err := r.db.Exec(ctx, `DELETE FROM quiz_results WHERE id = $1`, quizResultsKey)
		return err
	}

	query := `
		INSERT INTO quiz_results (id, answers, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			answers = EXCLUDED.answers,
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query, quizResultsKey, *prefs)
	return err
}

// ListReviews retrieves the reviews of a neighborhood, newest first
func (r *SessionRepository) ListReviews(ctx context.Context, neighborhood string) ([]models.Review, error) {
	query := `
		SELECT id, neighborhood, author, rating, comment, created_at
		FROM neighborhood_reviews
		WHERE neighborhood = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, neighborhood)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.Neighborhood,
			&review.Author,
			&review.Rating,
			&review.Comment,
			&review.Date,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// AddReview stores a review
func (r *SessionRepository) AddReview(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO neighborhood_reviews (id, neighborhood, author, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.Neighborhood,
		review.Author,
		review.Rating,
		review.Comment,
		review.Date,
	)
	return err
}

// CountReviews returns the number of stored reviews
func (r *SessionRepository) CountReviews(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM neighborhood_reviews`).Scan(&count)
	return count, err
}
