package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// AnonymousAuthor replaces a blank review author
	AnonymousAuthor = "Anonymous"
	// DefaultRating is used when a review omits its rating
	DefaultRating   = 5
	MinRating       = 1
	MaxRating       = 5
)

var (
	ErrEmptyComment     = errors.New("review comment is required")
	ErrRatingNotInteger = errors.New("rating must be an integer between 1 and 5")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// Review is a user-submitted neighborhood review
type Review struct {
	ID           uuid.UUID `json:"id"`
	Neighborhood string    `json:"neighborhood"`
	Author       string    `json:"author"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
}

// NewReview validates raw review input and builds a review dated now.
// rating may be nil, a JSON number or a numeric string.
func NewReview(neighborhood, author string, rating interface{}, comment string, now time.Time) (*Review, error) {
	if strings.TrimSpace(author) == "" {
		author = AnonymousAuthor
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ErrEmptyComment
	}

	r, err := ParseRating(rating)
	if err != nil {
		return nil, err
	}

	return &Review{
		ID:           uuid.New(),
		Neighborhood: neighborhood,
		Author:       author,
		Rating:       r,
		Comment:      comment,
		Date:         now,
	}, nil
}

// ParseRating converts a decoded JSON rating into an integer in [1,5]
func ParseRating(raw interface{}) (int, error) {
	var value int
	switch v := raw.(type) {
	case nil:
		value = DefaultRating
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, ErrRatingNotInteger
		}
		value = int(v)
	case int:
		value = v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, ErrRatingNotInteger
		}
		value = n
	default:
		return 0, ErrRatingNotInteger
	}

	if value < MinRating || value > MaxRating {
		return 0, ErrRatingOutOfRange
	}
	return value, nil
}
