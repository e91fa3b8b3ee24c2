package storage

import (
	"context"

	"github.com/muzaproject/muza-bot/internal/models"
)

// Storage is the narrow set of operations the dialog and recommendation
// layers need. All writes are single-row, individually transactional and
// safe to repeat.
type Storage interface {
	// UpsertUser creates the user if absent.
	UpsertUser(ctx context.Context, userID int64) error

	// SetUserInterest adds (present=true) or removes (present=false) a
	// user-interest link. Adding creates the user if absent. Both
	// directions are idempotent.
	SetUserInterest(ctx context.Context, userID, interestID int64, present bool) error

	// GetUserInterests returns the user's selected interest labels,
	// ordered by interest id.
	GetUserInterests(ctx context.Context, userID int64) ([]string, error)

	// LookupInterestID resolves an interest label to its id.
	LookupInterestID(ctx context.Context, label string) (int64, bool, error)

	// FindMuseumsByCity matches the city case-insensitively (exact match).
	FindMuseumsByCity(ctx context.Context, city string, limit int) ([]models.Museum, error)

	// GetMuseumTags returns the museum's interest labels and whether the
	// museum has been through classification at all. classified=true with
	// zero labels means "classified, nothing applies".
	GetMuseumTags(ctx context.Context, museumID int64) (labels []string, classified bool, err error)

	// AddMuseumTag links a museum to an interest, insert-if-absent.
	AddMuseumTag(ctx context.Context, museumID, interestID int64) error

	// MarkMuseumTagged records that classification completed for the
	// museum, even when it produced no tags. Idempotent.
	MarkMuseumTagged(ctx context.Context, museumID int64) error

	// SeedInterests inserts any missing vocabulary labels.
	SeedInterests(ctx context.Context, labels []string) error

	// AddMuseum inserts a museum and fills in its id.
	AddMuseum(ctx context.Context, museum *models.Museum) error

	// CountMuseums reports how many museums are loaded.
	CountMuseums(ctx context.Context) (int, error)

	Close() error
}
