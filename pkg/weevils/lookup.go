package weevils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[-A-Za-z0-9_]+$`)

// LookupKey is a validated identifier-or-slug.
type LookupKey struct {
	ID   uuid.UUID
	Slug string
}

// IsID reports whether the key is an identifier rather than a slug.
func (k LookupKey) IsID() bool {
	return k.ID != uuid.Nil
}

// String returns the key as sent in a path or query.
func (k LookupKey) String() string {
	if k.IsID() {
		return k.ID.String()
	}

	return k.Slug
}

// IsUUID reports whether value parses as a UUID.
func IsUUID(value string) bool {
	return uuid.Validate(strings.TrimSpace(value)) == nil
}

// ParseLookupKey classifies value as an identifier or a slug. Empty values
// and values that are neither fail with a usage error.
func ParseLookupKey(value string) (LookupKey, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return LookupKey{}, ErrEmptyLookupKey
	}

	id, err := uuid.Parse(value)
	if err == nil {
		if id == uuid.Nil {
			return LookupKey{}, fmt.Errorf("%w: %q", ErrInvalidLookupKey, value)
		}

		return LookupKey{ID: id}, nil
	}

	if !slugPattern.MatchString(value) {
		return LookupKey{}, fmt.Errorf("%w: %q", ErrInvalidLookupKey, value)
	}

	return LookupKey{Slug: value}, nil
}

// ParseID parses value as a resource identifier. Slugs are rejected.
func ParseID(value string) (uuid.UUID, error) {
	key, err := ParseLookupKey(value)
	if err != nil {
		return uuid.Nil, err
	}

	if !key.IsID() {
		return uuid.Nil, fmt.Errorf("%w: %q is not an id", ErrInvalidLookupKey, value)
	}

	return key.ID, nil
}

// RequireID fails with a usage error when id is the nil UUID.
func RequireID(id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrEmptyLookupKey
	}

	return nil
}
