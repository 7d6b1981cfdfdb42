package validation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID is returned when an identifier is not a well-formed UUID.
var ErrInvalidUUID = errors.New("invalid UUID format")

// ValidateUUID checks that id parses as a UUID.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
