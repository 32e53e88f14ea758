package usecase

import (
	"errors"
	"fmt"

	"github.com/clever-bank/ledger/internal/domain"
)

// storageError keeps domain errors as they are and tags everything else
// with domain.ErrStorage, so callers can tell the two apart with errors.Is.
func storageError(action string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidationError(err) || errors.Is(err, domain.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, action, err)
}
