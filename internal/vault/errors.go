package vault

import (
	"fmt"

	"github.com/passkeep/passkeep/internal/common"
)

// errNotFound wraps common.ErrNotFound with the offending id so logs stay
// useful while errors.Is(err, common.ErrNotFound) keeps working for callers.
func errNotFound(id string) error {
	return fmt.Errorf("record %q: %w", id, common.ErrNotFound)
}
