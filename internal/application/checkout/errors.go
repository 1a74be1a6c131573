package checkout

import (
	"fmt"

	"github.com/google/uuid"
)

// PartialCheckoutError reports that some vendor submissions failed.
// Orders listed in CreatedOrderIDs exist and are not rolled back.
type PartialCheckoutError struct {
	CreatedOrderIDs []uuid.UUID
	VendorIDs       []uuid.UUID
	Err             error
}

func (e *PartialCheckoutError) Error() string {
	return fmt.Sprintf("checkout partially failed: %d order(s) created, %d vendor(s) failed: %v",
		len(e.CreatedOrderIDs), len(e.VendorIDs), e.Err)
}

// Unwrap returns the first submission error
func (e *PartialCheckoutError) Unwrap() error {
	return e.Err
}
