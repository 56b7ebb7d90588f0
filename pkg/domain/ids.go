// Package domain holds the typed identifiers shared across modules.
//
// Distinct Go types keep a transaction ID from ever being passed where a photo
// ID is expected; the compiler enforces what a bare string or int would not.
package domain

import (
	"github.com/google/uuid"

	dErrors "fotogate/pkg/domain-errors"
)

// TransactionID correlates one disclosure request across the response, the
// watermark and the audit log. Minted once per request, never persisted.
type TransactionID uuid.UUID

// NewTransactionID mints a random transaction ID.
func NewTransactionID() TransactionID {
	return TransactionID(uuid.New())
}

// ParseTransactionID parses and validates a transaction ID string.
func ParseTransactionID(s string) (TransactionID, error) {
	if s == "" {
		return TransactionID{}, dErrors.New(dErrors.CodeInvalidInput, "transaction id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return TransactionID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "transaction id is not a valid UUID")
	}
	if u == uuid.Nil {
		return TransactionID{}, dErrors.New(dErrors.CodeInvalidInput, "transaction id must not be the nil UUID")
	}
	return TransactionID(u), nil
}

func (t TransactionID) String() string {
	return uuid.UUID(t).String()
}

// Short returns the first 8 characters, the form rendered into the visible
// watermark label.
func (t TransactionID) Short() string {
	return t.String()[:8]
}

// IsNil reports whether the ID is the zero value.
func (t TransactionID) IsNil() bool {
	return uuid.UUID(t) == uuid.Nil
}

// PhotoID identifies a stored photograph in the register.
type PhotoID int64
