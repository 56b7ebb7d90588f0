package handler

import (
	"github.com/asaskevich/govalidator"

	"fotogate/internal/jwe"
	dErrors "fotogate/pkg/domain-errors"
)

// discloseRequest is the POST /v1/photo request body.
type discloseRequest struct {
	NationalID         string        `json:"national_id"`
	BirthDate          string        `json:"birth_date"`
	PseudoID           string        `json:"pseudo_id"`
	RecipientPublicKey jwe.PublicKey `json:"recipient_public_key"`
}

// discloseResponse is the POST /v1/photo success body.
type discloseResponse struct {
	TransactionID  string `json:"transaction_id"`
	PhotoID        int64  `json:"photo_id"`
	EncryptedToken string `json:"encrypted_token"`
}

const pseudoIDPattern = `^[A-Za-z0-9_-]+$`

// validate applies transport-level checks only. The pseudo ID stays opaque
// beyond basic sanity; the identity fields get their real validation in the
// service.
func (r discloseRequest) validate() error {
	if r.NationalID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "national_id is required")
	}
	if r.BirthDate == "" {
		return dErrors.New(dErrors.CodeBadRequest, "birth_date is required")
	}
	if r.PseudoID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "pseudo_id is required")
	}
	if !govalidator.StringLength(r.PseudoID, "1", "50") || !govalidator.Matches(r.PseudoID, pseudoIDPattern) {
		return dErrors.New(dErrors.CodeBadRequest, "pseudo_id must be 1-50 characters of [A-Za-z0-9_-]")
	}
	return nil
}
