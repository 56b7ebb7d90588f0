// Package photo defines the disclosure domain: the stored photograph record
// and the payload shape that gets encrypted for the caller.
package photo

import (
	"encoding/base64"
	"encoding/json"

	id "fotogate/pkg/domain"
	dErrors "fotogate/pkg/domain-errors"
)

// Record is a photograph as held by the register.
type Record struct {
	PhotoID id.PhotoID
	Image   []byte
}

// Payload is the structure serialized and sealed into the encrypted token.
// It exists only transiently, between watermarking and encryption.
type Payload struct {
	// Photo is the base64 (standard alphabet) encoded image bytes.
	Photo string `json:"photo"`
	// Format tags the image encoding of the photo bytes.
	Format string `json:"format"`
	// Encoding tags how the photo bytes are wrapped in this payload.
	Encoding string `json:"encoding"`
}

// NewPayload wraps watermarked JPEG bytes in the payload envelope.
func NewPayload(image []byte) Payload {
	return Payload{
		Photo:    base64.StdEncoding.EncodeToString(image),
		Format:   "jpg",
		Encoding: "base64",
	}
}

// Marshal serializes the payload for sealing.
func (p Payload) Marshal() ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "payload marshal: serialize photo payload")
	}
	return b, nil
}

// UnmarshalPayload parses a payload decrypted from a token; it supports the
// verification path, never production disclosure.
func UnmarshalPayload(b []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Payload{}, dErrors.Wrap(err, dErrors.CodeInternal, "payload unmarshal: parse photo payload")
	}
	return p, nil
}

// ImageBytes decodes the payload back to raw image bytes.
func (p Payload) ImageBytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(p.Photo)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "payload decode: photo bytes are not valid base64")
	}
	return b, nil
}
