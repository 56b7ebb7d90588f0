// Package store defines the photo register port implemented by the
// memory and postgres backends.
package store

import (
	"context"

	"fotogate/internal/identity"
	"fotogate/internal/photo"
	id "fotogate/pkg/domain"
)

// Store is the lookup interface over the photo register. Implementations
// return a not_found coded error when no photo matches; they never reveal
// whether the identity number or the birth date was the mismatch.
type Store interface {
	// Find returns the photo registered for the identity number and birth
	// date. The birth date must match the registered one exactly, including
	// the year-only form.
	Find(ctx context.Context, number identity.Number, birthDate identity.BirthDate) (photo.Record, error)

	// FindByPhotoID returns the photo with the given register ID.
	FindByPhotoID(ctx context.Context, photoID id.PhotoID) (photo.Record, error)
}
