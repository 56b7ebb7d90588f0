// Package memory provides the in-memory photo store used for development
// and handler tests.
package memory

import (
	"context"
	"sync"

	"fotogate/internal/identity"
	"fotogate/internal/photo"
	"fotogate/internal/photo/store"
	id "fotogate/pkg/domain"
	dErrors "fotogate/pkg/domain-errors"
)

type key struct {
	nationalID string
	birthDate  string
}

// Store keeps the register in a map keyed by identity number and the exact
// registered birth date string.
type Store struct {
	mu      sync.RWMutex
	records map[key]photo.Record
	byID    map[id.PhotoID]photo.Record
}

// New returns an empty store.
func New() *Store {
	return &Store{
		records: make(map[key]photo.Record),
		byID:    make(map[id.PhotoID]photo.Record),
	}
}

// NewSeeded returns a store populated with the development register.
func NewSeeded() *Store {
	s := New()
	for _, r := range store.Seed() {
		s.Put(r.NationalID, r.BirthDate, photo.Record{PhotoID: id.PhotoID(r.PhotoID), Image: r.Photo})
	}
	return s
}

// Put registers a photo under the given identity number and birth date.
func (s *Store) Put(nationalID, birthDate string, rec photo.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key{nationalID: nationalID, birthDate: birthDate}] = rec
	s.byID[rec.PhotoID] = rec
}

func (s *Store) Find(_ context.Context, number identity.Number, birthDate identity.BirthDate) (photo.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key{nationalID: number.String(), birthDate: birthDate.String()}]
	if !ok {
		return photo.Record{}, dErrors.New(dErrors.CodeNotFound, "no photo found for the provided criteria")
	}
	return rec, nil
}

func (s *Store) FindByPhotoID(_ context.Context, photoID id.PhotoID) (photo.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[photoID]
	if !ok {
		return photo.Record{}, dErrors.New(dErrors.CodeNotFound, "no photo found for the provided criteria")
	}
	return rec, nil
}

var _ store.Store = (*Store)(nil)
