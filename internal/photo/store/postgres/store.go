// Package postgres backs the photo register with PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fotogate/internal/identity"
	"fotogate/internal/photo"
	"fotogate/internal/photo/store"
	id "fotogate/pkg/domain"
	dErrors "fotogate/pkg/domain-errors"
)

// Store queries the photos table. Birth dates are stored as the exact
// registered string so year-only registrations match byte for byte.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a store to an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool for the DSN and verifies the connection.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "postgres: open pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "postgres: ping")
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping reports database reachability for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Find(ctx context.Context, number identity.Number, birthDate identity.BirthDate) (photo.Record, error) {
	var (
		rec     photo.Record
		photoID int64
	)
	err := s.pool.QueryRow(ctx,
		`SELECT photo_id, image FROM photos WHERE national_id = $1 AND birth_date = $2`,
		number.String(), birthDate.String(),
	).Scan(&photoID, &rec.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return photo.Record{}, dErrors.New(dErrors.CodeNotFound, "no photo found for the provided criteria")
		}
		return photo.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "postgres: query photo")
	}
	rec.PhotoID = id.PhotoID(photoID)
	return rec, nil
}

func (s *Store) FindByPhotoID(ctx context.Context, photoID id.PhotoID) (photo.Record, error) {
	var (
		rec photo.Record
		got int64
	)
	err := s.pool.QueryRow(ctx,
		`SELECT photo_id, image FROM photos WHERE photo_id = $1`,
		int64(photoID),
	).Scan(&got, &rec.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return photo.Record{}, dErrors.New(dErrors.CodeNotFound, "no photo found for the provided criteria")
		}
		return photo.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "postgres: query photo by id")
	}
	rec.PhotoID = id.PhotoID(got)
	return rec, nil
}

// SeedDev loads the development register. Existing rows for the same
// identity and birth date are replaced.
func (s *Store) SeedDev(ctx context.Context) error {
	for _, r := range store.Seed() {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO photos (national_id, birth_date, photo_id, image)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (national_id, birth_date)
			DO UPDATE SET photo_id = EXCLUDED.photo_id, image = EXCLUDED.image`,
			r.NationalID, r.BirthDate, r.PhotoID, r.Photo,
		)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "postgres: seed photos")
		}
	}
	return nil
}

var _ store.Store = (*Store)(nil)
