package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotogate/internal/identity"
	"fotogate/internal/photo"
	id "fotogate/pkg/domain"
	dErrors "fotogate/pkg/domain-errors"
)

func mustNumber(t *testing.T, s string) identity.Number {
	t.Helper()
	n, err := identity.ParseNumber(s)
	require.NoError(t, err)
	return n
}

func mustBirthDate(t *testing.T, s string) identity.BirthDate {
	t.Helper()
	d, err := identity.ParseBirthDate(s)
	require.NoError(t, err)
	return d
}

func TestSeededFind(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	rec, err := s.Find(ctx, mustNumber(t, "123456782"), mustBirthDate(t, "2000-08-16"))
	require.NoError(t, err)
	assert.Equal(t, id.PhotoID(1), rec.PhotoID)
	assert.NotEmpty(t, rec.Image)
}

func TestFindYearOnlyRegistration(t *testing.T) {
	s := NewSeeded()

	rec, err := s.Find(context.Background(), mustNumber(t, "123456782"), mustBirthDate(t, "1995-00-00"))
	require.NoError(t, err)
	assert.Equal(t, id.PhotoID(2), rec.PhotoID)
}

func TestFindMismatchedBirthDate(t *testing.T) {
	s := NewSeeded()

	// Registered number, wrong date.
	_, err := s.Find(context.Background(), mustNumber(t, "123456782"), mustBirthDate(t, "1999-01-01"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestFindUnknownNumber(t *testing.T) {
	s := NewSeeded()

	// Checksum-valid number that is not registered.
	_, err := s.Find(context.Background(), mustNumber(t, "111222333"), mustBirthDate(t, "2000-08-16"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestFindByPhotoID(t *testing.T) {
	s := NewSeeded()

	rec, err := s.FindByPhotoID(context.Background(), id.PhotoID(3))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Image)

	_, err = s.FindByPhotoID(context.Background(), id.PhotoID(999))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestPutOverwrites(t *testing.T) {
	s := New()
	s.Put("987654329", "1985-12-25", photo.Record{PhotoID: 7, Image: []byte{1}})
	s.Put("987654329", "1985-12-25", photo.Record{PhotoID: 8, Image: []byte{2}})

	rec, err := s.Find(context.Background(), mustNumber(t, "987654329"), mustBirthDate(t, "1985-12-25"))
	require.NoError(t, err)
	assert.Equal(t, id.PhotoID(8), rec.PhotoID)
}
