package jwe

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "fotogate/pkg/domain-errors"
)

func validTestKey(t *testing.T) PublicKey {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	return FromECDSA(&key.PublicKey)
}

func TestPublicKeyValidate(t *testing.T) {
	t.Run("accepts a well-formed key", func(t *testing.T) {
		assert.NoError(t, validTestKey(t).Validate())
	})

	t.Run("accepts padded base64url coordinates", func(t *testing.T) {
		k := validTestKey(t)
		raw, err := base64.RawURLEncoding.DecodeString(k.X)
		require.NoError(t, err)
		k.X = base64.URLEncoding.EncodeToString(raw) // with trailing padding
		assert.NoError(t, k.Validate())
	})

	t.Run("rejects wrong key type", func(t *testing.T) {
		k := validTestKey(t)
		k.Kty = "RSA"
		err := k.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects wrong curve", func(t *testing.T) {
		k := validTestKey(t)
		k.Crv = "P-384"
		err := k.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects empty coordinates", func(t *testing.T) {
		k := validTestKey(t)
		k.X = ""
		require.Error(t, k.Validate())

		k = validTestKey(t)
		k.Y = ""
		require.Error(t, k.Validate())
	})

	t.Run("rejects coordinates that are not base64url", func(t *testing.T) {
		k := validTestKey(t)
		k.X = "not+valid/base64url!"
		err := k.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("does not enforce coordinate byte length", func(t *testing.T) {
		// Documented permissiveness: a short coordinate decodes cleanly and
		// passes structural validation; Seal rejects it later as off-curve.
		k := validTestKey(t)
		k.X = base64.RawURLEncoding.EncodeToString([]byte{0x01, 0x02})
		assert.NoError(t, k.Validate())
	})
}

func TestFromECDSARoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	jwk := FromECDSA(&key.PublicKey)
	pub, err := jwk.ecdsaKey()
	require.NoError(t, err)
	assert.Zero(t, pub.X.Cmp(key.PublicKey.X))
	assert.Zero(t, pub.Y.Cmp(key.PublicKey.Y))
}
