// Package jwe builds and opens the encrypted envelope returned to callers:
// a compact JWE using ECDH-ES in direct key agreement mode with A256GCM
// content encryption. Only that one algorithm pair is supported.
package jwe

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"strings"

	dErrors "fotogate/pkg/domain-errors"
)

const (
	keyTypeEC = "EC"
	curveP256 = "P-256"

	// p256CoordinateSize is the byte width of a P-256 coordinate.
	p256CoordinateSize = 32
)

// PublicKey is the caller-supplied recipient key in JWK form. The JSON keys
// kty/crv/x/y are a wire contract.
type PublicKey struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// Validate performs the structural checks, in order, stopping at the first
// failure: key type, curve, coordinate presence, coordinate encoding.
//
// Decoded coordinate length is deliberately not checked here; a point of the
// wrong size or off the curve is rejected by Seal when the key is used. This
// mirrors the permissive register contract and is a documented hardening gap.
func (k PublicKey) Validate() error {
	if k.Kty != keyTypeEC {
		return dErrors.Newf(dErrors.CodeInvalidInput, "public key type must be %q", keyTypeEC)
	}
	if k.Crv != curveP256 {
		return dErrors.Newf(dErrors.CodeInvalidInput, "public key curve must be %q", curveP256)
	}
	if k.X == "" || k.Y == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "public key coordinates must be non-empty")
	}
	if _, err := decodeBase64URL(k.X); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "public key coordinate x is not valid base64url")
	}
	if _, err := decodeBase64URL(k.Y); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "public key coordinate y is not valid base64url")
	}
	return nil
}

// ecdsaKey converts the JWK to a usable curve point, rejecting coordinates
// that don't land on P-256.
func (k PublicKey) ecdsaKey() (*ecdsa.PublicKey, error) {
	xb, err := decodeBase64URL(k.X)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "decode public key coordinate x")
	}
	yb, err := decodeBase64URL(k.Y)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "decode public key coordinate y")
	}

	pub := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xb),
		Y:     new(big.Int).SetBytes(yb),
	}
	if !pub.Curve.IsOnCurve(pub.X, pub.Y) {
		return nil, dErrors.New(dErrors.CodeInternal, "public key point is not on curve P-256")
	}
	return pub, nil
}

// FromECDSA renders an ECDSA P-256 public key as a JWK with fixed-width,
// unpadded base64url coordinates.
func FromECDSA(pub *ecdsa.PublicKey) PublicKey {
	var x, y [p256CoordinateSize]byte
	pub.X.FillBytes(x[:])
	pub.Y.FillBytes(y[:])
	return PublicKey{
		Kty: keyTypeEC,
		Crv: curveP256,
		X:   base64.RawURLEncoding.EncodeToString(x[:]),
		Y:   base64.RawURLEncoding.EncodeToString(y[:]),
	}
}

// GenerateKey creates a fresh P-256 key pair. Production code only ever sends
// to caller-supplied public keys; this exists for Unseal verification and tests.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe keygen: generate P-256 key")
	}
	return key, nil
}

// decodeBase64URL accepts both padded and unpadded base64url input.
func decodeBase64URL(s string) ([]byte, error) {
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return base64.URLEncoding.DecodeString(s)
}
