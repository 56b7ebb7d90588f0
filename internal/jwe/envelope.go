package jwe

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	josecipher "github.com/go-jose/go-jose/v3/cipher"

	dErrors "fotogate/pkg/domain-errors"
)

const (
	// algECDHES is direct key agreement: the derived key IS the content
	// encryption key, so the encrypted-key segment stays empty.
	algECDHES  = "ECDH-ES"
	encA256GCM = "A256GCM"

	cekSize   = 32 // A256GCM key length in bytes
	nonceSize = 12 // 96-bit GCM nonce
	tagSize   = 16 // 128-bit authentication tag

	segmentCount = 5
)

// protectedHeader is the JWE protected header for the one supported
// algorithm combination.
type protectedHeader struct {
	Alg string    `json:"alg"`
	Enc string    `json:"enc"`
	Epk PublicKey `json:"epk"`
}

// Seal encrypts payload to the recipient key and returns the compact
// five-segment token.
//
// Per RFC 7518 §4.6 direct key agreement: a fresh ephemeral P-256 pair is
// generated for this call only, ECDH against the recipient key yields the
// shared x-coordinate, and a single-round Concat KDF keyed by the content
// encryption algorithm identifier derives the 256-bit content key. The
// serialized protected header (carrying the ephemeral public key) is the
// AEAD's associated data.
//
// Every failure surfaces as a single internal-coded error naming the
// operation; no partial token is ever returned.
func Seal(payload []byte, recipient PublicKey) (string, error) {
	recipientKey, err := recipient.ecdsaKey()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "jwe seal: recipient key unusable")
	}

	ephemeral, err := ecdsa.GenerateKey(recipientKey.Curve, rand.Reader)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "jwe seal: generate ephemeral key")
	}

	header := protectedHeader{
		Alg: algECDHES,
		Enc: encA256GCM,
		Epk: FromECDSA(&ephemeral.PublicKey),
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "jwe seal: marshal protected header")
	}
	protected := base64.RawURLEncoding.EncodeToString(headerJSON)

	cek := josecipher.DeriveECDHES(encA256GCM, nil, nil, ephemeral, recipientKey, cekSize)

	aead, err := newGCM(cek)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "jwe seal: init cipher")
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "jwe seal: generate nonce")
	}

	sealed := aead.Seal(nil, nonce, payload, []byte(protected))
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		protected,
		"", // encrypted key: empty in direct key agreement mode
		base64.RawURLEncoding.EncodeToString(nonce),
		base64.RawURLEncoding.EncodeToString(ciphertext),
		base64.RawURLEncoding.EncodeToString(tag),
	}, "."), nil
}

// Unseal opens a token produced by Seal using the recipient's private key.
// It exists to verify round-trip correctness in tests and tooling; the
// production request path only ever seals.
func Unseal(token string, key *ecdsa.PrivateKey) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != segmentCount {
		return nil, dErrors.Newf(dErrors.CodeInternal, "jwe unseal: expected %d segments, got %d", segmentCount, len(parts))
	}

	headerJSON, err := decodeBase64URL(parts[0])
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: decode protected header")
	}
	var header protectedHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: parse protected header")
	}
	if header.Alg != algECDHES || header.Enc != encA256GCM {
		return nil, dErrors.Newf(dErrors.CodeInternal, "jwe unseal: unsupported algorithms %s/%s", header.Alg, header.Enc)
	}

	ephemeralPub, err := header.Epk.ecdsaKey()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: ephemeral key unusable")
	}

	nonce, err := decodeBase64URL(parts[2])
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: decode nonce")
	}
	// GCM panics on any other nonce length, so reject before Open.
	if len(nonce) != nonceSize {
		return nil, dErrors.Newf(dErrors.CodeInternal, "jwe unseal: nonce must be %d bytes, got %d", nonceSize, len(nonce))
	}
	ciphertext, err := decodeBase64URL(parts[3])
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: decode ciphertext")
	}
	tag, err := decodeBase64URL(parts[4])
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: decode tag")
	}

	cek := josecipher.DeriveECDHES(encA256GCM, nil, nil, key, ephemeralPub, cekSize)

	aead, err := newGCM(cek)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: init cipher")
	}

	// The associated data is the protected segment exactly as received.
	payload, err := aead.Open(nil, nonce, append(ciphertext, tag...), []byte(parts[0]))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe unseal: authenticate and decrypt")
	}
	return payload, nil
}

// ValidateToken checks the compact structure without decrypting: exactly five
// dot-separated segments, each valid base64url.
func ValidateToken(token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != segmentCount {
		return dErrors.Newf(dErrors.CodeInternal, "jwe validate: expected %d segments, got %d", segmentCount, len(parts))
	}
	for i, part := range parts {
		if _, err := decodeBase64URL(part); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("jwe validate: segment %d is not valid base64url", i+1))
		}
	}
	return nil
}

// TokenHeader decodes the protected header of a token without decrypting it.
func TokenHeader(token string) (map[string]any, error) {
	headerPart, _, _ := strings.Cut(token, ".")
	headerJSON, err := decodeBase64URL(headerPart)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe header: decode protected header")
	}
	var header map[string]any
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "jwe header: parse protected header")
	}
	return header, nil
}

func newGCM(cek []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
