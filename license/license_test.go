package license

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKeyPair generates a fresh P-256 key pair and returns its PEM-encoded
// public key alongside the private key, so tests can sign their own tokens
// without depending on the built-in default key.
func testKeyPair(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return priv, string(pem.EncodeToMemory(block))
}

func signToken(t *testing.T, priv *ecdsa.PrivateKey, payload map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	payloadB64 := base64.RawURLEncoding.EncodeToString(raw)
	digest := sha256.Sum256([]byte(payloadB64))
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	require.NoError(t, err)
	sigB64 := base64.RawURLEncoding.EncodeToString(sig)
	return "CT1." + payloadB64 + "." + sigB64
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestVerify_MissingKey(t *testing.T) {
	t.Parallel()
	v := &Verifier{PublicKeyPEM: DefaultPublicKeyPEM, Revoked: func() map[string]struct{} { return nil }}
	status := v.Verify("")
	assert.False(t, status.Valid)
	assert.Equal(t, CodeMissingKey, status.Code)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	v := &Verifier{PublicKeyPEM: DefaultPublicKeyPEM, Revoked: func() map[string]struct{} { return nil }}
	status := v.Verify("not-a-token")
	assert.False(t, status.Valid)
	assert.Equal(t, CodeMalformed, status.Code)
}

func TestVerify_ValidToken(t *testing.T) {
	t.Parallel()
	priv, pubPEM := testKeyPair(t)
	token := signToken(t, priv, map[string]any{"exp": "2999-01-01", "sub": "acme", "plan": "pro"})

	v := &Verifier{
		PublicKeyPEM: pubPEM,
		Revoked:      func() map[string]struct{} { return nil },
		Now:          fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	status := v.Verify(token)

	require.True(t, status.Valid)
	assert.Equal(t, CodeOK, status.Code)
	assert.Equal(t, "acme", status.Subject)
	assert.Equal(t, "pro", status.Plan)
	assert.Equal(t, "2999-01-01", status.ExpiresOn)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	priv, pubPEM := testKeyPair(t)
	token := signToken(t, priv, map[string]any{"exp": "2000-01-01"})

	v := &Verifier{
		PublicKeyPEM: pubPEM,
		Revoked:      func() map[string]struct{} { return nil },
		Now:          fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	status := v.Verify(token)

	assert.False(t, status.Valid)
	assert.Equal(t, CodeExpired, status.Code)
}

func TestVerify_NotYetValid(t *testing.T) {
	t.Parallel()
	priv, pubPEM := testKeyPair(t)
	token := signToken(t, priv, map[string]any{"exp": "2999-01-01", "nbf": "2999-06-01"})

	v := &Verifier{
		PublicKeyPEM: pubPEM,
		Revoked:      func() map[string]struct{} { return nil },
		Now:          fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	status := v.Verify(token)

	assert.False(t, status.Valid)
	assert.Equal(t, CodeNotYetValid, status.Code)
}

func TestVerify_RevokedTakesPrecedenceOverExpired(t *testing.T) {
	t.Parallel()
	priv, pubPEM := testKeyPair(t)
	token := signToken(t, priv, map[string]any{"exp": "2000-01-01", "jti": "abc123"})

	v := &Verifier{
		PublicKeyPEM: pubPEM,
		Revoked:      func() map[string]struct{} { return map[string]struct{}{"abc123": {}} },
		Now:          fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	status := v.Verify(token)

	assert.False(t, status.Valid)
	assert.Equal(t, CodeRevoked, status.Code)
}

func TestVerify_BadSignature(t *testing.T) {
	t.Parallel()
	_, pubPEM := testKeyPair(t)
	otherPriv, _ := testKeyPair(t)
	token := signToken(t, otherPriv, map[string]any{"exp": "2999-01-01"})

	v := &Verifier{PublicKeyPEM: pubPEM, Revoked: func() map[string]struct{} { return nil }}
	status := v.Verify(token)

	assert.False(t, status.Valid)
	assert.Equal(t, CodeBadSignature, status.Code)
}

func TestVerify_InvalidPayloadMissingExp(t *testing.T) {
	t.Parallel()
	priv, pubPEM := testKeyPair(t)
	token := signToken(t, priv, map[string]any{"sub": "acme"})

	v := &Verifier{PublicKeyPEM: pubPEM, Revoked: func() map[string]struct{} { return nil }}
	status := v.Verify(token)

	assert.False(t, status.Valid)
	assert.Equal(t, CodeInvalidPayload, status.Code)
}
