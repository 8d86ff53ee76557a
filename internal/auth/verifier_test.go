package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://cognito-idp.eu-west-1.amazonaws.com/eu-west-1_test"
	testClientID = "client-123"
	testKid      = "key-1"
)

func newTestVerifier(t *testing.T) (*CognitoVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	verifier := NewCognitoVerifierWithKeys(testIssuer, testClientID, map[string]*rsa.PublicKey{
		testKid: &key.PublicKey,
	})
	return verifier, key
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":            testIssuer,
		"sub":            "sub-abc",
		"username":       "a@b.com",
		"token_use":      "access",
		"client_id":      testClientID,
		"exp":            time.Now().Add(time.Hour).Unix(),
		"cognito:groups": []any{"admins"},
	}
}

func TestVerify_ValidToken(t *testing.T) {
	verifier, key := newTestVerifier(t)

	identity, err := verifier.Verify(signToken(t, key, testKid, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "sub-abc", identity.SubjectID)
	assert.Equal(t, "a@b.com", identity.Username)
	assert.Equal(t, []string{"admins"}, identity.Groups)
}

func TestVerify_ExpiredToken(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	_, err := verifier.Verify(signToken(t, key, testKid, claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongTokenUse(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims := validClaims()
	claims["token_use"] = "id"

	_, err := verifier.Verify(signToken(t, key, testKid, claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongClientID(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims := validClaims()
	claims["client_id"] = "someone-else"

	_, err := verifier.Verify(signToken(t, key, testKid, claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims := validClaims()
	claims["iss"] = "https://example.com/other-pool"

	_, err := verifier.Verify(signToken(t, key, testKid, claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnknownKeyID(t *testing.T) {
	verifier, key := newTestVerifier(t)

	_, err := verifier.Verify(signToken(t, key, "unknown-kid", validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_SignatureFromDifferentKey(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = verifier.Verify(signToken(t, otherKey, testKid, validClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsHMACToken(t *testing.T) {
	verifier, _ := newTestVerifier(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
	token.Header["kid"] = testKid
	signed, err := token.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	verifier, _ := newTestVerifier(t)

	_, err := verifier.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
