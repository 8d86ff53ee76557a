package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/haroonchishty/sca-backend/internal/config"
)

var (
	// ErrInvalidToken covers malformed, expired, mis-signed and
	// wrong-audience tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrVerifierUnavailable means the trusted issuer configuration is
	// absent; authenticated requests fail closed.
	ErrVerifierUnavailable = errors.New("token verifier unavailable")
)

// Identity is the verified caller extracted from an access token.
type Identity struct {
	SubjectID string
	Username  string
	Groups    []string
}

// TokenVerifier validates a bearer credential and returns the caller's
// identity. Results are never cached; every call re-validates.
type TokenVerifier interface {
	Verify(tokenStr string) (*Identity, error)
}

// CognitoVerifier validates RS256 access tokens issued by a Cognito user
// pool. The issuer key set is fetched once at construction; the verifier is
// built once per process and shared across requests.
type CognitoVerifier struct {
	issuer   string
	clientID string
	keys     map[string]*rsa.PublicKey
}

// NewCognitoVerifier fetches the pool's JWKS and builds a verifier. Fails
// with ErrVerifierUnavailable when the pool or client id is not configured.
func NewCognitoVerifier(cfg config.CognitoConfig) (*CognitoVerifier, error) {
	if !cfg.Configured() {
		return nil, ErrVerifierUnavailable
	}

	issuer := cfg.Issuer()
	keys, err := fetchJWKS(issuer + "/.well-known/jwks.json")
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	return &CognitoVerifier{issuer: issuer, clientID: cfg.ClientID, keys: keys}, nil
}

// NewCognitoVerifierWithKeys builds a verifier from an already-resolved key
// set; used by tests.
func NewCognitoVerifierWithKeys(issuer, clientID string, keys map[string]*rsa.PublicKey) *CognitoVerifier {
	return &CognitoVerifier{issuer: issuer, clientID: clientID, keys: keys}
}

// Verify checks signature, expiry, issuer, token use and client id, and
// returns the token's identity claims.
func (v *CognitoVerifier) Verify(tokenStr string) (*Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodRS256 {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		kid, _ := token.Header["kid"].(string)
		key, ok := v.keys[kid]
		if !ok {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return key, nil
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if use, _ := claims["token_use"].(string); use != "access" {
		return nil, fmt.Errorf("%w: not an access token", ErrInvalidToken)
	}
	if clientID, _ := claims["client_id"].(string); clientID != v.clientID {
		return nil, fmt.Errorf("%w: wrong client id", ErrInvalidToken)
	}

	identity := &Identity{}
	identity.SubjectID, _ = claims["sub"].(string)
	identity.Username, _ = claims["username"].(string)
	if raw, ok := claims["cognito:groups"].([]any); ok {
		for _, g := range raw {
			if s, ok := g.(string); ok {
				identity.Groups = append(identity.Groups, s)
			}
		}
	}
	return identity, nil
}

// jwks is the issuer's published key set document.
type jwks struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func fetchJWKS(url string) (map[string]*rsa.PublicKey, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned %d", res.StatusCode)
	}

	var doc jwks
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k.N, k.E)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, errors.New("no usable keys in jwks")
	}
	return keys, nil
}

func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}, nil
}
