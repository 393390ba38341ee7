// Package auth mints and verifies the signed, time-limited access
// tokens that guard the prediction endpoints. Tokens are stateless:
// validity is fully determined by signature and expiry, never by a
// store lookup.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenValidity is the fixed lifetime of an issued access token.
const TokenValidity = time.Hour

var (
	// ErrMissingToken is returned when no token accompanies the request
	ErrMissingToken = errors.New("token missing")

	// ErrInvalidToken is returned for malformed tokens or bad signatures
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned for well-signed tokens past their expiry
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidCredentials is returned on a login credential mismatch.
	// Callers must surface it generically, without naming the failing field.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Claims is the token payload: the user identifier plus the standard
// registered claims (expiry, issued-at, jti).
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer validates the configured credential pair and mints HS256
// access tokens.
type Issuer struct {
	secret       []byte
	username     string
	password     string
	passwordHash string
}

// IssuerOption customises an Issuer.
type IssuerOption func(*Issuer)

// WithPasswordHash makes the issuer verify logins against a bcrypt hash
// instead of the plaintext credential.
func WithPasswordHash(hash string) IssuerOption {
	return func(i *Issuer) {
		i.passwordHash = hash
	}
}

// NewIssuer creates an issuer bound to a signing secret and the single
// configured credential pair.
func NewIssuer(secret, username, password string, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		secret:   []byte(secret),
		username: username,
		password: password,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IssueToken checks the credentials and, on match, returns a signed
// token carrying userID and an expiry one TokenValidity from now.
// There is no rate limiting or lockout here; that is a documented
// hardening gap of the single-credential design.
func (i *Issuer) IssueToken(userID int64, username, password string) (string, error) {
	if !i.credentialsMatch(username, password) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(i.username)) == 1

	if i.passwordHash != "" {
		return userOK && bcrypt.CompareHashAndPassword([]byte(i.passwordHash), []byte(password)) == nil
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(i.password)) == 1
	return userOK && passOK
}

// Verifier checks access tokens against the shared signing secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for tokens signed with secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a raw token string. The token is expected
// bare in the Authorization header; a conventional "Bearer " prefix is
// tolerated. Failures map onto the three-way taxonomy: ErrMissingToken,
// ErrExpiredToken, or ErrInvalidToken for everything else.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	return claims, nil
}
