package api

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/keys"
)

var errMissingSubject = errors.New("token has no subject")

// TokenVerifier validates the bearer tokens minted by the chat gateway.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewTokenVerifier(secret []byte) *TokenVerifier {
	return &TokenVerifier{secret: secret, now: time.Now}
}

// DevSecret returns a random signing secret for local runs without a
// configured gateway secret. Tokens signed with it die with the process.
func DevSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := crand.Read(b); err != nil {
		return nil, fmt.Errorf("generate dev secret: %w", err)
	}
	return b, nil
}

// SignToken mints a gateway token for playerID.
func SignToken(secret []byte, playerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    constants.TokenIssuer,
		Subject:   keys.PlayerID(playerID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks signature, issuer and expiry and returns the normalized
// player id carried in the subject claim.
func (v *TokenVerifier) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(constants.TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", err
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	id := keys.PlayerID(sub)
	if id == "" {
		return "", errMissingSubject
	}
	return id, nil
}
