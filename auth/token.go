package auth // import "github.com/bookverse/bookverse/auth"

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// Issuer is the issuer of the jwt token
	Issuer = "bookverse"
	// Audience is the audience of the jwt token
	Audience = "user.access-token"
	// KeyID is the key id of the jwt token
	KeyID = "v1"
	// AccessTokenDuration is the duration of the access token
	AccessTokenDuration = 7 * 24 * time.Hour
	// AccessTokenCookieName is the cookie name of the access token
	AccessTokenCookieName = "bookverse.access-token"
)

type ClaimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates an access token for the given user.
func GenerateAccessToken(userName string, userID int32, expirationTime time.Time, secret []byte) (string, error) {
	return generateToken(userName, userID, Audience, expirationTime, secret)
}

func generateToken(userName string, userID int32, audience string, expirationTime time.Time, secret []byte) (string, error) {
	registeredClaims := jwt.RegisteredClaims{
		Issuer:   Issuer,
		Audience: jwt.ClaimStrings{audience},
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Subject:  strconv.FormatInt(int64(userID), 10),
	}
	if !expirationTime.IsZero() {
		registeredClaims.ExpiresAt = jwt.NewNumericDate(expirationTime)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             userName,
		RegisteredClaims: registeredClaims,
	})
	token.Header["kid"] = KeyID

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return tokenString, nil
}

// ParseAccessToken validates the token signature and returns the claims.
func ParseAccessToken(tokenString string, secret []byte) (*ClaimsMessage, error) {
	claims := &ClaimsMessage{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.New("unexpected signing method")
		}
		if kid, ok := t.Header["kid"].(string); !ok || kid != KeyID {
			return nil, errors.New("unexpected key id")
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.New("invalid or expired access token")
	}
	return claims, nil
}
