package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the session credential claims
type Claims struct {
	AccountID uint   `json:"account_id"`
	Address   string `json:"address"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Generate mints a signed session credential bound to an account identity.
// Validity is fully self-contained: no server-side session store exists, so
// expiry is the only way a credential dies.
func Generate(accountID uint, address, role, secret string, expiryHours int) (string, error) {
	claims := Claims{
		AccountID: accountID,
		Address:   address,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "quantfund-staking",
			Subject:   address,
			ID:        uuid.New().String(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Validate verifies signature and expiry and returns the claims. No claim is
// read before the signature check passes — ParseWithClaims verifies first.
func Validate(tokenString, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
