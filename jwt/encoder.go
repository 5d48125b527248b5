package jwt

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

type EncodeDecoder struct {
	key []byte
	ttl time.Duration
}

type Claims struct {
	UserID   int           `json:"user_id"`
	Username string        `json:"username"`
	Role     fileshelf.Role `json:"role"`
	jwt.StandardClaims
}

func NewEncodeDecoder(key []byte, ttl time.Duration) *EncodeDecoder {
	return &EncodeDecoder{
		key: key,
		ttl: ttl,
	}
}

func (e *EncodeDecoder) Encode(user fileshelf.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(e.ttl).Unix(),
			Issuer:    "fileshelf",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.key)
}

func (e *EncodeDecoder) Decode(bearer string) (Claims, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return e.key, nil
	})
	if err != nil {
		return Claims{}, errors.New("invalid token", errors.Unauthorized(), errors.WithCause(err))
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return *claims, nil
	}

	return Claims{}, errors.New("could not get claims", errors.Unauthorized())
}

// Inspect reads the claims of a token without checking its signature. The
// client does not own the signing key; it only uses the claims to avoid
// sending a token it knows has expired.
func Inspect(bearer string) (Claims, error) {
	claims := Claims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(bearer, &claims); err != nil {
		return Claims{}, errors.New("malformed token", errors.Unauthorized(), errors.WithCause(err))
	}
	return claims, nil
}

// Expired reports whether bearer carries an expiry before now. Opaque
// tokens, or tokens without expiry, never expire client side.
func Expired(bearer string, now time.Time) bool {
	claims, err := Inspect(bearer)
	if err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
