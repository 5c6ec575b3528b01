package token

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the only error Verify returns to callers. Expired,
// forged, malformed and wrong-type tokens are deliberately indistinguishable
// from the outside; the actual cause is only logged server-side.
var ErrInvalidToken = errors.New("invalid or expired token")

const accessTokenType = "access"

// Claims is the signed payload of an access token.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType string    `json:"typ"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 bearer tokens. The signing secret and TTL
// are injected once at construction; nothing here reads ambient state.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed access token for the given user.
func (s *Service) Issue(userID uuid.UUID, email, role string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    "bizflow-backend",
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks the signature, expiry and token type. Any failure collapses
// to ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		log.Printf("token verification failed: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}

	// Reserve the claim format for future token kinds (e.g. refresh tokens):
	// only typ=access passes, even with a valid signature.
	if claims.TokenType != accessTokenType {
		log.Printf("token verification failed: unexpected token type %q", claims.TokenType)
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		log.Printf("token verification failed: missing user_id claim")
		return nil, ErrInvalidToken
	}

	return claims, nil
}
