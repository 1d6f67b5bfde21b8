package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campus-erp/records-service/internal/models"
)

// Identity is the authenticated caller, resolved from a verified token and
// passed explicitly to every service operation.
type Identity struct {
	ID    uint            `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
}

// Claims is the JWT payload carried by every auth token.
type Claims struct {
	ID    uint            `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into the caller identity.
func (c Claims) Identity() Identity {
	return Identity{ID: c.ID, Email: c.Email, Name: c.Name, Role: c.Role}
}

// TokenService issues and verifies HS256 auth tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewTokenService(signingKey, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Issue signs a token for the given identity.
func (t *TokenService) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:    id.ID,
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signingKey)
}

// Verify parses and validates a token, returning its claims.
func (t *TokenService) Verify(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return t.signingKey, nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if t.issuer != "" && claims.Issuer != t.issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	return *claims, nil
}
