package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sis/backend/internal/domain/access"
	"github.com/sis/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrInvalidClaims     = errors.New("invalid token claims")
	ErrTokenNotYetValid  = errors.New("token is not yet valid")
	ErrMissingRole       = errors.New("missing role in claims")
	ErrMissingEmployeeID = errors.New("missing employee_id in claims")
)

// Claims carries the authenticated session identity. The console's
// access decisions read role and employee ID from here, so both are
// mandatory; person ID is only set for sessions backed by a person
// record.
type Claims struct {
	jwt.RegisteredClaims
	Role       string `json:"role"`
	Email      string `json:"email,omitempty"`
	EmployeeID string `json:"employee_id"`
	PersonID   int64  `json:"person_id,omitempty"`
}

// Session converts the claims into the immutable session value the
// application layer consumes.
func (c *Claims) Session() access.SessionContext {
	return access.SessionContext{
		Role:       c.Role,
		Email:      c.Email,
		EmployeeID: c.EmployeeID,
		PersonID:   c.PersonID,
	}
}

// JWTService signs and validates session tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// Generate issues a signed session token for the given session identity.
// Returns the token string and its expiration time.
func (s *JWTService) Generate(session access.SessionContext) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   session.EmployeeID,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role:       session.Role,
		Email:      session.Email,
		EmployeeID: session.EmployeeID,
		PersonID:   session.PersonID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Validate parses and verifies a session token and returns its claims
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.Role == "" {
		return nil, ErrMissingRole
	}
	if claims.EmployeeID == "" {
		return nil, ErrMissingEmployeeID
	}

	return claims, nil
}
