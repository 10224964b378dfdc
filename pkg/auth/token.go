package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"eliterentals/pkg/domain"
)

const (
	defaultIssuer   = "eliterentals-api"
	defaultAudience = "eliterentals-clients"
	defaultTokenTTL = 12 * time.Hour
	defaultLeeway   = 30 * time.Second
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by an access token.
type Claims struct {
	UserID string          `json:"userId"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenServiceConfig configures token issuing and verification.
type TokenServiceConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
	Leeway   time.Duration
}

// TokenService issues and verifies HS256 access tokens carrying
// userId + role claims.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration
}

// NewTokenService constructs a token service; the signing secret is required.
func NewTokenService(cfg TokenServiceConfig) (*TokenService, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("token secret is required")
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	audience := cfg.Audience
	if audience == "" {
		audience = defaultAudience
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = defaultLeeway
	}
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		leeway:   leeway,
	}, nil
}

// Issue creates a signed access token for the user.
func (s *TokenService) Issue(user domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (s *TokenService) Verify(token string) (Claims, error) {
	claims := Claims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(s.leeway),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.UserID) == "" || claims.Role == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
