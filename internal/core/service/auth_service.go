package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

const minPasswordLen = 6

// AuthConfig controls token issuance and password hashing.
type AuthConfig struct {
	JWTSecret string
	// TokenTTL of zero issues tokens without an exp claim.
	TokenTTL   time.Duration
	BcryptCost int
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and bearer token verification.
type AuthService struct {
	repo     ports.AuthRepository
	recorder ports.ActivityRecorder
	cfg      AuthConfig
	log      zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, recorder ports.ActivityRecorder, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, recorder: recorder, cfg: cfg, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < minPasswordLen {
		return nil, domain.ErrInvalidUser
	}

	hash, err := HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(domain.Activity{
		Action:     domain.ActionUserRegistered,
		Resource:   "user",
		ResourceID: created.ID,
		Actor:      created.Username,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login checks the credentials and issues a signed token. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("login for unknown user")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !VerifyPassword(user.PasswordHash, password) {
		s.log.Debug().Str("username", username).Msg("login with wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}
	return token, user, nil
}

// VerifyToken validates signature, algorithm and (when present) expiry.
func (s *AuthService) VerifyToken(raw string) (*domain.Identity, error) {
	if raw == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthorized
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &domain.Identity{UserID: id, Username: claims.Username}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(user.ID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.cfg.TokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.cfg.TokenTTL))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}
