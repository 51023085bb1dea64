package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/session"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// The dashboard accepts exactly one demo account. There is no rate
// limiting or lockout.
const (
	DemoEmail    = "test@bank.com"
	DemoPassword = "Passw0rd!"
	DemoName     = "Test User"

	InvalidCredentialsMessage = "Invalid email or password. Try test@bank.com / Passw0rd!"

	DefaultLoginDelay = 300 * time.Millisecond
	tokenTTL          = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthService struct {
	sessions     *session.Manager
	jwtSecretKey []byte
	passwordHash []byte
	loginDelay   time.Duration
	logger       *zap.Logger
}

func NewAuthService(sessions *session.Manager, jwtSecretKey string, loginDelay time.Duration, logger *zap.Logger) (*AuthService, error) {
	if jwtSecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		sessions:     sessions,
		jwtSecretKey: []byte(jwtSecretKey),
		passwordHash: hash,
		loginDelay:   loginDelay,
		logger:       logger,
	}, nil
}

// Login checks the credentials after the configured delay. On success the
// session becomes authenticated and its inactivity timer is armed; on
// failure the session keeps the user-facing error message.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (model.Session, error) {
	if email == "" || password == "" {
		return model.Session{}, ErrMissingCredentials
	}

	if s.loginDelay > 0 {
		t := time.NewTimer(s.loginDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return model.Session{}, ctx.Err()
		case <-t.C:
		}
	}

	if !s.valid(email, password) {
		s.logger.Warn("Login failed", zap.String("session_id", sessionID), zap.String("email", email))
		st, err := s.sessions.Update(sessionID, func(st *model.Session) error {
			st.AuthError = InvalidCredentialsMessage
			return nil
		})
		if err != nil {
			return model.Session{}, err
		}
		return st, ErrInvalidCredentials
	}

	st, err := s.sessions.Authenticate(sessionID, model.User{Name: DemoName, Email: email})
	if err != nil {
		return model.Session{}, err
	}

	s.logger.Info("User logged in successfully",
		zap.String("session_id", sessionID),
		zap.String("email", email))
	return st, nil
}

func (s *AuthService) valid(email, password string) bool {
	if email != DemoEmail {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
}

// Logout reports whether the session was authenticated before the call.
func (s *AuthService) Logout(sessionID string) (model.Session, bool, error) {
	changed, err := s.sessions.Logout(sessionID)
	if err != nil {
		return model.Session{}, false, err
	}
	if changed {
		s.logger.Info("User logged out", zap.String("session_id", sessionID))
	}
	st, err := s.sessions.Get(sessionID)
	return st, changed, err
}

func (s *AuthService) IssueToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecretKey)
}

// ValidateToken returns the session id carried by a token.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}
