package services

import (
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/testtrackhq/testtrack/internal/config"
	"github.com/testtrackhq/testtrack/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "qa_session"

var (
	authOnce    sync.Once
	authSecret  []byte
	authHash    []byte
	authTTL     time.Duration
	authInitErr error
)

// InitAuth prepares the shared-password session gate. The configured password
// is bcrypt-hashed once at startup so the plaintext never sits in memory
// longer than needed.
func InitAuth(cfg *config.Config) error {
	authOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			authInitErr = err
			return
		}
		authHash = hash
		authSecret = []byte(cfg.SessionSecret)
		authTTL = time.Duration(cfg.SessionTTLHours) * time.Hour
		log.Printf("Session gate initialized, ttl=%s", authTTL)
	})
	return authInitErr
}

// IsAuthInitialized returns true once InitAuth has run successfully.
func IsAuthInitialized() bool {
	return authHash != nil
}

// Login checks the shared password and issues a signed session token.
func Login(password string) (string, time.Time, error) {
	if !IsAuthInitialized() {
		return "", time.Time{}, types.InternalError(authInitErr)
	}
	if err := bcrypt.CompareHashAndPassword(authHash, []byte(password)); err != nil {
		return "", time.Time{}, types.AuthError("invalid password")
	}

	expires := time.Now().Add(authTTL)
	claims := jwt.RegisteredClaims{
		Subject:   "qa-session",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(authSecret)
	if err != nil {
		return "", time.Time{}, types.InternalError(err)
	}
	return token, expires, nil
}

// ValidateSession checks a session token from the cookie.
func ValidateSession(token string) error {
	if !IsAuthInitialized() {
		return types.AuthError("session gate not initialized")
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return authSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return types.AuthError("invalid session: %v", err)
	}
	if !parsed.Valid {
		return types.AuthError("session is not valid")
	}
	return nil
}
