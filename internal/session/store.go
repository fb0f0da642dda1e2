package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// ErrNoSession is returned when a token does not resolve to a live session.
var ErrNoSession = errors.New("session: no active session for token")

// Store binds opaque client tokens to authenticated accounts.
type Store interface {
	// Create opens a new session for the given account and returns it.
	Create(userID string) (*models.Session, error)
	// Resolve returns the account bound to the token, or ErrNoSession if the
	// token is unknown or the session has expired.
	Resolve(token string) (*models.User, error)
	// Destroy removes the session for the token. Destroying a token that has
	// no session is not an error.
	Destroy(token string) error
}

// GormStore persists sessions in the application database.
type GormStore struct {
	DB  *gorm.DB
	TTL time.Duration
}

// NewGormStore creates a database-backed session store. Sessions live for ttl
// from creation.
func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	return &GormStore{DB: db, TTL: ttl}
}

// Create opens a new session for the given account.
func (s *GormStore) Create(userID string) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sess := models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.TTL),
	}
	if err := s.DB.Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

// Resolve returns the account bound to the token.
func (s *GormStore) Resolve(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var sess models.Session
	if err := s.DB.Where("token = ?", token).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	if sess.Expired() {
		// Lazily clean up the dead row.
		s.DB.Delete(&models.Session{}, "token = ?", token)
		return nil, ErrNoSession
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return &user, nil
}

// Destroy removes the session for the token.
func (s *GormStore) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return s.DB.Delete(&models.Session{}, "token = ?", token).Error
}

// generateToken returns 32 random bytes hex-encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
