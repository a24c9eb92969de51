package store

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"portfolio-app/backend/auth"
	"portfolio-app/backend/models"

	"gorm.io/gorm"
)

const (
	// MaxFailedLogins failed attempts lock the account for LockoutWindow.
	MaxFailedLogins = 5
	LockoutWindow   = 15 * time.Minute

	minUsernameLength = 3
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserStore persists user records and owns every account-state transition:
// registration, credential verification, failed-login counting and the
// lock/unlock cycle.
type UserStore struct {
	db *gorm.DB

	// now is swappable so tests can move through the lockout window.
	now func() time.Time
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db, now: time.Now}
}

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Register creates a new user. All checks run before any write; the first
// failing check is returned.
func (s *UserStore) Register(username, password, email string) error {
	if username == "" || password == "" || email == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(username) < minUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters long", ErrValidation, minUsernameLength)
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return ErrDuplicateUsername
	}

	if !ValidateEmail(email) {
		return ErrInvalidEmail
	}

	s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count)
	if count > 0 {
		return ErrDuplicateEmail
	}

	if violations := auth.Validate(password); len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(violations, "; "))
	}

	salt := auth.NewSalt()
	user := models.User{
		Username:            username,
		Email:               strings.ToLower(email),
		PasswordHash:        auth.HashPassword(password, salt),
		Salt:                salt,
		Role:                models.RoleUser,
		IsActive:            true,
		FailedLoginAttempts: 0,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Unique index may still fire under concurrent registration.
		if strings.Contains(err.Error(), "UNIQUE") {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}

	slog.Info("user registered", "source", "store", "username", username)
	return nil
}

// Verify checks a password against the stored digest. An unknown username
// returns false, not an error. A digest is computed either way so the two
// cases cost the same.
func (s *UserStore) Verify(username, password string) bool {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		auth.HashPassword(password, "")
		return false
	}
	return auth.VerifyPassword(password, user.PasswordHash, user.Salt)
}

// Authenticate runs the full login flow: lockout check, credential check,
// failure accounting. On success the failure counter and lock are cleared
// and last_login is stamped.
func (s *UserStore) Authenticate(username, password string) error {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.HashPassword(password, "")
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	now := s.now()
	if user.AccountLockedUntil != nil {
		if now.Before(*user.AccountLockedUntil) {
			return &AccountLockedError{Until: *user.AccountLockedUntil}
		}
		// Window elapsed: unlock and fall through to normal verification.
		s.db.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]any{"failed_login_attempts": 0, "account_locked_until": nil})
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.Salt) {
		s.recordFailure(user.ID, now)
		return ErrIncorrectPassword
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{
			"failed_login_attempts": 0,
			"account_locked_until":  nil,
			"last_login":            now,
		}).Error; err != nil {
		return fmt.Errorf("record login: %w", err)
	}

	slog.Info("user logged in", "source", "store", "username", username)
	return nil
}

// recordFailure bumps the failure counter and arms the lock once the
// threshold is reached. Both steps are single guarded UPDATEs so two
// concurrent failures cannot race past the threshold check.
func (s *UserStore) recordFailure(userID uint, now time.Time) {
	s.db.Model(&models.User{}).
		Where("id = ? AND failed_login_attempts < ?", userID, MaxFailedLogins).
		UpdateColumn("failed_login_attempts", gorm.Expr("failed_login_attempts + 1"))

	res := s.db.Model(&models.User{}).
		Where("id = ? AND failed_login_attempts >= ? AND account_locked_until IS NULL", userID, MaxFailedLogins).
		UpdateColumn("account_locked_until", now.Add(LockoutWindow))
	if res.RowsAffected > 0 {
		slog.Warn("account locked", "source", "store", "user_id", userID, "until", now.Add(LockoutWindow))
	}
}

// ChangePassword swaps the stored digest after re-verifying the current
// password and running the new one through the policy.
func (s *UserStore) ChangePassword(username, oldPassword, newPassword string) error {
	if !s.Verify(username, oldPassword) {
		return ErrIncorrectPassword
	}
	if violations := auth.Validate(newPassword); len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(violations, "; "))
	}

	salt := auth.NewSalt()
	if err := s.db.Model(&models.User{}).Where("username = ?", username).
		Updates(map[string]any{
			"password_hash": auth.HashPassword(newPassword, salt),
			"salt":          salt,
		}).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slog.Info("password changed", "source", "store", "username", username)
	return nil
}

// GetUserInfo returns the sanitized profile view for a username.
func (s *UserStore) GetUserInfo(username string) (*models.UserInfo, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	info := user.Info()
	return &info, nil
}

// GetUser returns the full record, for handlers that need the ID.
func (s *UserStore) GetUser(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}
