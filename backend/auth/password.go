package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"unicode"
)

const specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// NewSalt returns a fresh 16-byte salt, hex-encoded.
func NewSalt() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// HashPassword digests password+salt with SHA-256 and returns the hex digest.
// An empty salt yields the legacy unsalted digest, which verification still
// accepts for records created before salting was introduced.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares a candidate password against a stored digest in
// constant time.
func VerifyPassword(password, storedHash, salt string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}

// Validate returns the list of policy violations for a password. An empty
// slice means the password is acceptable.
func Validate(password string) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, "Password must be at least 8 characters long")
	}
	if !containsClass(password, unicode.IsUpper) {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if !containsClass(password, unicode.IsLower) {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if !containsClass(password, unicode.IsDigit) {
		violations = append(violations, "Password must contain at least one number")
	}
	if !strings.ContainsAny(password, specialChars) {
		violations = append(violations, "Password must contain at least one special character")
	}

	return violations
}

// Score rates a password from 0 to 100. Length carries the largest bucket,
// each character class a smaller one.
func Score(password string) int {
	score := 0
	if len(password) >= 8 {
		score += 40
	}
	if containsClass(password, unicode.IsUpper) {
		score += 15
	}
	if containsClass(password, unicode.IsLower) {
		score += 15
	}
	if containsClass(password, unicode.IsDigit) {
		score += 15
	}
	if strings.ContainsAny(password, specialChars) {
		score += 15
	}
	return score
}

// StrengthLabel maps a score to the label shown next to the strength meter.
func StrengthLabel(score int) string {
	switch {
	case score >= 100:
		return "Strong"
	case score >= 85:
		return "Good"
	case score >= 70:
		return "Fair"
	case score >= 40:
		return "Weak"
	default:
		return "Very Weak"
	}
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}
