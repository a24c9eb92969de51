package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
)

// CSRFProtection implements double-submit cookie validation with an HMAC
// over the random token half.
type CSRFProtection struct {
	secret []byte
}

func NewCSRFProtection(secret string) *CSRFProtection {
	return &CSRFProtection{secret: []byte(secret)}
}

func (c *CSRFProtection) generateToken() string {
	randomBytes := make([]byte, 32)
	rand.Read(randomBytes)

	mac := hmac.New(sha256.New, c.secret)
	mac.Write(randomBytes)

	token := append(randomBytes, mac.Sum(nil)...)
	return base64.URLEncoding.EncodeToString(token)
}

func (c *CSRFProtection) validateToken(token string) bool {
	if token == "" {
		return false
	}

	decoded, err := base64.URLEncoding.DecodeString(token)
	if err != nil || len(decoded) < 64 {
		return false
	}

	randomBytes := decoded[:32]
	providedSig := decoded[32:]

	mac := hmac.New(sha256.New, c.secret)
	mac.Write(randomBytes)

	return hmac.Equal(providedSig, mac.Sum(nil))
}

// Protect sets the token cookie on safe methods and validates it on
// state-changing ones.
func (c *CSRFProtection) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" || r.Method == "HEAD" || r.Method == "OPTIONS" {
			if _, err := r.Cookie("_csrf"); err != nil {
				http.SetCookie(w, &http.Cookie{
					Name:     "_csrf",
					Value:    c.generateToken(),
					Path:     "/",
					HttpOnly: false, // JavaScript needs to read this
					SameSite: http.SameSiteStrictMode,
				})
			}
			next.ServeHTTP(w, r)
			return
		}

		cookieToken, err := r.Cookie("_csrf")
		if err != nil {
			http.Error(w, "CSRF token missing", http.StatusForbidden)
			return
		}

		formToken := r.Header.Get("X-CSRF-Token")
		if formToken == "" {
			formToken = r.FormValue("_csrf")
		}

		if formToken != cookieToken.Value || !c.validateToken(formToken) {
			http.Error(w, "CSRF token invalid", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
