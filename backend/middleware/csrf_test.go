package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const csrfSecret = "csrf-test-secret-32-chars-long!!"

func TestCSRF_GetSetsCookie(t *testing.T) {
	c := NewCSRFProtection(csrfSecret)
	handler := c.Protect(http.HandlerFunc(okHandler))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "_csrf" && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("GET should set a _csrf cookie")
	}
}

func TestCSRF_PostWithoutTokenRejected(t *testing.T) {
	c := NewCSRFProtection(csrfSecret)
	handler := c.Protect(http.HandlerFunc(okHandler))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("POST without token should be 403, got %d", w.Code)
	}
}

func TestCSRF_PostWithValidTokenPasses(t *testing.T) {
	c := NewCSRFProtection(csrfSecret)
	handler := c.Protect(http.HandlerFunc(okHandler))

	// Fetch a token first, the way a browser would.
	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest("GET", "/", nil))
	var token *http.Cookie
	for _, cookie := range get.Result().Cookies() {
		if cookie.Name == "_csrf" {
			token = cookie
		}
	}
	if token == nil {
		t.Fatal("no _csrf cookie issued")
	}

	r := httptest.NewRequest("POST", "/", nil)
	r.AddCookie(token)
	r.Header.Set("X-CSRF-Token", token.Value)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("POST with matching token should pass, got %d", w.Code)
	}
}

func TestCSRF_PostWithMismatchedTokenRejected(t *testing.T) {
	c := NewCSRFProtection(csrfSecret)
	handler := c.Protect(http.HandlerFunc(okHandler))

	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest("GET", "/", nil))
	var token *http.Cookie
	for _, cookie := range get.Result().Cookies() {
		if cookie.Name == "_csrf" {
			token = cookie
		}
	}

	r := httptest.NewRequest("POST", "/", nil)
	r.AddCookie(token)
	r.Header.Set("X-CSRF-Token", "forged-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("POST with mismatched token should be 403, got %d", w.Code)
	}
}

func TestCSRF_TokenFromOtherSecretRejected(t *testing.T) {
	issuer := NewCSRFProtection("another-secret-entirely-32-chars")
	foreign := issuer.generateToken()

	c := NewCSRFProtection(csrfSecret)
	if c.validateToken(foreign) {
		t.Error("token minted under a different secret should not validate")
	}
}
