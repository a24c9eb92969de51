package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func navigateTo(t *testing.T, page string, cookies []*http.Cookie) navState {
	t.Helper()
	body := strings.NewReader(`{"page":"` + page + `"}`)
	r := httptest.NewRequest("POST", "/api/nav", body)
	r.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	Navigate(w, r)

	var state navState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}
	return state
}

func loginAlice(t *testing.T) []*http.Cookie {
	t.Helper()
	postForm(t, Register, "/api/register", registerForm("alice", "alice@example.com"), nil)
	w := postForm(t, Login, "/api/login", url.Values{
		"username": {"alice"}, "password": {"Sup3rSecret!"},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func TestNavigate_LoggedOutAlwaysLandsOnLogin(t *testing.T) {
	setupHandlerTest(t)

	for _, page := range []string{"dashboard", "portfolios", "profile", "bogus"} {
		if state := navigateTo(t, page, nil); state.Page != "login" {
			t.Errorf("logged-out navigation to %q should land on login, got %q", page, state.Page)
		}
	}
}

func TestNavigate_LoggedOutMayRegister(t *testing.T) {
	setupHandlerTest(t)

	if state := navigateTo(t, "register", nil); state.Page != "register" {
		t.Errorf("register page should be reachable while logged out, got %q", state.Page)
	}
}

func TestNavigate_KnownPages(t *testing.T) {
	setupHandlerTest(t)
	cookies := loginAlice(t)

	for _, page := range []string{
		"dashboard", "portfolios", "create_portfolio", "my_stocks",
		"stock_search", "edit_portfolio", "portfolio_details",
		"stock_analysis", "profile",
	} {
		if state := navigateTo(t, page, cookies); state.Page != page {
			t.Errorf("navigation to %q landed on %q", page, state.Page)
		}
	}
}

// An unrecognized page identifier is not an error; it silently falls back
// to the default page.
func TestNavigate_UnknownPageFallsBack(t *testing.T) {
	setupHandlerTest(t)
	cookies := loginAlice(t)

	if state := navigateTo(t, "no_such_page", cookies); state.Page != "dashboard" {
		t.Errorf("unknown page should fall back to dashboard, got %q", state.Page)
	}
	if state := navigateTo(t, "", cookies); state.Page != "dashboard" {
		t.Errorf("empty page should fall back to dashboard, got %q", state.Page)
	}
}

func TestNav_ReportsIdentityAndPage(t *testing.T) {
	setupHandlerTest(t)
	cookies := loginAlice(t)

	r := httptest.NewRequest("GET", "/api/nav", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	Nav(w, r)

	var state navState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}
	if !state.LoggedIn || state.Username != "alice" {
		t.Errorf("nav state should carry the identity, got %+v", state)
	}
	if state.Page != "dashboard" {
		t.Errorf("fresh login should sit on dashboard, got %q", state.Page)
	}
}
