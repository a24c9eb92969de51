package handlers

import (
	"errors"
	"net/http"

	"portfolio-app/backend/config"
	"portfolio-app/backend/database"
	"portfolio-app/backend/market"
	"portfolio-app/backend/models"
	"portfolio-app/backend/store"

	"github.com/gorilla/sessions"
)

const sessionName = "session"

var Store *sessions.CookieStore

var (
	Users      *store.UserStore
	Portfolios *store.PortfolioStore
	Market     *market.Gateway
)

// InitStores wires the handler package to the shared database handle and
// the market gateway.
func InitStores() {
	Users = store.NewUserStore(database.DB)
	Portfolios = store.NewPortfolioStore(database.DB)
	Market = market.NewGateway(config.C.Market.BaseURL, config.C.Market.RequestTimeout)
}

// InitSession configures the cookie store from config. The secret is
// required and must not be guessable.
func InitSession() error {
	secret := config.C.Session.Secret
	if secret == "" {
		return errors.New("session secret is required (set SESSION_SECRET or session.secret in config.yaml)")
	}
	if len(secret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}

	Store = sessions.NewCookieStore([]byte(secret))
	Store.Options = &sessions.Options{
		Path: "/",
		// MaxAge 0 keeps the historical no-expiry behavior; a configured
		// timeout makes expiry explicit.
		MaxAge:   int(config.C.Session.Timeout.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   config.C.TLS.Enabled,
	}
	return nil
}

// GetCurrentUser is a variable to allow mocking in tests.
var GetCurrentUser = func(r *http.Request) *models.User {
	session, err := Store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	loggedIn, _ := session.Values["logged_in"].(bool)
	username, _ := session.Values["username"].(string)
	if !loggedIn || username == "" {
		return nil
	}
	user, err := Users.GetUser(username)
	if err != nil {
		return nil
	}
	return user
}

func clearIdentity(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, sessionName)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	session.Save(r, w)
}
