package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"portfolio-app/backend/auth"
	"portfolio-app/backend/store"
)

// genericLoginError is deliberately the same for unknown users and wrong
// passwords so the endpoint cannot be used to enumerate usernames.
const genericLoginError = "Invalid username or password"

func Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	email := r.FormValue("email")

	if err := Users.Register(username, password, email); err != nil {
		slog.Warn("registration failed", "source", "auth", "username", username, "error", err.Error())
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			respondError(w, http.StatusConflict, "Username already exists")
		case errors.Is(err, store.ErrDuplicateEmail):
			respondError(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, store.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "Please enter a valid email address")
		case errors.Is(err, store.ErrWeakPassword), errors.Is(err, store.ErrValidation):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusServiceUnavailable, "Registration failed. Please try again.")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
}

func Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	err := Users.Authenticate(username, password)
	if err != nil {
		var locked *store.AccountLockedError
		switch {
		case errors.As(err, &locked):
			slog.Warn("login rejected: account locked", "source", "auth", "username", username)
			respondError(w, http.StatusLocked,
				fmt.Sprintf("Account locked. Try again after %s", locked.Until.Format(time.Kitchen)))
		case errors.Is(err, store.ErrUserNotFound):
			slog.Warn("login failed: user not found", "source", "auth", "username", username)
			respondError(w, http.StatusUnauthorized, genericLoginError)
		case errors.Is(err, store.ErrIncorrectPassword):
			slog.Warn("login failed: invalid password", "source", "auth", "username", username)
			respondError(w, http.StatusUnauthorized, genericLoginError)
		default:
			slog.Error("login failed", "source", "auth", "error", err.Error())
			respondError(w, http.StatusServiceUnavailable, "Login is temporarily unavailable")
		}
		return
	}

	user, err := Users.GetUser(username)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Login is temporarily unavailable")
		return
	}

	session, _ := Store.Get(r, sessionName)
	session.Values["logged_in"] = true
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	session.Values["current_page"] = pageDashboard
	session.Save(r, w)

	respondJSON(w, http.StatusOK, navState{Page: pageDashboard, LoggedIn: true, Username: user.Username})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, sessionName)
	name, _ := session.Values["username"].(string)
	slog.Info("user logged out", "source", "auth", "username", name)

	clearIdentity(w, r)
	respondJSON(w, http.StatusOK, navState{Page: pageLogin})
}

// Profile returns the sanitized record for the logged-in user.
func Profile(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	respondJSON(w, http.StatusOK, user.Info())
}

func ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	oldPassword := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")

	if err := Users.ChangePassword(user.Username, oldPassword, newPassword); err != nil {
		switch {
		case errors.Is(err, store.ErrIncorrectPassword):
			respondError(w, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, store.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusServiceUnavailable, "Password change failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// PasswordStrength backs the live strength meter on the register page.
func PasswordStrength(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")
	score := auth.Score(password)
	respondJSON(w, http.StatusOK, map[string]any{
		"score":      score,
		"strength":   auth.StrengthLabel(score),
		"violations": auth.Validate(password),
	})
}
