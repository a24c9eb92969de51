package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	pageLogin            = "login"
	pageRegister         = "register"
	pageDashboard        = "dashboard"
	pagePortfolios       = "portfolios"
	pageCreatePortfolio  = "create_portfolio"
	pageMyStocks         = "my_stocks"
	pageStockSearch      = "stock_search"
	pageEditPortfolio    = "edit_portfolio"
	pagePortfolioDetails = "portfolio_details"
	pageStockAnalysis    = "stock_analysis"
	pageProfile          = "profile"
)

var knownPages = map[string]bool{
	pageLogin:            true,
	pageRegister:         true,
	pageDashboard:        true,
	pagePortfolios:       true,
	pageCreatePortfolio:  true,
	pageMyStocks:         true,
	pageStockSearch:      true,
	pageEditPortfolio:    true,
	pagePortfolioDetails: true,
	pageStockAnalysis:    true,
	pageProfile:          true,
}

// resolvePage maps a requested page identifier to the one actually shown.
// Unrecognized identifiers silently fall back to the default page, and a
// logged-out visitor only ever sees login or register.
func resolvePage(page string, loggedIn bool) string {
	if !loggedIn {
		if page == pageRegister {
			return pageRegister
		}
		return pageLogin
	}
	if !knownPages[page] {
		return pageDashboard
	}
	return page
}

type navState struct {
	Page     string `json:"page"`
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

func currentNavState(r *http.Request) navState {
	session, _ := Store.Get(r, sessionName)
	loggedIn, _ := session.Values["logged_in"].(bool)
	username, _ := session.Values["username"].(string)
	page, _ := session.Values["current_page"].(string)
	return navState{
		Page:     resolvePage(page, loggedIn),
		LoggedIn: loggedIn,
		Username: username,
	}
}

// Nav reports the current page and identity for the presentation layer.
func Nav(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentNavState(r))
}

// Navigate sets the current page and tells the presentation layer to
// redraw. The only other valid transition is Logout.
func Navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page string `json:"page"`
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		json.NewDecoder(r.Body).Decode(&req)
	} else {
		req.Page = r.FormValue("page")
	}

	session, _ := Store.Get(r, sessionName)
	loggedIn, _ := session.Values["logged_in"].(bool)

	page := resolvePage(req.Page, loggedIn)
	session.Values["current_page"] = page
	session.Save(r, w)

	respondJSON(w, http.StatusOK, currentNavState(r))
}
