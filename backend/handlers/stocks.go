package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"portfolio-app/backend/market"
)

// Countries lists the country symbol lists available to the search page.
func Countries(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, market.Countries())
}

// SearchStocks returns current listings for one country. Gateway trouble
// degrades to an empty result with a warning, never an error page.
func SearchStocks(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	listings := Market.SearchByCountry(country)

	resp := map[string]any{"country": country, "stocks": listings}
	if len(listings) == 0 {
		resp["warning"] = "No stock data available right now"
	}
	respondJSON(w, http.StatusOK, resp)
}

// StockHistory returns daily OHLCV bars for a symbol over the last N days.
func StockHistory(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days < 1 || days > 3650 {
		days = 30
	}

	bars, err := Market.GetPriceHistory(symbol, days)
	if err != nil {
		slog.Warn("price history unavailable", "source", "stocks", "symbol", symbol, "error", err.Error())
		respondJSON(w, http.StatusOK, map[string]any{
			"symbol":  symbol,
			"bars":    []market.Bar{},
			"warning": "Price history is currently unavailable for " + symbol,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "days": days, "bars": bars})
}

// StockAnalysis bundles the quote, recent history and a news link for the
// analysis page.
func StockAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	resp := map[string]any{"symbol": symbol}

	quote, err := Market.GetQuote(symbol)
	if err != nil {
		slog.Warn("quote unavailable", "source", "stocks", "symbol", symbol, "error", err.Error())
		resp["warning"] = "Live data is currently unavailable for " + symbol
		resp["news_url"] = market.NewsLink(symbol, "")
		respondJSON(w, http.StatusOK, resp)
		return
	}

	resp["quote"] = quote
	resp["change"] = quote.Price.Sub(quote.PreviousClose)
	resp["news_url"] = market.NewsLink(symbol, quote.Name)

	if bars, err := Market.GetPriceHistory(symbol, 365); err == nil {
		resp["bars"] = bars
	} else {
		resp["warning"] = "Price history is currently unavailable for " + symbol
	}

	respondJSON(w, http.StatusOK, resp)
}
