package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"portfolio-app/backend/models"
	"portfolio-app/backend/store"

	"github.com/shopspring/decimal"
)

type holdingRequest struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Shares        int             `json:"shares"`
}

func (h holdingRequest) model() models.Holding {
	return models.Holding{
		Symbol:        h.Symbol,
		Name:          h.Name,
		PurchasePrice: h.PurchasePrice,
		Shares:        h.Shares,
	}
}

// portfolioView decorates a portfolio with read-time valuation. Valuation
// is never stored; it is derived from current gateway quotes on every read.
type portfolioView struct {
	models.Portfolio
	Countries    []string        `json:"countries"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Warning      string          `json:"warning,omitempty"`
}

func ListPortfolios(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)
	portfolios, err := Portfolios.ListActive(user.ID)
	if err != nil {
		slog.Error("list portfolios failed", "source", "portfolios", "error", err.Error())
		respondError(w, http.StatusServiceUnavailable, "Could not load portfolios")
		return
	}

	views := make([]portfolioView, 0, len(portfolios))
	for i := range portfolios {
		views = append(views, portfolioView{
			Portfolio: portfolios[i],
			Countries: portfolios[i].CountryList(),
		})
	}
	respondJSON(w, http.StatusOK, views)
}

func CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)

	var req struct {
		Name      string   `json:"portfolio_name"`
		Countries []string `json:"countries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	p, err := Portfolios.Create(user.ID, req.Name, req.Countries)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicatePortfolioName):
			respondError(w, http.StatusConflict, "You already have a portfolio with that name")
		case errors.Is(err, store.ErrValidation):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("create portfolio failed", "source", "portfolios", "error", err.Error())
			respondError(w, http.StatusServiceUnavailable, "Could not create portfolio")
		}
		return
	}

	respondJSON(w, http.StatusCreated, portfolioView{Portfolio: *p, Countries: p.CountryList()})
}

func GetPortfolio(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)

	p, err := Portfolios.Get(r.PathValue("id"), user.ID)
	if err != nil {
		respondPortfolioError(w, err)
		return
	}

	view := portfolioView{Portfolio: *p, Countries: p.CountryList()}

	symbols := make([]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		symbols = append(symbols, h.Symbol)
	}
	quotes := Market.GetQuoteBatch(symbols)
	for _, h := range p.Holdings {
		q, ok := quotes[h.Symbol]
		if !ok {
			view.Warning = "Some prices are currently unavailable"
			continue
		}
		view.CurrentValue = view.CurrentValue.Add(q.Price.Mul(decimal.NewFromInt(int64(h.Shares))))
	}

	respondJSON(w, http.StatusOK, view)
}

func DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)

	if err := Portfolios.SoftDelete(r.PathValue("id"), user.ID); err != nil {
		respondPortfolioError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Portfolio deleted"})
}

func AddHolding(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)

	p, err := Portfolios.Get(r.PathValue("id"), user.ID)
	if err != nil {
		respondPortfolioError(w, err)
		return
	}

	var req holdingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Symbol == "" || req.Shares <= 0 {
		respondError(w, http.StatusBadRequest, "Symbol and a positive share count are required")
		return
	}

	if err := Portfolios.AddHolding(p.ID, req.model()); err != nil {
		respondPortfolioError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Holding added"})
}

func RemoveHolding(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)

	p, err := Portfolios.Get(r.PathValue("id"), user.ID)
	if err != nil {
		respondPortfolioError(w, err)
		return
	}

	if err := Portfolios.RemoveHolding(p.ID, r.PathValue("symbol")); err != nil {
		respondPortfolioError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Holding removed"})
}

// ReplaceHoldings backs the edit flow: the submitted list wholesale
// replaces the stored one. Zero-share rows are how the edit page marks
// removals, so they are stripped here before the store sees them.
func ReplaceHoldings(w http.ResponseWriter, r *http.Request) {
	user := GetCurrentUser(r)

	p, err := Portfolios.Get(r.PathValue("id"), user.ID)
	if err != nil {
		respondPortfolioError(w, err)
		return
	}

	var req struct {
		Holdings []holdingRequest `json:"holdings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	holdings := make([]models.Holding, 0, len(req.Holdings))
	for _, h := range req.Holdings {
		if h.Shares <= 0 {
			continue
		}
		holdings = append(holdings, h.model())
	}

	if err := Portfolios.ReplaceHoldings(p.ID, holdings); err != nil {
		respondPortfolioError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Portfolio updated"})
}

func respondPortfolioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrPortfolioNotFound):
		respondError(w, http.StatusNotFound, "Portfolio not found")
	case errors.Is(err, store.ErrDuplicateSymbol):
		respondError(w, http.StatusConflict, "Symbol is already in this portfolio")
	case errors.Is(err, store.ErrSymbolNotFound):
		respondError(w, http.StatusNotFound, "Symbol not found in this portfolio")
	default:
		slog.Error("portfolio operation failed", "source", "portfolios", "error", err.Error())
		respondError(w, http.StatusServiceUnavailable, "Portfolio operation failed")
	}
}
