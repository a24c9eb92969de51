package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is a user-owned collection of stock holdings. Portfolios are
// soft-deleted: IsActive flips to false and the row stays put.
type Portfolio struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index"`
	PortfolioName string    `json:"portfolio_name" gorm:"index"`
	Countries     string    `json:"-"` // comma-joined, see CountryList
	Holdings      []Holding `json:"stocks" gorm:"foreignKey:PortfolioID"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time `json:"updated_at"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
}

// Holding is one stock position inside a portfolio, unique per symbol.
type Holding struct {
	ID            uint            `json:"-" gorm:"primaryKey"`
	PortfolioID   string          `json:"-" gorm:"index:idx_portfolio_symbol,unique"`
	Symbol        string          `json:"symbol" gorm:"index:idx_portfolio_symbol,unique"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price" gorm:"type:decimal(20,8)"`
	Shares        int             `json:"shares"`
	PurchaseValue decimal.Decimal `json:"purchase_value" gorm:"type:decimal(20,8)"`
}

func (p *Portfolio) CountryList() []string {
	if p.Countries == "" {
		return nil
	}
	return strings.Split(p.Countries, ",")
}

func (p *Portfolio) SetCountries(countries []string) {
	p.Countries = strings.Join(countries, ",")
}
