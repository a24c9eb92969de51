package store

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portfolio-app/backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PortfolioStore handles CRUD and soft-delete over user-owned portfolios.
// Ownership is enforced in the query predicates, never after the fact.
type PortfolioStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPortfolioStore(db *gorm.DB) *PortfolioStore {
	return &PortfolioStore{db: db, now: time.Now}
}

// Create inserts a new empty portfolio. The name must be unique among the
// owner's active portfolios; soft-deleted ones do not count.
func (s *PortfolioStore) Create(owner uint, name string, countries []string) (*models.Portfolio, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: portfolio name is required", ErrValidation)
	}

	var count int64
	s.db.Model(&models.Portfolio{}).
		Where("user_id = ? AND portfolio_name = ? AND is_active = ?", owner, name, true).
		Count(&count)
	if count > 0 {
		return nil, ErrDuplicatePortfolioName
	}

	p := models.Portfolio{
		ID:            uuid.NewString(),
		UserID:        owner,
		PortfolioName: name,
		IsActive:      true,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}
	p.SetCountries(countries)

	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}

	slog.Info("portfolio created", "source", "store", "portfolio_id", p.ID, "user_id", owner)
	return &p, nil
}

// ListActive returns the owner's active portfolios, newest first.
func (s *PortfolioStore) ListActive(owner uint) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	err := s.db.Preload("Holdings").
		Where("user_id = ? AND is_active = ?", owner, true).
		Order("created_at DESC").
		Find(&portfolios).Error
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	return portfolios, nil
}

// Get loads one active portfolio scoped to its owner.
func (s *PortfolioStore) Get(id string, owner uint) (*models.Portfolio, error) {
	var p models.Portfolio
	err := s.db.Preload("Holdings").
		Where("id = ? AND user_id = ? AND is_active = ?", id, owner, true).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	return &p, nil
}

// SoftDelete marks a portfolio inactive. A mismatched owner leaves the row
// untouched and reports not-found.
func (s *PortfolioStore) SoftDelete(id string, owner uint) error {
	res := s.db.Model(&models.Portfolio{}).
		Where("id = ? AND user_id = ? AND is_active = ?", id, owner, true).
		Updates(map[string]any{"is_active": false, "updated_at": s.now()})
	if res.Error != nil {
		return fmt.Errorf("delete portfolio: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}

	slog.Info("portfolio deleted", "source", "store", "portfolio_id", id, "user_id", owner)
	return nil
}

// AddHolding appends a position. The symbol must not already be present.
func (s *PortfolioStore) AddHolding(portfolioID string, h models.Holding) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Portfolio{}).Where("id = ? AND is_active = ?", portfolioID, true).Count(&count)
		if count == 0 {
			return ErrPortfolioNotFound
		}

		tx.Model(&models.Holding{}).
			Where("portfolio_id = ? AND symbol = ?", portfolioID, h.Symbol).
			Count(&count)
		if count > 0 {
			return ErrDuplicateSymbol
		}

		h.PortfolioID = portfolioID
		h.PurchaseValue = purchaseValue(h)
		if err := tx.Create(&h).Error; err != nil {
			return fmt.Errorf("add holding: %w", err)
		}
		return s.touch(tx, portfolioID)
	})
}

// RemoveHolding drops a position by symbol.
func (s *PortfolioStore) RemoveHolding(portfolioID, symbol string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("portfolio_id = ? AND symbol = ?", portfolioID, symbol).
			Delete(&models.Holding{})
		if res.Error != nil {
			return fmt.Errorf("remove holding: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrSymbolNotFound
		}
		return s.touch(tx, portfolioID)
	})
}

// ReplaceHoldings overwrites the whole holdings list, used by the edit flow.
// Filtering of zero-share entries is the caller's job; the store writes what
// it is given.
func (s *PortfolioStore) ReplaceHoldings(portfolioID string, holdings []models.Holding) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Portfolio{}).Where("id = ? AND is_active = ?", portfolioID, true).Count(&count)
		if count == 0 {
			return ErrPortfolioNotFound
		}

		if err := tx.Where("portfolio_id = ?", portfolioID).Delete(&models.Holding{}).Error; err != nil {
			return fmt.Errorf("clear holdings: %w", err)
		}
		for i := range holdings {
			holdings[i].ID = 0
			holdings[i].PortfolioID = portfolioID
			holdings[i].PurchaseValue = purchaseValue(holdings[i])
		}
		if len(holdings) > 0 {
			if err := tx.Create(&holdings).Error; err != nil {
				return fmt.Errorf("replace holdings: %w", err)
			}
		}
		return s.touch(tx, portfolioID)
	})
}

func (s *PortfolioStore) touch(tx *gorm.DB, portfolioID string) error {
	return tx.Model(&models.Portfolio{}).Where("id = ?", portfolioID).
		UpdateColumn("updated_at", s.now()).Error
}

func purchaseValue(h models.Holding) decimal.Decimal {
	return h.PurchasePrice.Mul(decimal.NewFromInt(int64(h.Shares)))
}
