package store

import (
	"testing"
	"time"

	"portfolio-app/backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPortfolioStore(t *testing.T) *PortfolioStore {
	return NewPortfolioStore(newTestDB(t))
}

func holding(symbol string, shares int, price float64) models.Holding {
	return models.Holding{
		Symbol:        symbol,
		Name:          symbol + " Inc.",
		Shares:        shares,
		PurchasePrice: decimal.NewFromFloat(price),
	}
}

func TestCreatePortfolio(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", []string{"United States"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.IsActive)
	assert.Equal(t, []string{"United States"}, p.CountryList())
}

func TestCreatePortfolio_DuplicateNameSameOwner(t *testing.T) {
	s := newTestPortfolioStore(t)

	_, err := s.Create(1, "Tech", []string{"United States"})
	require.NoError(t, err)

	_, err = s.Create(1, "Tech", []string{"Australia"})
	assert.ErrorIs(t, err, ErrDuplicatePortfolioName)

	// A different owner may reuse the name.
	_, err = s.Create(2, "Tech", []string{"United States"})
	assert.NoError(t, err)
}

func TestCreatePortfolio_NameFreedBySoftDelete(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)
	require.NoError(t, s.SoftDelete(p.ID, 1))

	// Uniqueness only counts active portfolios.
	_, err = s.Create(1, "Tech", nil)
	assert.NoError(t, err)
}

func TestListActive_OrderAndFiltering(t *testing.T) {
	s := newTestPortfolioStore(t)

	base := time.Now()
	for i, name := range []string{"Oldest", "Middle", "Newest"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		s.now = func() time.Time { return ts }
		_, err := s.Create(1, name, nil)
		require.NoError(t, err)
	}
	s.now = time.Now

	deleted, err := s.Create(1, "Deleted", nil)
	require.NoError(t, err)
	require.NoError(t, s.SoftDelete(deleted.ID, 1))

	portfolios, err := s.ListActive(1)
	require.NoError(t, err)
	require.Len(t, portfolios, 3)
	assert.Equal(t, "Newest", portfolios[0].PortfolioName)
	assert.Equal(t, "Oldest", portfolios[2].PortfolioName)
}

func TestSoftDelete_WrongOwner(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SoftDelete(p.ID, 2), ErrPortfolioNotFound)

	// Still active for the real owner.
	got, err := s.Get(p.ID, 1)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestAddHolding(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)

	require.NoError(t, s.AddHolding(p.ID, holding("AAPL", 5, 150)))

	got, err := s.Get(p.ID, 1)
	require.NoError(t, err)
	require.Len(t, got.Holdings, 1)
	assert.Equal(t, "AAPL", got.Holdings[0].Symbol)
	assert.True(t, got.Holdings[0].PurchaseValue.Equal(decimal.NewFromInt(750)),
		"purchase_value should be price*shares, got %s", got.Holdings[0].PurchaseValue)
}

func TestAddHolding_DuplicateSymbol(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)

	require.NoError(t, s.AddHolding(p.ID, holding("AAPL", 5, 150)))
	assert.ErrorIs(t, s.AddHolding(p.ID, holding("AAPL", 2, 140)), ErrDuplicateSymbol)
}

func TestRemoveHolding(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)
	require.NoError(t, s.AddHolding(p.ID, holding("AAPL", 5, 150)))

	require.NoError(t, s.RemoveHolding(p.ID, "AAPL"))
	assert.ErrorIs(t, s.RemoveHolding(p.ID, "AAPL"), ErrSymbolNotFound)

	// Symbol can be re-added after removal.
	assert.NoError(t, s.AddHolding(p.ID, holding("AAPL", 3, 160)))
}

func TestReplaceHoldings(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)
	require.NoError(t, s.AddHolding(p.ID, holding("AAPL", 5, 150)))
	require.NoError(t, s.AddHolding(p.ID, holding("MSFT", 2, 300)))

	require.NoError(t, s.ReplaceHoldings(p.ID, []models.Holding{
		holding("GOOGL", 1, 2800),
	}))

	got, err := s.Get(p.ID, 1)
	require.NoError(t, err)
	require.Len(t, got.Holdings, 1)
	assert.Equal(t, "GOOGL", got.Holdings[0].Symbol)
	assert.True(t, got.Holdings[0].PurchaseValue.Equal(decimal.NewFromInt(2800)))
}

func TestReplaceHoldings_Empty(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)
	require.NoError(t, s.AddHolding(p.ID, holding("AAPL", 5, 150)))

	require.NoError(t, s.ReplaceHoldings(p.ID, nil))

	got, err := s.Get(p.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, got.Holdings)
}

func TestMutationsBumpUpdatedAt(t *testing.T) {
	s := newTestPortfolioStore(t)

	created := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return created }
	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)

	later := created.Add(30 * time.Minute)
	s.now = func() time.Time { return later }
	require.NoError(t, s.AddHolding(p.ID, holding("AAPL", 5, 150)))

	got, err := s.Get(p.ID, 1)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestGet_UnknownOrForeign(t *testing.T) {
	s := newTestPortfolioStore(t)

	p, err := s.Create(1, "Tech", nil)
	require.NoError(t, err)

	_, err = s.Get("no-such-id", 1)
	assert.ErrorIs(t, err, ErrPortfolioNotFound)

	_, err = s.Get(p.ID, 2)
	assert.ErrorIs(t, err, ErrPortfolioNotFound)
}
