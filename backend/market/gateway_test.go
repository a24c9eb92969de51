package market

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartPayload = `{
  "chart": {
    "result": [
      {
        "meta": {
          "symbol": "AAPL",
          "longName": "Apple Inc.",
          "regularMarketPrice": 150.5,
          "chartPreviousClose": 148.0
        },
        "timestamp": [1700000000, 1700086400],
        "indicators": {
          "quote": [
            {
              "open": [149.0, 150.0],
              "high": [151.0, 152.0],
              "low": [148.5, 149.5],
              "close": [150.0, 150.5],
              "volume": [1000000, 1100000]
            }
          ]
        }
      }
    ]
  }
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGateway(srv.URL, time.Second)
}

func chartServer(calls *atomic.Int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		fmt.Fprint(w, chartPayload)
	}
}

func TestGetPriceHistory(t *testing.T) {
	g := newTestGateway(t, chartServer(nil))

	bars, err := g.GetPriceHistory("AAPL", 2)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Unix(1700000000, 0).UTC(), bars[0].Date)
	assert.Equal(t, "150", bars[0].Close.String())
	assert.Equal(t, "150.5", bars[1].Close.String())
	assert.Equal(t, int64(1100000), bars[1].Volume)
	assert.True(t, bars[0].Date.Before(bars[1].Date), "bars should be ordered oldest first")
}

func TestGetPriceHistory_Cached(t *testing.T) {
	var calls atomic.Int64
	g := newTestGateway(t, chartServer(&calls))

	_, err := g.GetPriceHistory("AAPL", 30)
	require.NoError(t, err)
	_, err = g.GetPriceHistory("AAPL", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load(), "second read should come from cache")

	// A different day count is a different cache key.
	_, err = g.GetPriceHistory("AAPL", 90)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestGetQuote(t *testing.T) {
	g := newTestGateway(t, chartServer(nil))

	q, err := g.GetQuote("AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc.", q.Name)
	assert.Equal(t, "150.5", q.Price.String())
	assert.Equal(t, "148", q.PreviousClose.String())
}

func TestGetQuoteBatch_SkipsFailures(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v8/finance/chart/BAD" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, chartPayload)
	})

	quotes := g.GetQuoteBatch([]string{"AAPL", "BAD"})
	assert.Len(t, quotes, 1)
	_, ok := quotes["AAPL"]
	assert.True(t, ok)
	_, ok = quotes["BAD"]
	assert.False(t, ok, "failed symbol should simply be absent")
}

func TestGetPriceHistory_ServerError(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := g.GetPriceHistory("AAPL", 30)
	assert.Error(t, err)
}

func TestGetPriceHistory_MalformedBody(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[]}}`)
	})

	_, err := g.GetPriceHistory("AAPL", 30)
	assert.Error(t, err)
}

func TestSearchByCountry(t *testing.T) {
	g := newTestGateway(t, chartServer(nil))

	listings := g.SearchByCountry("United States")
	require.Len(t, listings, len(SymbolsByCountry["United States"]))
	assert.Equal(t, "United States", listings[0].Country)
	assert.Equal(t, "2.5", listings[0].Change.String())
}

func TestSearchByCountry_Unknown(t *testing.T) {
	g := newTestGateway(t, chartServer(nil))
	assert.Empty(t, g.SearchByCountry("Atlantis"))
}

func TestSearchByCountry_Cached(t *testing.T) {
	var calls atomic.Int64
	g := newTestGateway(t, chartServer(&calls))

	g.SearchByCountry("China")
	first := calls.Load()
	g.SearchByCountry("China")
	assert.Equal(t, first, calls.Load(), "second search should be served from cache")
}

func TestCountries(t *testing.T) {
	countries := Countries()
	assert.Contains(t, countries, "United States")
	assert.Contains(t, countries, "Hong Kong")
	assert.Len(t, countries, 5)
}

func TestNewsLink(t *testing.T) {
	link := NewsLink("AAPL", "Apple Inc.")
	assert.Contains(t, link, "news.google.com")
	assert.Contains(t, link, "AAPL")

	// Falls back to the symbol when the name is unknown.
	assert.Contains(t, NewsLink("MSFT", ""), "MSFT")
}
