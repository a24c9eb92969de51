package market

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Bar is one day of OHLCV data.
type Bar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Quote is the latest price snapshot for a symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	PreviousClose decimal.Decimal `json:"previous_close"`
}

// Listing is one row of a country search result.
type Listing struct {
	Symbol  string          `json:"symbol"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Change  decimal.Decimal `json:"change"`
	Country string          `json:"country"`
}

// Gateway fetches price data from the chart API. It is an untrusted,
// occasionally unavailable collaborator: every failure surfaces as an error
// the caller downgrades to "no data". Responses are cached process-wide.
type Gateway struct {
	baseURL    string
	client     *http.Client
	cache      *ttlCache
	searchTTL  time.Duration
	historyTTL time.Duration
	quoteTTL   time.Duration
}

func NewGateway(baseURL string, timeout time.Duration) *Gateway {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: timeout},
		cache:      newTTLCache(),
		searchTTL:  time.Hour,
		historyTTL: 24 * time.Hour,
		quoteTTL:   time.Hour,
	}
}

// GetPriceHistory returns up to days of daily bars for a symbol, oldest
// first. Cached for 24 hours keyed by (symbol, days).
func (g *Gateway) GetPriceHistory(symbol string, days int) ([]Bar, error) {
	key := fmt.Sprintf("history:%s:%d", symbol, days)
	if v, ok := g.cache.get(key); ok {
		return v.([]Bar), nil
	}

	doc, err := g.fetchChart(symbol, fmt.Sprintf("%dd", days))
	if err != nil {
		return nil, err
	}

	bars, err := parseBars(doc)
	if err != nil {
		return nil, fmt.Errorf("parse chart for %q: %w", symbol, err)
	}

	g.cache.set(key, bars, g.historyTTL)
	return bars, nil
}

// GetQuote returns the latest price snapshot for one symbol.
func (g *Gateway) GetQuote(symbol string) (Quote, error) {
	key := "quote:" + symbol
	if v, ok := g.cache.get(key); ok {
		return v.(Quote), nil
	}

	doc, err := g.fetchChart(symbol, "2d")
	if err != nil {
		return Quote{}, err
	}

	q, err := parseQuote(symbol, doc)
	if err != nil {
		return Quote{}, fmt.Errorf("parse quote for %q: %w", symbol, err)
	}

	g.cache.set(key, q, g.quoteTTL)
	return q, nil
}

// GetQuoteBatch fetches quotes for a set of symbols. Symbols that fail are
// simply absent from the result; absence is a soft failure for callers.
func (g *Gateway) GetQuoteBatch(symbols []string) map[string]Quote {
	quotes := make(map[string]Quote, len(symbols))
	for _, sym := range symbols {
		q, err := g.GetQuote(sym)
		if err != nil {
			slog.Warn("quote unavailable", "source", "market", "symbol", sym, "error", err.Error())
			continue
		}
		quotes[sym] = q
	}
	return quotes
}

// SearchByCountry returns current listings for a country's symbol list. An
// unknown country yields an empty result. Cached for one hour per country.
func (g *Gateway) SearchByCountry(country string) []Listing {
	symbols, ok := SymbolsByCountry[country]
	if !ok {
		return nil
	}

	key := "search:" + country
	if v, ok := g.cache.get(key); ok {
		return v.([]Listing)
	}

	quotes := g.GetQuoteBatch(symbols)
	listings := make([]Listing, 0, len(quotes))
	for _, sym := range symbols {
		q, ok := quotes[sym]
		if !ok {
			continue
		}
		listings = append(listings, Listing{
			Symbol:  q.Symbol,
			Name:    q.Name,
			Price:   q.Price,
			Change:  q.Price.Sub(q.PreviousClose),
			Country: country,
		})
	}

	g.cache.set(key, listings, g.searchTTL)
	return listings
}

// NewsLink builds a Google News search URL for a company.
func NewsLink(symbol, name string) string {
	if name == "" {
		name = symbol
	}
	query := url.QueryEscape(fmt.Sprintf("%s %s stock", name, symbol))
	return "https://news.google.com/search?q=" + query + "&hl=en-US&gl=US&ceid=US:en"
}

func (g *Gateway) fetchChart(symbol, rng string) (any, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", g.baseURL, url.PathEscape(symbol), rng)

	resp, err := g.client.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %d", symbol, resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode chart for %q: %w", symbol, err)
	}
	return doc, nil
}

func parseBars(doc any) ([]Bar, error) {
	timestamps, err := floatSlice(doc, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, err
	}
	opens, _ := floatSlice(doc, "$.chart.result[0].indicators.quote[0].open")
	highs, _ := floatSlice(doc, "$.chart.result[0].indicators.quote[0].high")
	lows, _ := floatSlice(doc, "$.chart.result[0].indicators.quote[0].low")
	closes, err := floatSlice(doc, "$.chart.result[0].indicators.quote[0].close")
	if err != nil {
		return nil, err
	}
	volumes, _ := floatSlice(doc, "$.chart.result[0].indicators.quote[0].volume")

	bars := make([]Bar, 0, len(timestamps))
	for i := range timestamps {
		if i >= len(closes) {
			break
		}
		bar := Bar{
			Date:  time.Unix(int64(timestamps[i]), 0).UTC(),
			Close: decimal.NewFromFloat(closes[i]),
		}
		if i < len(opens) {
			bar.Open = decimal.NewFromFloat(opens[i])
		}
		if i < len(highs) {
			bar.High = decimal.NewFromFloat(highs[i])
		}
		if i < len(lows) {
			bar.Low = decimal.NewFromFloat(lows[i])
		}
		if i < len(volumes) {
			bar.Volume = int64(volumes[i])
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseQuote(symbol string, doc any) (Quote, error) {
	price, err := floatAt(doc, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return Quote{}, err
	}
	prev, err := floatAt(doc, "$.chart.result[0].meta.chartPreviousClose")
	if err != nil {
		prev = price
	}

	name := symbol
	if jval, err := jsonpath.Get("$.chart.result[0].meta.longName", doc); err == nil {
		if s, ok := jval.(string); ok && s != "" {
			name = s
		}
	}

	return Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         decimal.NewFromFloat(price),
		PreviousClose: decimal.NewFromFloat(prev),
	}, nil
}

// floatAt extracts a single float from a jsonpath expression. jsonpath is
// never clear about whether it returns a list of one answer or a single
// answer, so both are accepted.
func floatAt(doc any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, fmt.Errorf("path %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("path %q: not a number: %v", path, jval)
	}
	return val, nil
}

// floatSlice extracts a numeric array. JSON nulls (days the venue was
// closed) come through as zeros.
func floatSlice(doc any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("path %q: not an array: %v", path, jval)
	}
	out := make([]float64, 0, len(jlist))
	for _, v := range jlist {
		f, _ := v.(float64)
		out = append(out, f)
	}
	return out, nil
}
