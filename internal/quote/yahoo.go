package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"papertrade/internal/logger"
	"papertrade/internal/metrics"
)

const (
	yahooChartURL = "https://query2.finance.yahoo.com/v8/finance/chart"
	yahooUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the subset of the v8 chart response we read.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				ShortName          string  `json:"shortName"`
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooProvider fetches quotes from the Yahoo Finance v8 chart endpoint.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooProvider creates a Yahoo Finance provider. An empty baseURL uses the public endpoint.
func NewYahooProvider(httpClient *http.Client, baseURL string) *YahooProvider {
	if baseURL == "" {
		baseURL = yahooChartURL
	}
	return &YahooProvider{httpClient: httpClient, baseURL: baseURL}
}

// Lookup fetches the latest regular market price for symbol.
func (p *YahooProvider) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if !ValidSymbol(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrSymbolNotFound, symbol)
	}

	q, err := p.fetch(ctx, symbol)
	switch {
	case err == nil:
		metrics.RecordQuoteLookup("ok")
	case isNotFound(err):
		metrics.RecordQuoteLookup("not_found")
	default:
		metrics.RecordQuoteLookup("error")
		logger.Get().Warnw("Quote lookup failed", "symbol", symbol, "error", err)
	}
	return q, err
}

func (p *YahooProvider) fetch(ctx context.Context, symbol string) (*Quote, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(symbol) + "?range=1d&interval=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var chart yahooChartResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&chart)

	// Unknown tickers come back as 404 with a chart error body.
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("chart error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("non-positive price %v for %s", meta.RegularMarketPrice, symbol)
	}

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	asOf := time.Now().UTC()
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0).UTC()
	}

	return &Quote{
		Symbol:   symbol,
		Name:     name,
		Price:    decimal.NewFromFloat(meta.RegularMarketPrice).Round(4),
		Currency: meta.Currency,
		AsOf:     asOf,
	}, nil
}
