package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stockcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	// lookbackDays covers weekends and holidays so ~100 trading bars
	// survive; maxBars trims the tail the models actually consume.
	lookbackDays = 150
	maxBars      = 100
)

// YahooProvider fetches daily OHLCV history from the Yahoo Finance chart
// API. All failures are reported as domain.ErrDataFetch.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
	now     func() time.Time
}

// NewYahooProvider creates a provider with built-in rate limiting
// (10 requests per minute).
func NewYahooProvider(tracer trace.Tracer, timeout time.Duration) *YahooProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YahooProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: yahooBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(10, 6*time.Second),
		now:     time.Now,
	}
}

// FetchDaily returns up to the trailing 100 daily bars for a symbol,
// oldest first, rows with missing fields dropped.
func (p *YahooProvider) FetchDaily(ctx context.Context, symbol string) (domain.PriceSeries, error) {
	_, span := p.tracer.Start(ctx, "yahoo.fetch-daily")
	defer span.End()

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait for %s: %v", domain.ErrDataFetch, symbol, err)
	}

	end := p.now().Unix()
	start := p.now().AddDate(0, 0, -lookbackDays).Unix()
	url := fmt.Sprintf("%s/%s?period1=%d&period2=%d&interval=1d", p.baseURL, symbol, start, end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", domain.ErrDataFetch, symbol, err)
	}
	req.Header.Set("User-Agent", "stockcast/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", domain.ErrDataFetch, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: yahoo returned %d for %s: %s", domain.ErrDataFetch, resp.StatusCode, symbol, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body for %s: %v", domain.ErrDataFetch, symbol, err)
	}

	series, err := parseChartResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response for %s: %v", domain.ErrDataFetch, symbol, err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no usable bars for %s", domain.ErrDataFetch, symbol)
	}
	if len(series) > maxBars {
		series = series[len(series)-maxBars:]
	}
	return series, nil
}

// Nullable columns: Yahoo reports null for halted or partial sessions.
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

func parseChartResponse(body []byte) (domain.PriceSeries, error) {
	var raw struct {
		Chart struct {
			Result []struct {
				Indicators struct {
					Quote []chartQuote `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
			Error *struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error %s: %s", raw.Chart.Error.Code, raw.Chart.Error.Description)
	}
	if len(raw.Chart.Result) == 0 || len(raw.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	quote := raw.Chart.Result[0].Indicators.Quote[0]
	n := len(quote.Close)
	series := make(domain.PriceSeries, 0, n)
	for i := 0; i < n; i++ {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Volume) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		series = append(series, domain.PriceBar{
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: *quote.Volume[i],
		})
	}
	return series, nil
}
