package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

func newTestProvider(serverURL string) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: serverURL,
		tracer:  testTracer,
		limiter: NewRateLimiter(100, time.Millisecond),
		now:     time.Now,
	}
}

const chartBody = `{
	"chart": {
		"result": [{
			"indicators": {
				"quote": [{
					"open":   [10, 11, null, 13],
					"high":   [11, 12, 13, 14],
					"low":    [9, 10, 11, 12],
					"close":  [10.5, 11.5, 12.5, 13.5],
					"volume": [1000, 2000, 3000, 4000]
				}]
			}
		}],
		"error": null
	}
}`

func TestFetchDailyParsesAndDropsNullRows(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	series, err := p.FetchDaily(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Row 2 has a null open and must be dropped.
	if len(series) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(series))
	}
	if series[2].Close != 13.5 || series[2].Volume != 4000 {
		t.Fatalf("unexpected last bar: %+v", series[2])
	}
}

func TestFetchDailyWrapsHTTPFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.FetchDaily(context.Background(), "AAPL")
	if !errors.Is(err, domain.ErrDataFetch) {
		t.Fatalf("expected ErrDataFetch, got %v", err)
	}
}

func TestFetchDailyWrapsAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.FetchDaily(context.Background(), "ZZZZZ")
	if !errors.Is(err, domain.ErrDataFetch) {
		t.Fatalf("expected ErrDataFetch, got %v", err)
	}
}

func TestFetchDailyWrapsParseFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.FetchDaily(context.Background(), "AAPL")
	if !errors.Is(err, domain.ErrDataFetch) {
		t.Fatalf("expected ErrDataFetch, got %v", err)
	}
}

func TestSyntheticProviderDeterministic(t *testing.T) {
	t.Parallel()

	p := NewSyntheticProvider()
	a, err := p.FetchDaily(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := p.FetchDaily(context.Background(), "AAPL")
	if len(a) != syntheticBars || len(b) != syntheticBars {
		t.Fatalf("expected %d bars, got %d and %d", syntheticBars, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("series not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}

	other, _ := p.FetchDaily(context.Background(), "MSFT")
	if a[0].Close == other[0].Close {
		t.Fatal("expected different symbols to generate different series")
	}
}

func TestGenerateSeriesPositivePrices(t *testing.T) {
	t.Parallel()

	series := GenerateSeries("TSLA", 200)
	for i, bar := range series {
		if bar.Close <= 0 || bar.Low <= 0 || bar.Volume <= 0 {
			t.Fatalf("non-positive values at %d: %+v", i, bar)
		}
	}
}
