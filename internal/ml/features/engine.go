package features

import (
	"context"
	"fmt"
	"math"

	"stockcast/internal/domain"
	"stockcast/internal/ta"
)

const (
	// MinBars is the shortest series that leaves one fully defined row
	// after the 30-bar moving average stabilizes.
	MinBars = 30

	maShort        = 10
	maLong         = 30
	volatilityWin  = 10
	rsiPeriod      = 14
	macdFast       = 12
	macdSlow       = 26
	macdSignalSpan = 9
	lagCount       = 5
	volumeMAWin    = 10
	bbPeriod       = 20
	bbStdDevs      = 2.0
)

// SentimentSource supplies the news sentiment score in [-0.5, 0.5]
// appended to every feature vector. Implementations never fail; they fall
// back to a deterministic score instead.
type SentimentSource interface {
	Score(ctx context.Context, symbol string) float64
}

// Engine derives the model input vector from a raw price series. All
// indicator math is deterministic; the only external input is the
// sentiment lookup.
type Engine struct {
	sentiment SentimentSource
}

func NewEngine(sentiment SentimentSource) *Engine {
	return &Engine{sentiment: sentiment}
}

// Build evaluates every indicator at the most recent bar and returns the
// single feature vector used for inference. Fails with
// domain.ErrInsufficientHistory when the series is shorter than MinBars or
// any feature at the last row is undefined.
func (e *Engine) Build(ctx context.Context, symbol string, series domain.PriceSeries) (domain.FeatureVector, error) {
	if len(series) < MinBars {
		return domain.FeatureVector{}, fmt.Errorf("%w: got %d bars, need at least %d",
			domain.ErrInsufficientHistory, len(series), MinBars)
	}

	closes := series.Closes()
	volumes := series.Volumes()
	last := len(series) - 1

	returns := ta.ReturnsSeries(closes)
	ma10 := ta.RollingMeanSeries(closes, maShort)
	ma30 := ta.RollingMeanSeries(closes, maLong)
	volatility := ta.RollingStdSeries(returns, volatilityWin)
	rsi := ta.RSISeries(closes, rsiPeriod)
	macd, macdSignal, macdHist := ta.MACDSeries(closes, macdFast, macdSlow, macdSignalSpan)
	volumeMA := ta.RollingMeanSeries(volumes, volumeMAWin)
	_, bbUpper, bbLower := ta.BollingerSeries(closes, bbPeriod, bbStdDevs)

	volumeRatio := math.NaN()
	if !math.IsNaN(volumeMA[last]) && volumeMA[last] != 0 {
		volumeRatio = volumes[last] / volumeMA[last]
	}

	bbPosition := math.NaN()
	if !math.IsNaN(bbUpper[last]) && !math.IsNaN(bbLower[last]) && bbUpper[last] != bbLower[last] {
		bbPosition = (closes[last] - bbLower[last]) / (bbUpper[last] - bbLower[last])
	}

	fv := domain.FeatureVector{
		Returns:       returns[last],
		MA10:          ma10[last],
		MA30:          ma30[last],
		Volatility:    volatility[last],
		RSI:           rsi[last],
		MACD:          macd[last],
		MACDSignal:    macdSignal[last],
		MACDHistogram: macdHist[last],
		CloseLag1:     closes[last-1],
		CloseLag2:     closes[last-2],
		CloseLag3:     closes[last-3],
		CloseLag4:     closes[last-4],
		CloseLag5:     closes[last-5],
		ReturnsLag1:   returns[last-1],
		ReturnsLag2:   returns[last-2],
		ReturnsLag3:   returns[last-3],
		ReturnsLag4:   returns[last-4],
		ReturnsLag5:   returns[last-5],
		Momentum5:     closes[last] - closes[last-5],
		Momentum10:    closes[last] - closes[last-10],
		VolumeRatio:   volumeRatio,
		BBPosition:    bbPosition,
	}
	if e.sentiment != nil {
		fv.NewsSentiment = e.sentiment.Score(ctx, symbol)
	}

	if anyUndefined(fv.Values()) {
		return domain.FeatureVector{}, fmt.Errorf("%w: no fully defined row at latest bar",
			domain.ErrInsufficientHistory)
	}
	return fv, nil
}

func anyUndefined(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
