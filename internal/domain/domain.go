package domain

import "time"

// PriceBar is a single daily OHLCV bar.
type PriceBar struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// PriceSeries is an ordered sequence of bars, oldest first, most recent last.
type PriceSeries []PriceBar

// Closes returns the close column of the series.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Close
	}
	return out
}

// Volumes returns the volume column of the series.
func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Volume
	}
	return out
}

// Trading signals emitted by the classifier. SignalError marks a failed
// slot in a batch response.
const (
	SignalBuy   = "BUY"
	SignalSell  = "SELL"
	SignalError = "ERROR"
)

// FeatureVector holds the model inputs derived from the most recent fully
// defined row of a price series. Field order mirrors the column order the
// classifier was trained with; changing names or order without retraining
// breaks inference.
type FeatureVector struct {
	Returns       float64 `json:"returns"`
	MA10          float64 `json:"ma_10"`
	MA30          float64 `json:"ma_30"`
	Volatility    float64 `json:"volatility"`
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	MACDHistogram float64 `json:"macd_histogram"`
	CloseLag1     float64 `json:"close_lag_1"`
	CloseLag2     float64 `json:"close_lag_2"`
	CloseLag3     float64 `json:"close_lag_3"`
	CloseLag4     float64 `json:"close_lag_4"`
	CloseLag5     float64 `json:"close_lag_5"`
	ReturnsLag1   float64 `json:"returns_lag_1"`
	ReturnsLag2   float64 `json:"returns_lag_2"`
	ReturnsLag3   float64 `json:"returns_lag_3"`
	ReturnsLag4   float64 `json:"returns_lag_4"`
	ReturnsLag5   float64 `json:"returns_lag_5"`
	Momentum5     float64 `json:"momentum_5"`
	Momentum10    float64 `json:"momentum_10"`
	VolumeRatio   float64 `json:"volume_ratio"`
	BBPosition    float64 `json:"bb_position"`
	NewsSentiment float64 `json:"news_sentiment"`
}

// FeatureNames lists the model input columns in wire order.
var FeatureNames = []string{
	"returns", "ma_10", "ma_30", "volatility",
	"rsi", "macd", "macd_signal", "macd_histogram",
	"close_lag_1", "close_lag_2", "close_lag_3", "close_lag_4", "close_lag_5",
	"returns_lag_1", "returns_lag_2", "returns_lag_3", "returns_lag_4", "returns_lag_5",
	"momentum_5", "momentum_10",
	"volume_ratio", "bb_position",
	"news_sentiment",
}

// Values returns the vector in the order of FeatureNames.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.Returns, f.MA10, f.MA30, f.Volatility,
		f.RSI, f.MACD, f.MACDSignal, f.MACDHistogram,
		f.CloseLag1, f.CloseLag2, f.CloseLag3, f.CloseLag4, f.CloseLag5,
		f.ReturnsLag1, f.ReturnsLag2, f.ReturnsLag3, f.ReturnsLag4, f.ReturnsLag5,
		f.Momentum5, f.Momentum10,
		f.VolumeRatio, f.BBPosition,
		f.NewsSentiment,
	}
}

// PredictionResult is the composed outcome of one symbol's pipeline run.
type PredictionResult struct {
	Symbol         string    `json:"symbol"`
	PredictedPrice float64   `json:"predicted_price"`
	Signal         string    `json:"signal"`
	Confidence     float64   `json:"confidence"`
	Timestamp      time.Time `json:"timestamp"`
	ModelVersion   string    `json:"model_version"`
	Cached         bool      `json:"cached"`
}

// BatchResult aggregates per-symbol outcomes. Failed slots carry a
// SignalError sentinel so Predictions always matches the input length and
// order, and Successful+Failed == Total.
type BatchResult struct {
	Predictions []PredictionResult `json:"predictions"`
	Total       int                `json:"total"`
	Successful  int                `json:"successful"`
	Failed      int                `json:"failed"`
}
