package domain

import "errors"

// Error taxonomy for the prediction pipeline. Callers classify failures
// with errors.Is; wrapping preserves the kind across layers.
var (
	// ErrInvalidSymbol marks malformed ticker input (user error).
	ErrInvalidSymbol = errors.New("invalid stock symbol")

	// ErrModelLoad marks a startup failure to load a model artifact.
	ErrModelLoad = errors.New("model load failed")

	// ErrModelUnavailable marks inference attempted without a loaded model.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrDataFetch marks an upstream market data failure (retryable by the caller).
	ErrDataFetch = errors.New("data fetch failed")

	// ErrInsufficientHistory marks a series too short to produce one valid feature row.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrPrediction is the catch-all inference failure.
	ErrPrediction = errors.New("prediction failed")
)

// ErrorKind returns a short stable label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSymbol):
		return "invalid_symbol"
	case errors.Is(err, ErrModelLoad):
		return "model_load"
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ErrDataFetch):
		return "data_fetch"
	case errors.Is(err, ErrInsufficientHistory):
		return "insufficient_history"
	case errors.Is(err, ErrPrediction):
		return "prediction"
	default:
		return "internal"
	}
}
