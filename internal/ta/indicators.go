package ta

import "math"

// Series helpers mirror the pandas rolling semantics the models were
// trained with: positions without enough history are NaN, rolling std is
// the sample standard deviation (ddof=1), and EMA is the adjust=false
// recursion seeded with the first value.

func NaNSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// ReturnsSeries computes simple percentage returns close[t]/close[t-1]-1.
// Index 0 is NaN.
func ReturnsSeries(closes []float64) []float64 {
	out := NaNSeries(len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out[i] = closes[i]/closes[i-1] - 1
	}
	return out
}

// RollingMeanSeries computes the trailing window mean. NaN inputs inside
// the window propagate, as do positions with fewer than window values.
func RollingMeanSeries(values []float64, window int) []float64 {
	out := NaNSeries(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingStdSeries computes the trailing window sample standard deviation.
func RollingStdSeries(values []float64, window int) []float64 {
	out := NaNSeries(len(values))
	if window <= 1 {
		return out
	}
	means := RollingMeanSeries(values, window)
	for i := window - 1; i < len(values); i++ {
		if math.IsNaN(means[i]) {
			continue
		}
		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - means[i]
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window-1))
	}
	return out
}

// EMASeries computes the exponential moving average with smoothing factor
// 2/(span+1), seeded by the first value.
func EMASeries(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if span <= 1 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSISeries computes RSI over simple rolling means of gains and losses.
// Positions with fewer than period deltas are NaN. A window with zero
// average loss yields 100.
func RSISeries(closes []float64, period int) []float64 {
	out := NaNSeries(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}
	gains := NaNSeries(len(closes))
	losses := NaNSeries(len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gains[i] = math.Max(delta, 0)
		losses[i] = math.Max(-delta, 0)
	}
	avgGain := RollingMeanSeries(gains, period)
	avgLoss := RollingMeanSeries(losses, period)
	for i := period; i < len(closes); i++ {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			continue
		}
		if avgLoss[i] == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - (100 / (1 + rs))
	}
	return out
}

// MACDSeries returns the MACD line, signal line, and histogram for the
// given fast/slow/signal spans.
func MACDSeries(values []float64, fast, slow, signal int) ([]float64, []float64, []float64) {
	if len(values) == 0 {
		return nil, nil, nil
	}
	fastEMA := EMASeries(values, fast)
	slowEMA := EMASeries(values, slow)
	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMASeries(macdLine, signal)
	histogram := make([]float64, len(values))
	for i := range values {
		histogram[i] = macdLine[i] - signalLine[i]
	}
	return macdLine, signalLine, histogram
}

// BollingerSeries returns middle, upper, and lower bands at stdDevs sample
// standard deviations around the rolling mean.
func BollingerSeries(values []float64, period int, stdDevs float64) ([]float64, []float64, []float64) {
	middle := RollingMeanSeries(values, period)
	std := RollingStdSeries(values, period)
	upper := NaNSeries(len(values))
	lower := NaNSeries(len(values))
	for i := range values {
		if math.IsNaN(middle[i]) || math.IsNaN(std[i]) {
			continue
		}
		upper[i] = middle[i] + stdDevs*std[i]
		lower[i] = middle[i] - stdDevs*std[i]
	}
	return middle, upper, lower
}
