package indicator

import (
	"math"
	"time"

	"github.com/Reyzen1/aicrypto-data-analysis/internal/domain/models"
)

// Standard indicator parameters.
const (
	SMAShortWindow = 10
	SMALongWindow  = 30
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignalSpan = 9
	RSIPeriod      = 14
)

// MACDWarmup is the bar count below which MACD values are numerically
// unstable. The EMA recursion is defined from bar 0, so early values are
// low-confidence rather than missing.
const MACDWarmup = MACDSlow

// Table is the derived-indicator table over an aligned price/volume window.
// All columns are index-aligned with Times; undefined values are NaN.
type Table struct {
	Times      []time.Time
	Price      []float64
	Volume     []float64
	Return     []float64 // percent change vs previous bar
	SMA10      []float64
	SMA30      []float64
	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64
	RSI14      []float64
	PriceDelta []float64
}

// Len returns the number of aligned bars.
func (t *Table) Len() int { return len(t.Times) }

// Compute derives the full indicator table from parallel price and volume
// series. The two series are inner-joined on timestamp first; in practice
// they come from the same upstream response and are already aligned, so the
// join is a safety net. Everything is recomputed in full on every call.
func Compute(prices, volumes models.Series) *Table {
	times, price, volume := align(prices, volumes)

	t := &Table{
		Times:  times,
		Price:  price,
		Volume: volume,
	}
	t.Return = pctReturns(price)
	t.SMA10 = sma(price, SMAShortWindow)
	t.SMA30 = sma(price, SMALongWindow)
	t.MACD, t.MACDSignal, t.MACDHist = macd(price)
	t.RSI14 = rsi(price, RSIPeriod)
	t.PriceDelta = deltas(price)
	return t
}

// align inner-joins two sorted series on timestamp, dropping points present
// in only one of them.
func align(prices, volumes models.Series) ([]time.Time, []float64, []float64) {
	n := len(prices)
	if len(volumes) < n {
		n = len(volumes)
	}
	times := make([]time.Time, 0, n)
	price := make([]float64, 0, n)
	volume := make([]float64, 0, n)

	i, j := 0, 0
	for i < len(prices) && j < len(volumes) {
		pt, vt := prices[i].Time, volumes[j].Time
		switch {
		case pt.Before(vt):
			i++
		case vt.Before(pt):
			j++
		default:
			times = append(times, pt)
			price = append(price, prices[i].Value)
			volume = append(volume, volumes[j].Value)
			i++
			j++
		}
	}
	return times, price, volume
}

// pctReturns computes (p[i]/p[i-1] - 1) * 100; undefined at index 0.
func pctReturns(price []float64) []float64 {
	out := nans(len(price))
	for i := 1; i < len(price); i++ {
		if price[i-1] == 0 {
			continue
		}
		out[i] = (price[i]/price[i-1] - 1) * 100
	}
	return out
}

// sma computes the trailing simple moving average; undefined until a full
// window has accumulated.
func sma(price []float64, window int) []float64 {
	out := nans(len(price))
	if window <= 0 || len(price) < window {
		return out
	}
	sum := 0.0
	for i, p := range price {
		sum += p
		if i >= window {
			sum -= price[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// ema computes the recursive exponential moving average seeded at price[0],
// alpha = 2/(span+1). Defined from index 0 onward.
func ema(price []float64, span int) []float64 {
	out := make([]float64, len(price))
	if len(price) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = price[0]
	for i := 1; i < len(price); i++ {
		out[i] = price[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// macd returns the MACD line (EMA12-EMA26), its EMA9 signal line, and the
// histogram (line minus signal).
func macd(price []float64) (line, signal, hist []float64) {
	fast := ema(price, MACDFast)
	slow := ema(price, MACDSlow)
	line = make([]float64, len(price))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}
	signal = ema(line, MACDSignalSpan)
	hist = make([]float64, len(price))
	for i := range hist {
		hist[i] = line[i] - signal[i]
	}
	return line, signal, hist
}

// rsi computes Wilder-smoothed RSI; undefined until `period` return
// observations exist. A window with zero average loss saturates at 100.
func rsi(price []float64, period int) []float64 {
	out := nans(len(price))
	if len(price) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := price[i] - price[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(price); i++ {
		change := price[i] - price[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// deltas computes price[i] - price[i-1]; undefined at index 0. The sign
// drives volume-bar coloring downstream.
func deltas(price []float64) []float64 {
	out := nans(len(price))
	for i := 1; i < len(price); i++ {
		out[i] = price[i] - price[i-1]
	}
	return out
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
