package indicator

import (
	"math"
	"time"
)

// Row is the wire form of one table bar. Undefined columns marshal as null
// so consumers never see NaN.
type Row struct {
	Time       time.Time `json:"time"`
	Price      float64   `json:"price"`
	Volume     float64   `json:"volume"`
	Return     *float64  `json:"return"`
	SMA10      *float64  `json:"sma_10"`
	SMA30      *float64  `json:"sma_30"`
	MACD       *float64  `json:"macd"`
	MACDSignal *float64  `json:"macd_signal"`
	MACDHist   *float64  `json:"macd_hist"`
	RSI14      *float64  `json:"rsi_14"`
	PriceDelta *float64  `json:"price_delta"`
}

// Summary carries the whole-window statistics derived alongside the table.
type Summary struct {
	Bars            int      `json:"bars"`
	Volatility      *float64 `json:"volatility"`
	AutocorrLag1    *float64 `json:"autocorr_lag1"`
	AvgVolume       *float64 `json:"avg_volume"`
	LastPrice       *float64 `json:"last_price"`
	MACDWarmupBars  int      `json:"macd_warmup_bars"`
	MACDLowConfDone bool     `json:"macd_settled"`
}

// Rows converts the table to its wire form.
func (t *Table) Rows() []Row {
	rows := make([]Row, t.Len())
	for i := range rows {
		rows[i] = Row{
			Time:       t.Times[i],
			Price:      t.Price[i],
			Volume:     t.Volume[i],
			Return:     fp(t.Return[i]),
			SMA10:      fp(t.SMA10[i]),
			SMA30:      fp(t.SMA30[i]),
			MACD:       fp(t.MACD[i]),
			MACDSignal: fp(t.MACDSignal[i]),
			MACDHist:   fp(t.MACDHist[i]),
			RSI14:      fp(t.RSI14[i]),
			PriceDelta: fp(t.PriceDelta[i]),
		}
	}
	return rows
}

// Summarize computes window-level statistics: return volatility, lag-1
// autocorrelation, average volume.
func (t *Table) Summarize() Summary {
	s := Summary{
		Bars:            t.Len(),
		Volatility:      fp(stddev(t.Return)),
		AutocorrLag1:    fp(autocorrLag1(t.Return)),
		AvgVolume:       fp(mean(t.Volume)),
		MACDWarmupBars:  MACDWarmup,
		MACDLowConfDone: t.Len() >= MACDWarmup,
	}
	if n := t.Len(); n > 0 {
		s.LastPrice = fp(t.Price[n-1])
	}
	return s
}

func fp(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return &x
}
