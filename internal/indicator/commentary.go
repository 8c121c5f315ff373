package indicator

import (
	"fmt"
	"math"
)

// Commentary thresholds. These mirror the dashboard's long-standing rules and
// are part of its observable contract.
const (
	volHighPct      = 0.5
	volModeratePct  = 0.2
	rsiOverbought   = 70.0
	rsiOversold     = 30.0
	volumeHighRatio = 1.5
	volumeLowRatio  = 0.5
	autocorrNoise   = 0.05
)

// Commentary is the rule-based textual read of one indicator table.
type Commentary struct {
	Volatility      string `json:"volatility"`
	Trend           string `json:"trend"`
	MACD            string `json:"macd"`
	RSI             string `json:"rsi"`
	Volume          string `json:"volume"`
	Autocorrelation string `json:"autocorrelation"`
}

// Comment derives commentary for a named asset from its indicator table.
// Sections with insufficient history degrade to an explanatory sentence
// instead of dereferencing undefined values.
func Comment(name string, t *Table) Commentary {
	return Commentary{
		Volatility:      volatilityComment(name, t),
		Trend:           trendComment(name, t),
		MACD:            macdComment(name, t),
		RSI:             rsiComment(name, t),
		Volume:          volumeComment(name, t),
		Autocorrelation: autocorrComment(name, t),
	}
}

func volatilityComment(name string, t *Table) string {
	sd := stddev(t.Return)
	if math.IsNaN(sd) {
		return fmt.Sprintf("Not enough data to assess volatility for %s.", name)
	}
	switch {
	case sd > volHighPct:
		return fmt.Sprintf("%s has shown HIGH volatility in returns (%.2f%%). This indicates significant price swings and higher risk/reward opportunities.", name, sd)
	case sd > volModeratePct:
		return fmt.Sprintf("%s has shown MODERATE volatility in returns (%.2f%%). This suggests notable price movements.", name, sd)
	default:
		return fmt.Sprintf("%s has shown LOW volatility in returns (%.2f%%). Price movements have been relatively stable.", name, sd)
	}
}

func trendComment(name string, t *Table) string {
	n := t.Len()
	if n < SMALongWindow {
		return fmt.Sprintf("Not enough data for %s to calculate moving averages and determine a clear trend.", name)
	}
	sma10, sma30, price := t.SMA10[n-1], t.SMA30[n-1], t.Price[n-1]
	if math.IsNaN(sma10) || math.IsNaN(sma30) {
		return fmt.Sprintf("Not enough data for %s to calculate moving averages and determine a clear trend.", name)
	}
	switch {
	case sma10 > sma30 && price > sma10:
		return fmt.Sprintf("%s appears to be in an UPTREND. The short-term moving average is above the long-term one and the price is above both, suggesting bullish momentum.", name)
	case sma10 > sma30:
		return fmt.Sprintf("%s is in a POTENTIAL UPTREND. The short-term moving average is above the long-term one, but the price is below the short-term average, which may indicate a pullback or consolidation within the uptrend.", name)
	case sma10 < sma30 && price < sma10:
		return fmt.Sprintf("%s appears to be in a DOWNTREND. The short-term moving average is below the long-term one and the price is below both, suggesting bearish momentum.", name)
	case sma10 < sma30:
		return fmt.Sprintf("%s is in a POTENTIAL DOWNTREND. The short-term moving average is below the long-term one, but the price is above the short-term average, which may indicate a rebound or consolidation within the downtrend.", name)
	default:
		return fmt.Sprintf("%s is in a SIDEWAYS or consolidation phase. Moving averages are intertwined, suggesting a lack of clear trend.", name)
	}
}

func macdComment(name string, t *Table) string {
	n := t.Len()
	if n < MACDSlow {
		return fmt.Sprintf("Not enough data to calculate MACD for %s.", name)
	}
	line, signal := t.MACD[n-1], t.MACDSignal[n-1]

	crossedUp := line > signal
	crossedDown := line < signal
	if n >= 2 {
		crossedUp = crossedUp && t.MACD[n-2] <= t.MACDSignal[n-2]
		crossedDown = crossedDown && t.MACD[n-2] >= t.MACDSignal[n-2]
	}

	var msg string
	switch {
	case crossedUp:
		msg = fmt.Sprintf("MACD bullish crossover: the MACD line for %s has just crossed above the signal line, suggesting potential upward momentum.", name)
	case crossedDown:
		msg = fmt.Sprintf("MACD bearish crossover: the MACD line for %s has just crossed below the signal line, suggesting potential downward momentum.", name)
	case line > signal:
		msg = fmt.Sprintf("MACD is bullish: the MACD line for %s is above its signal line, indicating bullish momentum.", name)
	case line < signal:
		msg = fmt.Sprintf("MACD is bearish: the MACD line for %s is below its signal line, indicating bearish momentum.", name)
	default:
		msg = fmt.Sprintf("MACD for %s is flat or near the signal line, suggesting neutral momentum.", name)
	}

	if line > 0 {
		msg += " MACD is above the zero line, reinforcing bullish momentum."
	} else if line < 0 {
		msg += " MACD is below the zero line, reinforcing bearish momentum."
	}
	return msg
}

func rsiComment(name string, t *Table) string {
	n := t.Len()
	if n == 0 || math.IsNaN(t.RSI14[n-1]) {
		return fmt.Sprintf("Not enough data to calculate RSI for %s.", name)
	}
	last := t.RSI14[n-1]
	switch {
	case last >= rsiOverbought:
		return fmt.Sprintf("RSI for %s (%.2f) is in the OVERBOUGHT zone (>=70). This may indicate a temporary top and potential for a pullback.", name, last)
	case last <= rsiOversold:
		return fmt.Sprintf("RSI for %s (%.2f) is in the OVERSOLD zone (<=30). This may indicate a temporary bottom and potential for a rebound.", name, last)
	default:
		return fmt.Sprintf("RSI for %s (%.2f) is in the neutral zone between 30 and 70, suggesting no immediate overbought or oversold conditions.", name, last)
	}
}

func volumeComment(name string, t *Table) string {
	n := t.Len()
	avg := mean(t.Volume)
	if n == 0 || math.IsNaN(avg) {
		return fmt.Sprintf("Not enough data to assess trading volume for %s.", name)
	}
	last := t.Volume[n-1]
	switch {
	case last > avg*volumeHighRatio:
		return fmt.Sprintf("Current trading volume for %s (%.2e) is significantly HIGHER than the average (%.2e). This often accompanies strong price movements, confirming the current trend or indicating high market interest.", name, last, avg)
	case last < avg*volumeLowRatio:
		return fmt.Sprintf("Current trading volume for %s (%.2e) is significantly LOWER than the average (%.2e). This may indicate a lack of conviction behind recent price movements or a quiet period.", name, last, avg)
	default:
		return fmt.Sprintf("Current trading volume for %s (%.2e) is in line with the average (%.2e).", name, last, avg)
	}
}

func autocorrComment(name string, t *Table) string {
	ac := autocorrLag1(t.Return)
	if math.IsNaN(ac) {
		return fmt.Sprintf("Not enough data to calculate autocorrelation for %s.", name)
	}
	switch {
	case math.Abs(ac) < autocorrNoise:
		return fmt.Sprintf("The returns for %s show VERY LOW autocorrelation (%.4f). Past price movements are not a strong predictor of future ones, consistent with the weak form of the Efficient Market Hypothesis.", name, ac)
	case ac > 0:
		return fmt.Sprintf("The returns for %s show POSITIVE autocorrelation (%.4f). This could indicate some momentum or trend continuation in the short term.", name, ac)
	default:
		return fmt.Sprintf("The returns for %s show NEGATIVE autocorrelation (%.4f). This could indicate some mean reversion in the short term, with prices tending to bounce back.", name, ac)
	}
}
