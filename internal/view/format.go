package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RSI thresholds. Both bounds are exclusive.
const (
	RSIOverboughtAbove = 70.0
	RSIOversoldBelow   = 30.0
)

// RSISignal classifies an RSI reading.
type RSISignal string

const (
	RSIOverbought RSISignal = "Overbought"
	RSIOversold   RSISignal = "Oversold"
	RSINeutral    RSISignal = "Neutral"
)

// ClassifyRSI returns Overbought above 70, Oversold below 30, else Neutral.
func ClassifyRSI(rsi float64) RSISignal {
	switch {
	case rsi > RSIOverboughtAbove:
		return RSIOverbought
	case rsi < RSIOversoldBelow:
		return RSIOversold
	default:
		return RSINeutral
	}
}

// Tone returns the colour hint for the signal.
func (s RSISignal) Tone() Tone {
	switch s {
	case RSIOverbought:
		return ToneOverbought
	case RSIOversold:
		return ToneOversold
	default:
		return ToneNeutral
	}
}

// BandPosition locates the close relative to the Bollinger Bands.
type BandPosition string

const (
	AboveUpper  BandPosition = "Above Upper (Overbought)"
	BelowLower  BandPosition = "Below Lower (Oversold)"
	WithinBands BandPosition = "Within Bands (Normal)"
)

// ClassifyBands compares the closing price against the upper and lower band.
func ClassifyBands(price, upper, lower float64) BandPosition {
	switch {
	case price > upper:
		return AboveUpper
	case price < lower:
		return BelowLower
	default:
		return WithinBands
	}
}

// Tone returns the colour hint for the position.
func (p BandPosition) Tone() Tone {
	switch p {
	case AboveUpper:
		return ToneOverbought
	case BelowLower:
		return ToneOversold
	default:
		return ToneNeutral
	}
}

// Trend is the MACD direction.
type Trend string

const (
	Bullish Trend = "Bullish"
	Bearish Trend = "Bearish"
)

// ClassifyMACD is Bullish only when the histogram is strictly positive.
func ClassifyMACD(macd, signal float64) Trend {
	if macd-signal > 0 {
		return Bullish
	}
	return Bearish
}

// Tone returns the colour hint for the trend.
func (t Trend) Tone() Tone {
	if t == Bullish {
		return TonePositive
	}
	return ToneNegative
}

// Formatter renders numbers for display.
type Formatter struct {
	currency string
	printer  *message.Printer
}

// NewFormatter creates a formatter with the given currency prefix (for
// example "Rs. ") and BCP 47 locale for thousands grouping. An unparseable
// locale falls back to English.
func NewFormatter(currency, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{currency: currency, printer: message.NewPrinter(tag)}
}

// Price formats v with the currency prefix and two decimals.
func (f *Formatter) Price(v float64) string {
	return f.currency + Fixed2(v)
}

// Percent formats v with two decimals and a trailing percent sign.
func (f *Formatter) Percent(v float64) string {
	return Fixed2(v) + "%"
}

// Volume formats v with locale thousands separators.
func (f *Formatter) Volume(v int64) string {
	return f.printer.Sprintf("%d", v)
}

// Fixed2 formats v with exactly two decimals the way JavaScript's
// toFixed(2) does: the exact binary value is rounded half away from zero,
// so 1.005 (stored as 1.00499...) gives "1.00", and a negative value that
// rounds to zero keeps its sign.
func Fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%.2f", v)
	}
	exact := decimal.RequireFromString(strconv.FormatFloat(v, 'f', 40, 64))
	out := exact.StringFixed(2)
	if v < 0 && out == "0.00" {
		out = "-" + out
	}
	return out
}
