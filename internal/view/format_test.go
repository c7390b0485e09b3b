package view

import (
	"math"
	"testing"
)

func TestClassifyRSI(t *testing.T) {
	tests := []struct {
		rsi  float64
		want RSISignal
		tone Tone
	}{
		{71, RSIOverbought, ToneOverbought},
		{70.01, RSIOverbought, ToneOverbought},
		{70, RSINeutral, ToneNeutral},
		{50, RSINeutral, ToneNeutral},
		{30, RSINeutral, ToneNeutral},
		{29.99, RSIOversold, ToneOversold},
		{29, RSIOversold, ToneOversold},
		{math.NaN(), RSINeutral, ToneNeutral},
	}
	for _, tt := range tests {
		got := ClassifyRSI(tt.rsi)
		if got != tt.want {
			t.Errorf("ClassifyRSI(%v) = %q, want %q", tt.rsi, got, tt.want)
		}
		if got.Tone() != tt.tone {
			t.Errorf("ClassifyRSI(%v).Tone() = %q, want %q", tt.rsi, got.Tone(), tt.tone)
		}
	}
}

func TestRSITonesDistinct(t *testing.T) {
	seen := map[string]RSISignal{}
	for _, s := range []RSISignal{RSIOverbought, RSIOversold, RSINeutral} {
		c := s.Tone().Color()
		if c == "" {
			t.Errorf("%s has no colour", s)
		}
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s share colour %s", s, prev, c)
		}
		seen[c] = s
	}
}

func TestClassifyMACD(t *testing.T) {
	tests := []struct {
		macd, signal float64
		want         Trend
	}{
		{5, 5, Bearish},
		{5.01, 5, Bullish},
		{4.99, 5, Bearish},
		{-1, -2, Bullish},
		{0, 0, Bearish},
	}
	for _, tt := range tests {
		if got := ClassifyMACD(tt.macd, tt.signal); got != tt.want {
			t.Errorf("ClassifyMACD(%v, %v) = %q, want %q", tt.macd, tt.signal, got, tt.want)
		}
	}
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		price, upper, lower float64
		want                BandPosition
	}{
		{531, 530, 480, AboveUpper},
		{530, 530, 480, WithinBands},
		{505, 530, 480, WithinBands},
		{480, 530, 480, WithinBands},
		{479.5, 530, 480, BelowLower},
	}
	for _, tt := range tests {
		if got := ClassifyBands(tt.price, tt.upper, tt.lower); got != tt.want {
			t.Errorf("ClassifyBands(%v, %v, %v) = %q, want %q", tt.price, tt.upper, tt.lower, got, tt.want)
		}
	}
}

func TestFixed2(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{2, "2.00"},
		{512.5, "512.50"},
		{1.125, "1.13"},
		{-1.125, "-1.13"},
		{-0.004, "-0.00"},
		{1234.5678, "1234.57"},
		// Binary values just below the half round down.
		{1.005, "1.00"},
		{1.045, "1.04"},
		{2.675, "2.67"},
		{-2.675, "-2.67"},
		// Exactly representable halves round away from zero.
		{0.125, "0.13"},
		{-0.375, "-0.38"},
	}
	for _, tt := range tests {
		if got := Fixed2(tt.in); got != tt.want {
			t.Errorf("Fixed2(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Fixed2(math.Inf(1)); got != "+Inf" {
		t.Errorf("Fixed2(+Inf) = %q", got)
	}
}

func TestFormatter(t *testing.T) {
	f := NewFormatter("Rs. ", "en")

	if got := f.Price(512.5); got != "Rs. 512.50" {
		t.Errorf("Price = %q", got)
	}
	if got := f.Percent(-1.254); got != "-1.25%" {
		t.Errorf("Percent = %q", got)
	}

	volumes := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, v := range volumes {
		if got := f.Volume(v.in); got != v.want {
			t.Errorf("Volume(%d) = %q, want %q", v.in, got, v.want)
		}
	}
}

func TestFormatterLocale(t *testing.T) {
	if got := NewFormatter("", "de").Volume(1234567); got != "1.234.567" {
		t.Errorf("German Volume = %q, want 1.234.567", got)
	}
	if got := NewFormatter("", "!!").Volume(1234567); got != "1,234,567" {
		t.Errorf("invalid locale should fall back to English, got %q", got)
	}
}
