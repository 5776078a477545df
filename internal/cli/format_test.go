package cli

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected string
	}{
		{"zero", 0, "0"},
		{"small", 999, "999"},
		{"thousands", 250000, "250,000"},
		{"millions", 2050000, "2,050,000"},
		{"tens of millions", 12500000, "12,500,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatPrice(tt.amount)
			if result != tt.expected {
				t.Errorf("formatPrice(%d) = %q, want %q", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestFormatOptPrice(t *testing.T) {
	if got := formatOptPrice(nil); got != "-" {
		t.Errorf("formatOptPrice(nil) = %q, want -", got)
	}
	v := int64(1000000)
	if got := formatOptPrice(&v); got != "AED 1,000,000" {
		t.Errorf("formatOptPrice(1000000) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}
