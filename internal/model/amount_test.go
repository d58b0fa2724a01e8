package model

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Amount
		wantErr  bool
	}{
		{"whole units", "25", 250000, false},
		{"two decimals", "25.50", 255000, false},
		{"four decimals", "12.3456", 123456, false},
		{"rounds fifth digit", "0.00015", 2, false},
		{"tenth of a unit", "0.1", 1000, false},
		{"zero", "0", 0, false},
		{"zero with decimals", "0.0000", 0, false},
		{"negative accepted", "-3.25", -32500, false},
		{"large history-safe value", "100000.0001", 1000000001, false},
		{"empty", "", 0, true},
		{"not a number", "abc", 0, true},
		{"double dot", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		amount   Amount
		expected string
	}{
		{255000, "25.5000"},
		{123456, "12.3456"},
		{0, "0.0000"},
		{1, "0.0001"},
		{-32500, "-3.2500"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.amount.String(); got != tt.expected {
				t.Errorf("Amount(%d).String() = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

// TestAmountRoundTripDrift verifies that repeated add/subtract cycles in
// the integer unit accumulate no rounding error.
func TestAmountRoundTripDrift(t *testing.T) {
	step, err := ParseAmount("0.1")
	if err != nil {
		t.Fatal(err)
	}

	var total Amount
	for i := 0; i < 100000; i++ {
		total += step
	}
	for i := 0; i < 100000; i++ {
		total -= step
	}

	if total != 0 {
		t.Errorf("accumulated drift: total = %d, want 0", total)
	}
}
