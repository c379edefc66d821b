package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRupees(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole rupees", input: "100", want: 10000},
		{name: "two decimal places", input: "123.45", want: 12345},
		{name: "rounds half up", input: "0.125", want: 13},
		{name: "rounds down below half", input: "0.124", want: 12},
		{name: "sub-paisa noise", input: "10.999999", want: 1100},
		{name: "not a number", input: "ten rupees", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRupees(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("ParseRupees(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRupees(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRupees(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestToRupeesRoundTrip(t *testing.T) {
	inputs := []string{"0.01", "1", "33.33", "666.66", "999999.99"}
	for _, in := range inputs {
		paisa, err := ParseRupees(in)
		if err != nil {
			t.Fatalf("ParseRupees(%q) failed: %v", in, err)
		}
		want, _ := decimal.NewFromString(in)
		if got := ToRupees(paisa); !got.Equal(want) {
			t.Errorf("round trip of %s: got %s", in, got)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(1); err != nil {
		t.Errorf("Validate(1) = %v, want nil", err)
	}
	if err := Validate(DefaultMaxPaisa); err != nil {
		t.Errorf("Validate(max) = %v, want nil", err)
	}
	if err := Validate(0); !errors.Is(err, ErrAmountNotPositive) {
		t.Errorf("Validate(0) = %v, want ErrAmountNotPositive", err)
	}
	if err := Validate(-500); !errors.Is(err, ErrAmountNotPositive) {
		t.Errorf("Validate(-500) = %v, want ErrAmountNotPositive", err)
	}
	if err := Validate(DefaultMaxPaisa + 1); !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("Validate(max+1) = %v, want ErrAmountTooLarge", err)
	}
	if err := ValidateMax(501, 500); !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("ValidateMax(501, 500) = %v, want ErrAmountTooLarge", err)
	}
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		n     int
		want  []int64
	}{
		{name: "even split", total: 900, n: 3, want: []int64{300, 300, 300}},
		{name: "remainder to first participants", total: 1000, n: 3, want: []int64{334, 333, 333}},
		{name: "two extra paisa", total: 1001, n: 3, want: []int64{334, 334, 333}},
		{name: "single participant", total: 777, n: 1, want: []int64{777}},
		{name: "more people than paisa", total: 2, n: 5, want: []int64{1, 1, 0, 0, 0}},
		{name: "zero total", total: 0, n: 4, want: []int64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitEqually(tt.total, tt.n)
			if err != nil {
				t.Fatalf("SplitEqually(%d, %d) failed: %v", tt.total, tt.n, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(got), len(tt.want))
			}
			var sum int64
			for i, share := range got {
				if share != tt.want[i] {
					t.Errorf("share[%d] = %d, want %d", i, share, tt.want[i])
				}
				sum += share
			}
			if sum != tt.total {
				t.Errorf("shares sum to %d, want %d", sum, tt.total)
			}
		})
	}

	t.Run("invalid participant count", func(t *testing.T) {
		for _, n := range []int{0, -1} {
			if _, err := SplitEqually(1000, n); !errors.Is(err, ErrInvalidParticipantCount) {
				t.Errorf("SplitEqually(1000, %d) = %v, want ErrInvalidParticipantCount", n, err)
			}
		}
	})

	t.Run("shares differ by at most one paisa", func(t *testing.T) {
		for total := int64(0); total < 200; total++ {
			for n := 1; n <= 7; n++ {
				shares, err := SplitEqually(total, n)
				if err != nil {
					t.Fatalf("SplitEqually(%d, %d) failed: %v", total, n, err)
				}
				min, max := shares[0], shares[0]
				var sum int64
				for _, s := range shares {
					if s < min {
						min = s
					}
					if s > max {
						max = s
					}
					sum += s
				}
				if max-min > 1 {
					t.Fatalf("SplitEqually(%d, %d): shares spread %d", total, n, max-min)
				}
				if sum != total {
					t.Fatalf("SplitEqually(%d, %d): sum %d", total, n, sum)
				}
			}
		}
	})
}
