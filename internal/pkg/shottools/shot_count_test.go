package shottools

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateShots(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		want    int
		wantErr bool
	}{
		{name: "one minute", minutes: 1.0, want: 12},
		{name: "half minute", minutes: 0.5, want: 6},
		{name: "rounds up remainder", minutes: 1.05, want: 13},
		{name: "ten minutes", minutes: 10, want: 120},
		{name: "tiny duration still one shot", minutes: 0.01, want: 1},
		{name: "six seconds", minutes: 0.1, want: 2},
		{name: "exact multiple with float noise", minutes: 7.0 / 12, want: 7},
		{name: "zero", minutes: 0, wantErr: true},
		{name: "negative", minutes: -1, wantErr: true},
		{name: "nan", minutes: math.NaN(), wantErr: true},
		{name: "inf", minutes: math.Inf(1), wantErr: true},
		{name: "huge duration does not overflow", minutes: 1e300, wantErr: true},
		{name: "over max shots", minutes: float64(MaxShots)*SecondsPerShot/60 + 1, wantErr: true},
		{name: "largest allowed", minutes: float64(MaxShots-1) * SecondsPerShot / 60, want: MaxShots - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateShots(tt.minutes)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("CalculateShots(%v) error = %v, want ErrInvalidInput", tt.minutes, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateShots(%v) unexpected error: %v", tt.minutes, err)
			}
			if got <= 0 || got != tt.want {
				t.Errorf("CalculateShots(%v) = %d, want %d", tt.minutes, got, tt.want)
			}
		})
	}
}
