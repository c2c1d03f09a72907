package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcDuration(t *testing.T) {
	tests := []struct {
		name      string
		paid      int64
		unitPrice int64
		parties   int64
		wantDays  int64
		wantTotal int64
	}{
		{name: "exact multiple", paid: 900, unitPrice: 100, parties: 3, wantDays: 3, wantTotal: 900},
		{name: "remainder favours payer pool", paid: 950, unitPrice: 100, parties: 3, wantDays: 3, wantTotal: 900},
		{name: "below one day is zero", paid: 250, unitPrice: 100, parties: 3, wantDays: 0, wantTotal: 0},
		{name: "single party", paid: 1001, unitPrice: 10, parties: 1, wantDays: 100, wantTotal: 1000},
		{name: "zero paid", paid: 0, unitPrice: 100, parties: 3, wantDays: 0, wantTotal: 0},
		{name: "price above per-account share", paid: 99, unitPrice: 100, parties: 1, wantDays: 0, wantTotal: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, total, err := CalcDuration(tt.paid, tt.unitPrice, tt.parties)
			require.NoError(t, err)
			require.Equal(t, tt.wantDays, days)
			require.Equal(t, tt.wantTotal, total)
			require.LessOrEqual(t, total, tt.paid)
		})
	}
}

func TestCalcDurationRejectsZeroDivisors(t *testing.T) {
	_, _, err := CalcDuration(100, 0, 3)
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, _, err = CalcDuration(100, 10, 0)
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, _, err = CalcDuration(-1, 10, 1)
	require.ErrorIs(t, err, ErrNegativeAmount)
}

// The floor guarantee must hold over a spread of awkward inputs, not
// just the handpicked table above.
func TestCalcDurationNeverOvercharges(t *testing.T) {
	for paid := int64(0); paid < 500; paid += 7 {
		for price := int64(1); price < 40; price += 3 {
			for parties := int64(1); parties < 6; parties++ {
				days, total, err := CalcDuration(paid, price, parties)
				require.NoError(t, err)
				require.GreaterOrEqual(t, days, int64(0))
				require.LessOrEqual(t, total, paid)
				require.Equal(t, days*price*parties, total)
			}
		}
	}
}
