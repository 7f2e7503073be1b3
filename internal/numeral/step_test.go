package numeral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStep checks single transitions of the integer fold.
func TestStep(t *testing.T) {
	t.Parallel()

	std := lookup(Options{})
	capital := lookup(Options{Currency: true})

	cases := []struct {
		name      string
		tbl       *table
		state     intState
		i, j, d   int
		want      string
		wantState intState
	}{
		{
			name: "leading one before ten is dropped",
			tbl:  std, i: 0, j: 1, d: 1,
			want:      "十",
			wantState: intState{prevDigit: 1, prevUnit: "十"},
		},
		{
			name: "capital keeps leading one before ten",
			tbl:  capital, i: 0, j: 1, d: 1,
			want:      "壹拾",
			wantState: intState{prevDigit: 1, prevUnit: "拾"},
		},
		{
			name: "one before ten away from the front is kept",
			tbl:  std, state: intState{prevDigit: 1, prevUnit: "百"}, i: 1, j: 1, d: 1,
			want:      "一十",
			wantState: intState{prevDigit: 1, prevUnit: "十"},
		},
		{
			name: "zero off the boundary has no unit",
			tbl:  std, state: intState{prevDigit: 2, prevUnit: "千"}, i: 1, j: 2, d: 0,
			want:      "",
			wantState: intState{prevDigit: 0, zeroRun: 1},
		},
		{
			name: "zero on the boundary keeps the group name",
			tbl:  std, state: intState{prevDigit: 2, prevUnit: "十"}, i: 1, j: 4, d: 0,
			want:      "萬",
			wantState: intState{prevDigit: 0, prevUnit: "萬", zeroRun: 1},
		},
		{
			name: "fourth zero in a row drops the group name",
			tbl:  std, state: intState{prevDigit: 0, zeroRun: 3}, i: 4, j: 4, d: 0,
			want:      "",
			wantState: intState{prevDigit: 0, zeroRun: 4},
		},
		{
			name: "digit after zeros gets one zero glyph",
			tbl:  std, state: intState{prevDigit: 0, zeroRun: 2}, i: 3, j: 1, d: 1,
			want:      "零一十",
			wantState: intState{prevDigit: 1, prevUnit: "十"},
		},
		{
			name: "two before thousand becomes pair",
			tbl:  std, i: 0, j: 3, d: 2,
			want:      "兩千",
			wantState: intState{prevDigit: 2, prevUnit: "千"},
		},
		{
			name: "two before hundred stays",
			tbl:  std, i: 0, j: 2, d: 2,
			want:      "二百",
			wantState: intState{prevDigit: 2, prevUnit: "百"},
		},
		{
			name: "two before wan after ten stays",
			tbl:  std, state: intState{prevDigit: 1, prevUnit: "十"}, i: 1, j: 4, d: 2,
			want:      "二萬",
			wantState: intState{prevDigit: 2, prevUnit: "萬"},
		},
		{
			name: "two in the units place stays",
			tbl:  std, state: intState{prevDigit: 1, prevUnit: "十"}, i: 1, j: 0, d: 2,
			want:      "二",
			wantState: intState{prevDigit: 2},
		},
		{
			name: "capital two never becomes pair",
			tbl:  capital, i: 0, j: 3, d: 2,
			want:      "貳仟",
			wantState: intState{prevDigit: 2, prevUnit: "仟"},
		},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gotState, got := tt.tbl.step(tt.state, tt.i, tt.j, tt.d)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantState, gotState)
		})
	}
}

func TestCycleUnits(t *testing.T) {
	t.Parallel()

	units := cycleUnits("十", "百", "千", groupsTraditional)
	assert.Equal(t, "", units[0])
	assert.Equal(t, "萬", units[4])
	assert.Equal(t, "億", units[8])
	assert.Equal(t, "萬億", units[12])
	assert.Equal(t, "兆", units[16])
	assert.Equal(t, "千", units[19])
	for j := 1; j < unitPositions; j += groupSize {
		assert.Equal(t, "十", units[j])
	}
}

func TestFractional(t *testing.T) {
	t.Parallel()

	std := lookup(Options{})
	capital := lookup(Options{Currency: true})

	assert.Equal(t, "零", std.fractional("0"))
	assert.Equal(t, "零零五", std.fractional("005"))
	assert.Equal(t, "", capital.fractional("0"))
	assert.Equal(t, "", capital.fractional("0000"))
	assert.Equal(t, "零伍分", capital.fractional("05"))
	assert.Equal(t, "壹角零壹厘", capital.fractional("1010"))
	assert.Equal(t, "壹角壹分壹厘壹毫", capital.fractional("111111"))
}
