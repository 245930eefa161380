package aircraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplate(t *testing.T) {
	template := &SeatTemplate{
		Name:         "A320 standard",
		RowCount:     20,
		SeatLetters:  "ABC DEF",
		BusinessRows: "1-3",
	}

	seats := ExpandTemplate(template)
	require.Len(t, seats, 120)

	assert.Equal(t, "1A", seats[0].SeatNumber)
	assert.Equal(t, SeatClassBusiness, seats[0].Class)
	assert.Equal(t, "20F", seats[len(seats)-1].SeatNumber)
	assert.Equal(t, SeatClassEconomy, seats[len(seats)-1].Class)

	business := 0
	for _, s := range seats {
		if s.Class == SeatClassBusiness {
			business++
			assert.LessOrEqual(t, s.Row, 3)
		}
	}
	assert.Equal(t, 18, business)
}

func TestExpandTemplateNoBusinessRows(t *testing.T) {
	template := &SeatTemplate{RowCount: 2, SeatLetters: "AB"}

	seats := ExpandTemplate(template)
	require.Len(t, seats, 4)
	for _, s := range seats {
		assert.Equal(t, SeatClassEconomy, s.Class)
	}
}

func TestExpandTemplateDeterministic(t *testing.T) {
	template := &SeatTemplate{RowCount: 10, SeatLetters: "ABC DEF", BusinessRows: "1-2"}

	first := ExpandTemplate(template)
	second := ExpandTemplate(template)
	assert.Equal(t, first, second)
}

func TestHasSeat(t *testing.T) {
	template := &SeatTemplate{RowCount: 5, SeatLetters: "ABC"}

	assert.True(t, HasSeat(template, "1A"))
	assert.True(t, HasSeat(template, "5C"))
	assert.False(t, HasSeat(template, "6A"))
	assert.False(t, HasSeat(template, "1D"))
	assert.False(t, HasSeat(template, ""))
}

func TestParseRowRange(t *testing.T) {
	tests := []struct {
		input string
		from  int
		to    int
	}{
		{"1-3", 1, 3},
		{"2", 2, 2},
		{" 1 - 4 ", 1, 4},
		{"", 0, 0},
		{"abc", 0, 0},
		{"3-1", 0, 0},
		{"0-2", 0, 0},
	}

	for _, tt := range tests {
		from, to := parseRowRange(tt.input)
		assert.Equal(t, tt.from, from, "input %q", tt.input)
		assert.Equal(t, tt.to, to, "input %q", tt.input)
	}
}
