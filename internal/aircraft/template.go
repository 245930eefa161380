package aircraft

import (
	"fmt"
	"strconv"
	"strings"
)

// TemplateSeat is one seat produced by expanding a SeatTemplate.
type TemplateSeat struct {
	SeatNumber string    `json:"seat_number"`
	Row        int       `json:"row"`
	Letter     string    `json:"letter"`
	Class      SeatClass `json:"class"`
}

// ExpandTemplate generates the full seat list for a template. The layout is
// deterministic: rows 1..RowCount crossed with the letters of SeatLetters
// (spaces denote the aisle and produce no seat).
func ExpandTemplate(t *SeatTemplate) []TemplateSeat {
	if t == nil || t.RowCount <= 0 {
		return nil
	}

	businessFrom, businessTo := parseRowRange(t.BusinessRows)

	letters := strings.ReplaceAll(t.SeatLetters, " ", "")
	seats := make([]TemplateSeat, 0, t.RowCount*len(letters))

	for row := 1; row <= t.RowCount; row++ {
		class := SeatClassEconomy
		if businessFrom > 0 && row >= businessFrom && row <= businessTo {
			class = SeatClassBusiness
		}
		for _, letter := range letters {
			seats = append(seats, TemplateSeat{
				SeatNumber: fmt.Sprintf("%d%c", row, letter),
				Row:        row,
				Letter:     string(letter),
				Class:      class,
			})
		}
	}

	return seats
}

// HasSeat reports whether seatNumber exists in the expanded template.
func HasSeat(t *SeatTemplate, seatNumber string) bool {
	for _, s := range ExpandTemplate(t) {
		if s.SeatNumber == seatNumber {
			return true
		}
	}
	return false
}

// parseRowRange parses ranges like "1-3". A single number ("2") is treated
// as a one-row range. Returns (0, 0) when the input is empty or malformed.
func parseRowRange(r string) (int, int) {
	r = strings.TrimSpace(r)
	if r == "" {
		return 0, 0
	}

	parts := strings.SplitN(r, "-", 2)
	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || from <= 0 {
		return 0, 0
	}
	if len(parts) == 1 {
		return from, from
	}

	to, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || to < from {
		return 0, 0
	}
	return from, to
}
