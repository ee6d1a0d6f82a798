package seat

import "errors"

var (
	ErrInvalidRows   = errors.New("room rows must be between 1 and 26")
	ErrInvalidPerRow = errors.New("seats per row must be between 1 and 99")
)

// Tariff IDs of the fixed seat classes.
const (
	TariffStandard   int32 = 1
	TariffPremium    int32 = 2
	TariffAccessible int32 = 3
)

// GenerateMap lays out a room: rows labelled A onward, seats numbered from 1.
// The front row is accessible seating, the back row is premium when the room
// is deep enough for the distinction to mean anything, everything else is
// standard.
func GenerateMap(rows, perRow int) ([]Seat, error) {
	if rows < 1 || rows > 26 {
		return nil, ErrInvalidRows
	}
	if perRow < 1 || perRow > 99 {
		return nil, ErrInvalidPerRow
	}

	out := make([]Seat, 0, rows*perRow)
	for r := 0; r < rows; r++ {
		tariff := TariffStandard
		switch {
		case r == 0 && rows >= 3:
			tariff = TariffAccessible
		case r == rows-1 && rows >= 3:
			tariff = TariffPremium
		}

		label := string(rune('A' + r))
		for n := 1; n <= perRow; n++ {
			out = append(out, Seat{
				Key:      Key{Row: label, Number: n},
				TariffID: tariff,
			})
		}
	}
	return out, nil
}
