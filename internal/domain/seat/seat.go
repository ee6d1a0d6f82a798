// Package seat models the static seat map of a room. Seats are immutable once
// a room's map is generated; availability is never stored on the seat itself.
package seat

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRow      = errors.New("seat row must not be empty")
	ErrInvalidNumber = errors.New("seat number must be positive")
)

// Key identifies a physical seat within a room.
type Key struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
}

func NewKey(row string, number int) (Key, error) {
	if row == "" {
		return Key{}, ErrEmptyRow
	}
	if number <= 0 {
		return Key{}, ErrInvalidNumber
	}
	return Key{Row: row, Number: number}, nil
}

func (k Key) Label() string {
	return fmt.Sprintf("%s%d", k.Row, k.Number)
}

// Seat is one entry of a room's static map, carrying its tariff class.
type Seat struct {
	Key        Key
	TariffID   int32
	PriceCents int64
}
