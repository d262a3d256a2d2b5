package domain

import "strconv"

const seatsPerRow = 10

// GenerateSeats enumerates the seat labels of a room with the given
// capacity: row letters starting at 'A', ten 1-based columns per row, the
// last row possibly partial. Capacity 12 yields A1..A10, B1, B2. A
// non-positive capacity yields no seats.
func GenerateSeats(capacity int) []string {
	if capacity <= 0 {
		return []string{}
	}

	seats := make([]string, 0, capacity)
	row := 'A'
	col := 1

	for len(seats) < capacity {
		seats = append(seats, string(row)+strconv.Itoa(col))

		col++
		if col > seatsPerRow {
			row++
			col = 1
		}
	}

	return seats
}
