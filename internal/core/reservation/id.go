package reservation

import "fmt"

// GenerateReservationID generates a reservation ID from the current max number.
// The format is RES-XXX where XXX is a zero-padded 3-digit number.
func GenerateReservationID(currentMax int) string {
	return fmt.Sprintf("RES-%03d", currentMax+1)
}

// ParseReservationNumber extracts the numeric portion from a reservation ID.
// Returns -1 if the ID format is invalid.
func ParseReservationNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "RES-%d", &num)
	if err != nil {
		return -1
	}
	return num
}
