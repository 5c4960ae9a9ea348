// Package classify derives a semantic message type from a message body.
// The type is advisory metadata consumed by rendering; it never affects
// whether a message is stored or delivered.
package classify

import (
	"strings"

	"github.com/voyatalk/voyatalk/internal/domain"
)

// Content markers, matched case-sensitively against the message body.
// Check order is significant: the booking summary marker also contains
// substrings that would satisfy the flight and hotel checks.
var (
	bookingMarker = "Flight Bookings Summary:"
	flightMarkers = []string{"flight options", "flights"}
	hotelMarkers  = []string{"Rate per night:", "Description:", "Rate", "hotel options"}
)

// Classify maps a message body to exactly one message type. Deterministic,
// pure, and total: any input resolves to one of the four types.
func Classify(text string) domain.MessageType {
	if strings.Contains(text, bookingMarker) {
		return domain.MessageTypeFlightBooking
	}
	if containsAny(text, flightMarkers) {
		return domain.MessageTypeFlight
	}
	if containsAny(text, hotelMarkers) {
		return domain.MessageTypeHotel
	}
	return domain.MessageTypeText
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
