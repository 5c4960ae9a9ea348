package classify

import (
	"testing"

	"github.com/voyatalk/voyatalk/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.MessageType
	}{
		{"plain text", "hello", domain.MessageTypeText},
		{"empty body", "", domain.MessageTypeText},
		{"flight options", "here are some flight options", domain.MessageTypeFlight},
		{"flights keyword", "I found 3 flights for you", domain.MessageTypeFlight},
		{"hotel rate", "Rate per night: $100", domain.MessageTypeHotel},
		{"hotel description", "Description: sea view room", domain.MessageTypeHotel},
		{"hotel rate bare", "Rate is negotiable", domain.MessageTypeHotel},
		{"hotel options", "a few hotel options near the beach", domain.MessageTypeHotel},
		{"booking summary", "Flight Bookings Summary:\nBooking 1 ...", domain.MessageTypeFlightBooking},
		{
			// The booking marker wins even when flight and hotel markers
			// are also present.
			"booking precedence",
			"Flight Bookings Summary: ...flights...Rate...",
			domain.MessageTypeFlightBooking,
		},
		{
			// Flight beats hotel when both match and no booking marker.
			"flight precedence over hotel",
			"flights at this Rate are rare",
			domain.MessageTypeFlight,
		},
		{"case sensitive markers", "FLIGHTS AND RATES", domain.MessageTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "Flight Bookings Summary: hotel options and flights"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("classification not deterministic: %q then %q", first, got)
		}
	}
}
