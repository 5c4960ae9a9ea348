package domain

import "encoding/json"

// FrameKind discriminates inbound websocket frames. The wire protocol types
// frames by field presence, so decoding probes the discriminator fields
// first and the check order is significant: the payment-UI hint and payment
// outcome discriminators win over the chat fallback.
type FrameKind int

const (
	FrameChat FrameKind = iota
	FramePaymentUIHint
	FramePaymentOutcome
)

// Discriminator values.
const (
	ActionShowPaymentUI = "show_payment_ui"
	TypePaymentSuccess  = "payment_success"
)

// ChatFrame is an ordinary client→server chat message.
type ChatFrame struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// BookingMeta carries the flight details attached to a payment outcome.
// Peer is the identity the booking conversation is with; the confirmation
// message is attributed to it so it renders inside that conversation.
type BookingMeta struct {
	Peer          string  `json:"recipient"`
	Name          string  `json:"name"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Airline       string  `json:"airline"`
	DateOfJourney string  `json:"dateOfJourney"`
	TotalPrice    float64 `json:"totalPrice"`
}

// PaymentOutcomeFrame is the client→server payment confirmation, multiplexed
// on the chat channel after checkout completes.
type PaymentOutcomeFrame struct {
	OrderID   string      `json:"razorpay_order_id"`
	PaymentID string      `json:"razorpay_payment_id"`
	Signature string      `json:"razorpay_signature"`
	Meta      BookingMeta `json:"booking_meta"`
}

// Frame is the decoded tagged union of all inbound frame kinds.
type Frame struct {
	Kind    FrameKind
	Chat    *ChatFrame
	Payment *PaymentOutcomeFrame
}

// DecodeFrame parses a raw websocket frame into its tagged form.
func DecodeFrame(raw []byte) (*Frame, error) {
	var probe struct {
		Action string `json:"action"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch {
	case probe.Action == ActionShowPaymentUI:
		return &Frame{Kind: FramePaymentUIHint}, nil

	case probe.Type == TypePaymentSuccess:
		var p PaymentOutcomeFrame
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return &Frame{Kind: FramePaymentOutcome, Payment: &p}, nil

	default:
		var chat ChatFrame
		if err := json.Unmarshal(raw, &chat); err != nil {
			return nil, err
		}
		return &Frame{Kind: FrameChat, Chat: &chat}, nil
	}
}

// DeliveryFrame is the server→client form of a persisted message. The _id
// comes from the store, so a delivered frame always references a durable
// record.
type DeliveryFrame struct {
	Text      string      `json:"text"`
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	ID        string      `json:"_id"`
	Type      MessageType `json:"type"`
}

// DeliveryFromMessage builds the forwarded frame for a stored message.
func DeliveryFromMessage(m *Message) *DeliveryFrame {
	return &DeliveryFrame{
		Text:      m.Text,
		Sender:    m.Sender,
		Recipient: m.Recipient,
		ID:        m.ID,
		Type:      m.Type,
	}
}

// RosterEntry is one online identity in a presence frame.
type RosterEntry struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// PresenceFrame is the server→client roster snapshot pushed on every
// connect and disconnect.
type PresenceFrame struct {
	Online []RosterEntry `json:"online"`
}
