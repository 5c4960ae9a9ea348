package domain

import "time"

// MessageType is the semantic classification of a message body. It is
// advisory metadata for rendering; it never affects storage or delivery.
type MessageType string

const (
	MessageTypeText          MessageType = "text"
	MessageTypeFlight        MessageType = "flight"
	MessageTypeHotel         MessageType = "hotel"
	MessageTypeFlightBooking MessageType = "flight_booking"
)

// Message is a persisted chat message. Immutable after creation; there is
// no edit or delete path.
type Message struct {
	ID        string      `json:"_id"`
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	Text      string      `json:"text"`
	Type      MessageType `json:"type"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Sender    string    `gorm:"type:varchar(36);index;not null"`
	Recipient string    `gorm:"type:varchar(36);index;not null"`
	Text      string    `gorm:"type:text;not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for MessageModel.
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts MessageModel to domain Message.
func (m *MessageModel) ToDomain() *Message {
	return &Message{
		ID:        m.ID,
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Text:      m.Text,
		Type:      MessageType(m.Type),
		CreatedAt: m.CreatedAt,
	}
}

// MessageToModel converts a domain Message to MessageModel.
func MessageToModel(msg *Message) *MessageModel {
	return &MessageModel{
		ID:        msg.ID,
		Sender:    msg.Sender,
		Recipient: msg.Recipient,
		Text:      msg.Text,
		Type:      string(msg.Type),
		CreatedAt: msg.CreatedAt,
	}
}
