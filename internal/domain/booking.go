package domain

import "time"

// Payment status values for flight bookings.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusFailed = "failed"
)

// FlightBooking records a flight purchase completed through the in-chat
// payment handshake. Created only after the payment signature verifies.
type FlightBooking struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user"`
	Name          string    `json:"name"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Airline       string    `json:"airline"`
	DateOfJourney time.Time `json:"dateOfJourney"`
	TotalPrice    float64   `json:"totalPrice"`
	PaymentStatus string    `json:"payment_status"`
	OrderID       string    `json:"order_id"`
	PaymentID     string    `json:"payment_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// FlightBookingModel is the GORM model for the flight_bookings table.
type FlightBookingModel struct {
	ID            string    `gorm:"type:varchar(36);primaryKey"`
	UserID        string    `gorm:"type:varchar(36);index;not null"`
	Name          string    `gorm:"type:varchar(100);not null"`
	From          string    `gorm:"column:from_city;type:varchar(100);not null"`
	To            string    `gorm:"column:to_city;type:varchar(100);not null"`
	Airline       string    `gorm:"type:varchar(50);not null"`
	DateOfJourney time.Time `gorm:"not null"`
	TotalPrice    float64   `gorm:"not null"`
	PaymentStatus string    `gorm:"type:varchar(20);not null"`
	OrderID       string    `gorm:"type:varchar(100);index"`
	PaymentID     string    `gorm:"type:varchar(100)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for FlightBookingModel.
func (FlightBookingModel) TableName() string {
	return "flight_bookings"
}

// ToDomain converts FlightBookingModel to domain FlightBooking.
func (m *FlightBookingModel) ToDomain() *FlightBooking {
	return &FlightBooking{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		From:          m.From,
		To:            m.To,
		Airline:       m.Airline,
		DateOfJourney: m.DateOfJourney,
		TotalPrice:    m.TotalPrice,
		PaymentStatus: m.PaymentStatus,
		OrderID:       m.OrderID,
		PaymentID:     m.PaymentID,
		CreatedAt:     m.CreatedAt,
	}
}

// BookingToModel converts domain FlightBooking to FlightBookingModel.
func BookingToModel(b *FlightBooking) *FlightBookingModel {
	return &FlightBookingModel{
		ID:            b.ID,
		UserID:        b.UserID,
		Name:          b.Name,
		From:          b.From,
		To:            b.To,
		Airline:       b.Airline,
		DateOfJourney: b.DateOfJourney,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: b.PaymentStatus,
		OrderID:       b.OrderID,
		PaymentID:     b.PaymentID,
		CreatedAt:     b.CreatedAt,
	}
}
