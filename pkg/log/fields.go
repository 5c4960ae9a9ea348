package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches handler context keys)
	FieldUserID   = "user_id"
	FieldUsername = "username"

	// Relay
	FieldConnID      = "conn_id"
	FieldMessageID   = "message_id"
	FieldRecipient   = "recipient"
	FieldMessageType = "message_type"

	// Payment
	FieldOrderID   = "order_id"
	FieldPaymentID = "payment_id"
	FieldBookingID = "booking_id"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
