package domain

// Identity is an authenticated party capable of sending and receiving
// relay traffic. Issued by the registration flow, immutable afterwards.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
