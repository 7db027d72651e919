// internal/domain/models/fee.go
package models

// Fee status values. The only legal transition is pending -> paid.
const (
	FeePending = "pending"
	FeePaid    = "paid"
)

// FeeRecord tracks one student's billing state. Amounts are in whole
// rupees; the demo does not deal in paise.
type FeeRecord struct {
	Amount         int64  `json:"amount"`
	Status         string `json:"status"`
	DueDate        string `json:"dueDate"`
	PaidAt         int64  `json:"paidAt,omitempty"`         // unix millis
	ReminderSentAt int64  `json:"reminderSentAt,omitempty"` // unix millis
}

// BankAccount is the singleton institute account that collected fees
// accumulate into.
type BankAccount struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	Balance       int64  `json:"balance"`
}
