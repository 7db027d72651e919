// internal/app/features/fees/types.go
package fees

import "github.com/dalemusser/coachhub/internal/domain/models"

type payRequest struct {
	Amount int64 `json:"amount"`
}

type bankRequest struct {
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
}

type feePayload struct {
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName"`
	Fee         models.FeeRecord `json:"fee"`
}

type listResponse struct {
	Fees []feePayload       `json:"fees"`
	Bank models.BankAccount `json:"bankAccount"`
}

type myFeeResponse struct {
	Fee  models.FeeRecord   `json:"fee"`
	Bank models.BankAccount `json:"bankAccount"`
}
