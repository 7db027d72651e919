// internal/app/state/fees.go
package state

import (
	"strings"
	"time"

	"github.com/dalemusser/coachhub/internal/domain/models"
)

// CollectFee marks the student's fee as paid and credits the amount to
// the institute bank account. Status is monotonic: collecting an
// already-paid fee is a no-op (the balance is not credited twice).
// Students without a fee record get the default record first.
func (s *Store) CollectFee(actor Actor, studentID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleFee(studentID)
	return nil
}

// PayFee is the student self-payment path. It settles the student's own
// fee record; amount overrides the recorded amount when positive.
func (s *Store) PayFee(studentID string, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount > 0 {
		fee := s.feeRecord(studentID)
		if fee.Status == models.FeePending {
			fee.Amount = amount
			s.data.Fees[studentID] = fee
		}
	}
	s.settleFee(studentID)
}

// SendFeeReminder stamps the reminder time on the student's record.
// Reminding a paid-up student is a no-op.
func (s *Store) SendFeeReminder(actor Actor, studentID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fee := s.feeRecord(studentID)
	if fee.Status != models.FeePending {
		return nil
	}
	fee.ReminderSentAt = time.Now().UnixMilli()
	s.data.Fees[studentID] = fee
	s.markDirty()
	s.notify(Event{Kind: EventFees})
	return nil
}

// UpdateBankDetails replaces the displayed account fields. Blank fields
// keep their current value; the balance is never writable this way.
func (s *Store) UpdateBankDetails(actor Actor, bankName, accountNumber, accountName string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := strings.TrimSpace(bankName); v != "" {
		s.data.BankAccount.BankName = v
	}
	if v := strings.TrimSpace(accountNumber); v != "" {
		s.data.BankAccount.AccountNumber = v
	}
	if v := strings.TrimSpace(accountName); v != "" {
		s.data.BankAccount.AccountName = v
	}
	s.markDirty()
	s.notify(Event{Kind: EventFees})
	return nil
}

// Fees returns the full fee map.
func (s *Store) Fees() map[string]models.FeeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.FeeRecord, len(s.data.Fees))
	for id, fee := range s.data.Fees {
		out[id] = fee
	}
	return out
}

// FeeFor returns the student's fee record, defaulted if absent.
func (s *Store) FeeFor(studentID string) models.FeeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feeRecord(studentID)
}

// Bank returns the institute account.
func (s *Store) Bank() models.BankAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.BankAccount
}

// settleFee performs the pending -> paid transition and credits the
// balance. Callers hold s.mu.
func (s *Store) settleFee(studentID string) {
	fee := s.feeRecord(studentID)
	if fee.Status != models.FeePending {
		return
	}
	fee.Status = models.FeePaid
	fee.PaidAt = time.Now().UnixMilli()
	s.data.Fees[studentID] = fee
	s.data.BankAccount.Balance += fee.Amount
	s.markDirty()
	s.notify(Event{Kind: EventFees})
}

// feeRecord returns the stored record or the default. Callers hold
// s.mu.
func (s *Store) feeRecord(studentID string) models.FeeRecord {
	if fee, ok := s.data.Fees[studentID]; ok {
		return fee
	}
	return models.FeeRecord{Amount: 5000, Status: models.FeePending, DueDate: "N/A"}
}
