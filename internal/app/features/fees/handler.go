// internal/app/features/fees/handler.go
package fees

import (
	"errors"
	"net/http"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/app/system/authz"
	"github.com/dalemusser/coachhub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the fees feature:
// per-student fee records, the admin collect/remind flow, student
// self-payment, and the institute bank account.
type Handler struct {
	Store *state.Store
	Log   *zap.Logger
}

// NewHandler constructs a fees Handler.
func NewHandler(store *state.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeList handles GET /api/fees: every student's record plus the
// bank account, for the admin fees screen.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	students := h.Store.Students()
	out := make([]feePayload, 0, len(students))
	for id, st := range students {
		out = append(out, feePayload{StudentID: id, StudentName: st.Name, Fee: h.Store.FeeFor(id)})
	}
	httpjson.Write(w, http.StatusOK, listResponse{Fees: out, Bank: h.Store.Bank()})
}

// ServeMine handles GET /api/fees/me: the caller's own record and the
// account to pay into.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	httpjson.Write(w, http.StatusOK, myFeeResponse{Fee: h.Store.FeeFor(u.ID), Bank: h.Store.Bank()})
}

// HandleCollect handles POST /api/fees/{studentID}/collect: the admin
// marks the fee received. Collecting twice credits the balance once.
func (h *Handler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if _, ok := h.Store.StudentByID(studentID); !ok {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	if err := h.Store.CollectFee(authz.Actor(r), studentID); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	h.Log.Info("fee collected", zap.String("student_id", studentID))
	httpjson.Write(w, http.StatusOK, myFeeResponse{Fee: h.Store.FeeFor(studentID), Bank: h.Store.Bank()})
}

// HandleRemind handles POST /api/fees/{studentID}/remind.
func (h *Handler) HandleRemind(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if _, ok := h.Store.StudentByID(studentID); !ok {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	if err := h.Store.SendFeeReminder(authz.Actor(r), studentID); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "reminder sent"})
}

// HandlePay handles POST /api/fees/pay: student self-payment. A
// positive amount overrides the recorded amount before settling.
func (h *Handler) HandlePay(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	var req payRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Amount < 0 {
		httpjson.Error(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	h.Store.PayFee(u.ID, req.Amount)
	httpjson.Write(w, http.StatusOK, myFeeResponse{Fee: h.Store.FeeFor(u.ID), Bank: h.Store.Bank()})
}

// ServeBank handles GET /api/fees/bank.
func (h *Handler) ServeBank(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.Store.Bank())
}

// HandleUpdateBank handles PUT /api/fees/bank. Blank fields keep the
// stored value; the balance is not writable through this endpoint.
func (h *Handler) HandleUpdateBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if err := h.Store.UpdateBankDetails(authz.Actor(r), req.BankName, req.AccountNumber, req.AccountName); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, h.Store.Bank())
}

func (h *Handler) writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrForbidden) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	h.Log.Error("fee mutation failed", zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}
