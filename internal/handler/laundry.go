package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
)

type laundryService interface {
	LaundryBalance(ctx context.Context) (*domain.LaundryAccount, error)
}

type LaundryHandler struct {
	laundry laundryService
}

func NewLaundryHandler(laundry laundryService) *LaundryHandler {
	return &LaundryHandler{laundry: laundry}
}

type laundryDTO struct {
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Balance  decimal.Decimal `json:"balance"`
}

func (h *LaundryHandler) Balance(w http.ResponseWriter, r *http.Request) {
	account, err := h.laundry.LaundryBalance(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get laundry balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, laundryDTO{
		Name:     account.Name,
		Location: account.Location,
		Balance:  account.Balance,
	})
}
