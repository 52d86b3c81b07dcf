package dto

import (
	"github.com/recycletrack/recycletrack-backend/internal/finance"
)

// FinancialsResponse is the admin financial dashboard payload.
type FinancialsResponse struct {
	Summary        finance.Summary      `json:"summary"`
	DriverStats    []finance.DriverStat `json:"driver_stats"`
	WasteBreakdown []finance.WasteSlice `json:"waste_breakdown"`
}

type WalletResponse struct {
	Balance       float64               `json:"balance"`
	TotalEarned   float64               `json:"total_earned"`
	PendingAmount float64               `json:"pending_amount"`
	Transactions  []TransactionResponse `json:"transactions"`
}

type TransactionResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	ReferenceCode string  `json:"reference_code"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
}

type CreateWithdrawalRequest struct {
	Points      int    `json:"points"`
	MpesaNumber string `json:"mpesa_number"`
}

type ResolveWithdrawalRequest struct {
	Reason string `json:"reason,omitempty"`
}
