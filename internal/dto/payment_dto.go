package dto

import "github.com/google/uuid"

type InitiatePaymentRequest struct {
	PickupID uuid.UUID `json:"pickup_id"`
	Phone    string    `json:"phone"`
}

// PaymentCallbackRequest is the shape the payment gateway posts back after
// an STK push resolves.
type PaymentCallbackRequest struct {
	Reference  string `json:"reference"`
	ResultCode int    `json:"result_code"`
	ResultDesc string `json:"result_desc"`
	Receipt    string `json:"receipt,omitempty"`
}

type PaymentResponse struct {
	ID        uuid.UUID `json:"id"`
	PickupID  uuid.UUID `json:"pickup_id"`
	Phone     string    `json:"phone"`
	Amount    float64   `json:"amount"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
}
