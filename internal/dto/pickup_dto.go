package dto

import "github.com/google/uuid"

type CreatePickupRequest struct {
	WasteType     string     `json:"waste_type"`
	CenterID      *uuid.UUID `json:"center_id,omitempty"`
	CenterName    string     `json:"center_name"`
	Quantity      string     `json:"quantity"`
	ScheduledDate string     `json:"scheduled_date"`
	PickupAddress string     `json:"pickup_address"`
	Region        string     `json:"region"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
}

type AssignPickupRequest struct {
	CollectorID uuid.UUID `json:"collector_id"`
}

type BillPickupRequest struct {
	Weight float64 `json:"weight"`
}

type RejectPickupRequest struct {
	Reason string `json:"reason"`
}

// PickupGroup is one calendar day's worth of requests, newest day first.
type PickupGroup struct {
	Date    string        `json:"date"`
	Pickups []PickupBrief `json:"pickups"`
}

type PickupBrief struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user"`
	ResidentName   string     `json:"resident_name"`
	WasteType      string     `json:"waste_type"`
	CenterName     string     `json:"center_name"`
	Quantity       string     `json:"quantity"`
	ActualQuantity float64    `json:"actual_quantity"`
	ScheduledDate  string     `json:"scheduled_date"`
	PickupAddress  string     `json:"pickup_address"`
	Region         string     `json:"region"`
	Status         string     `json:"status"`
	CollectorID    *uuid.UUID `json:"collector,omitempty"`
	CollectorName  string     `json:"collector_name,omitempty"`
	BilledAmount   float64    `json:"billed_amount"`
	IsPaid         bool       `json:"is_paid"`
	RejectReason   string     `json:"reject_reason,omitempty"`
	CreatedAt      string     `json:"created_at"`
}
