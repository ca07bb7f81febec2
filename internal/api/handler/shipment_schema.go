package handler

import "time"

// messageResponse is the envelope for plain informational errors.
type messageResponse struct {
	Message string `json:"message"`
}

// validationErrorResponse carries every violated field rule, not just the
// first one.
type validationErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// updateValidationErrorResponse is the update-path variant, which adds the
// success flag the PATCH contract always carries.
type updateValidationErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// --- Request types ---

// createShipmentRequest binds the create payload. Field rules are enforced
// by the domain validation, which aggregates all violations; the handler
// only pre-checks bare presence to reproduce the dedicated missing-fields
// response.
type createShipmentRequest struct {
	TrackingNumber       string    `json:"trackingNumber"`
	Origin               string    `json:"origin"`
	Destination          string    `json:"destination"`
	Weight               float64   `json:"weight"`
	Dimensions           string    `json:"dimensions"`
	ExpectedDeliveryDate time.Time `json:"expectedDeliveryDate"`
	ShipmentType         string    `json:"shipmentType"`
	Carrier              string    `json:"carrier"`
	IsFragile            bool      `json:"isFragile"`
	IsUrgent             bool      `json:"isUrgent"`
	SenderName           string    `json:"senderName"`
	SenderContact        string    `json:"senderContact"`
	ReceiverName         string    `json:"receiverName"`
	ReceiverContact      string    `json:"receiverContact"`
	Notes                string    `json:"notes"`
	Status               string    `json:"status"`
}

// updateShipmentRequest binds a partial update. Pointers distinguish absent
// fields from zero values. trackingNumber, id and createdAt are not bindable
// here: they are immutable after creation and silently ignored when sent.
type updateShipmentRequest struct {
	Origin               *string    `json:"origin"`
	Destination          *string    `json:"destination"`
	Weight               *float64   `json:"weight"`
	Dimensions           *string    `json:"dimensions"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate"`
	ShipmentType         *string    `json:"shipmentType"`
	Carrier              *string    `json:"carrier"`
	IsFragile            *bool      `json:"isFragile"`
	IsUrgent             *bool      `json:"isUrgent"`
	SenderName           *string    `json:"senderName"`
	SenderContact        *string    `json:"senderContact"`
	ReceiverName         *string    `json:"receiverName"`
	ReceiverContact      *string    `json:"receiverContact"`
	Notes                *string    `json:"notes"`
	Status               *string    `json:"status"`
}

// --- Response types ---

// shipmentResponse is the full record view returned by create, find, list
// and update.
type shipmentResponse struct {
	ID                   string    `json:"id"`
	TrackingNumber       string    `json:"trackingNumber"`
	Origin               string    `json:"origin"`
	Destination          string    `json:"destination"`
	Weight               float64   `json:"weight"`
	Dimensions           string    `json:"dimensions"`
	ExpectedDeliveryDate time.Time `json:"expectedDeliveryDate"`
	ShipmentType         string    `json:"shipmentType"`
	Carrier              string    `json:"carrier"`
	IsFragile            bool      `json:"isFragile"`
	IsUrgent             bool      `json:"isUrgent"`
	SenderName           string    `json:"senderName"`
	SenderContact        string    `json:"senderContact"`
	ReceiverName         string    `json:"receiverName"`
	ReceiverContact      string    `json:"receiverContact"`
	Notes                string    `json:"notes,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// updateShipmentResponse reports an update outcome. Shipment is null when
// the identifier resolved to nothing; the status code is still 200 so blind
// retries see the same shape either way.
type updateShipmentResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Shipment *shipmentResponse `json:"shipment"`
}

type deletedShipmentRef struct {
	TrackingNumber string `json:"trackingNumber"`
	ID             string `json:"id"`
}

type deleteShipmentResponse struct {
	Success         bool                `json:"success"`
	Message         string              `json:"message"`
	DeletedShipment *deletedShipmentRef `json:"deletedShipment,omitempty"`
}
