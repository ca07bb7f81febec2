package domain

import (
	"errors"
	"time"
)

// ShipmentStatus represents the lifecycle state of a shipment record.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "Pending"
	StatusInTransit ShipmentStatus = "In Transit"
	StatusDelivered ShipmentStatus = "Delivered"
	StatusCancelled ShipmentStatus = "Cancelled"
	StatusReturned  ShipmentStatus = "Returned"
)

// ShipmentType classifies the requested delivery service.
type ShipmentType string

const (
	TypeStandard      ShipmentType = "Standard"
	TypeExpress       ShipmentType = "Express"
	TypeEconomy       ShipmentType = "Economy"
	TypeOvernight     ShipmentType = "Overnight"
	TypeInternational ShipmentType = "International"
)

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrDuplicateTracking = errors.New("tracking number already exists")

// ValidStatus reports whether s is one of the known shipment statuses.
func ValidStatus(s ShipmentStatus) bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// ValidType reports whether t is one of the known shipment types.
func ValidType(t ShipmentType) bool {
	switch t {
	case TypeStandard, TypeExpress, TypeEconomy, TypeOvernight, TypeInternational:
		return true
	}
	return false
}

// Field names used for validation, the partial-update allow-list, and
// storage patches. They match the JSON contract.
const (
	FieldTrackingNumber       = "trackingNumber"
	FieldOrigin               = "origin"
	FieldDestination          = "destination"
	FieldWeight               = "weight"
	FieldDimensions           = "dimensions"
	FieldExpectedDeliveryDate = "expectedDeliveryDate"
	FieldShipmentType         = "shipmentType"
	FieldCarrier              = "carrier"
	FieldIsFragile            = "isFragile"
	FieldIsUrgent             = "isUrgent"
	FieldSenderName           = "senderName"
	FieldSenderContact        = "senderContact"
	FieldReceiverName         = "receiverName"
	FieldReceiverContact      = "receiverContact"
	FieldNotes                = "notes"
	FieldStatus               = "status"
)

// AllowedUpdateFields is the set of fields mutable via partial update.
// trackingNumber, id and createdAt are immutable after creation.
var AllowedUpdateFields = []string{
	FieldOrigin, FieldDestination, FieldWeight, FieldDimensions,
	FieldExpectedDeliveryDate, FieldShipmentType, FieldCarrier,
	FieldIsFragile, FieldIsUrgent, FieldSenderName, FieldSenderContact,
	FieldReceiverName, FieldReceiverContact, FieldNotes, FieldStatus,
}

// Shipment is the core aggregate root.
type Shipment struct {
	ID                   string         `json:"id"`
	TrackingNumber       string         `json:"trackingNumber"`
	Origin               string         `json:"origin"`
	Destination          string         `json:"destination"`
	WeightKg             float64        `json:"weight"`
	Dimensions           string         `json:"dimensions"`
	ExpectedDeliveryDate time.Time      `json:"expectedDeliveryDate"`
	ShipmentType         ShipmentType   `json:"shipmentType"`
	Carrier              string         `json:"carrier"`
	IsFragile            bool           `json:"isFragile"`
	IsUrgent             bool           `json:"isUrgent"`
	SenderName           string         `json:"senderName"`
	SenderContact        string         `json:"senderContact"`
	ReceiverName         string         `json:"receiverName"`
	ReceiverContact      string         `json:"receiverContact"`
	Notes                string         `json:"notes,omitempty"`
	Status               ShipmentStatus `json:"status"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// ShipmentPatch is a partial update keyed by the Field* constants above.
// Values hold the new field values in their domain types.
type ShipmentPatch map[string]any

// Apply copies the patch onto s. Unknown keys are ignored.
func (p ShipmentPatch) Apply(s *Shipment) {
	for field, value := range p {
		switch field {
		case FieldOrigin:
			s.Origin = value.(string)
		case FieldDestination:
			s.Destination = value.(string)
		case FieldWeight:
			s.WeightKg = value.(float64)
		case FieldDimensions:
			s.Dimensions = value.(string)
		case FieldExpectedDeliveryDate:
			s.ExpectedDeliveryDate = value.(time.Time)
		case FieldShipmentType:
			s.ShipmentType = value.(ShipmentType)
		case FieldCarrier:
			s.Carrier = value.(string)
		case FieldIsFragile:
			s.IsFragile = value.(bool)
		case FieldIsUrgent:
			s.IsUrgent = value.(bool)
		case FieldSenderName:
			s.SenderName = value.(string)
		case FieldSenderContact:
			s.SenderContact = value.(string)
		case FieldReceiverName:
			s.ReceiverName = value.(string)
		case FieldReceiverContact:
			s.ReceiverContact = value.(string)
		case FieldNotes:
			s.Notes = value.(string)
		case FieldStatus:
			s.Status = value.(ShipmentStatus)
		}
	}
}

// Fields returns the patch keys, for targeted re-validation.
func (p ShipmentPatch) Fields() []string {
	fields := make([]string, 0, len(p))
	for field := range p {
		fields = append(fields, field)
	}
	return fields
}
