package ports

import (
	"context"
	"time"

	"github.com/cargotrack/cargo-api/internal/core/domain"
)

// CreateShipmentInput carries all data needed to create a new shipment record.
// ShipmentType and Status fall back to their defaults when empty.
type CreateShipmentInput struct {
	TrackingNumber       string
	Origin               string
	Destination          string
	WeightKg             float64
	Dimensions           string
	ExpectedDeliveryDate time.Time
	ShipmentType         string
	Carrier              string
	IsFragile            bool
	IsUrgent             bool
	SenderName           string
	SenderContact        string
	ReceiverName         string
	ReceiverContact      string
	Notes                string
	Status               string
}

// UpdateShipmentInput carries a partial update. Nil pointers mean "field not
// present in the request". Only allow-listed fields appear here; the
// identifier, tracking number and creation timestamp are immutable.
type UpdateShipmentInput struct {
	Origin               *string
	Destination          *string
	WeightKg             *float64
	Dimensions           *string
	ExpectedDeliveryDate *time.Time
	ShipmentType         *string
	Carrier              *string
	IsFragile            *bool
	IsUrgent             *bool
	SenderName           *string
	SenderContact        *string
	ReceiverName         *string
	ReceiverContact      *string
	Notes                *string
	Status               *string
}

// UpdateResult reports the outcome of an update. Found is false when the
// identifier resolved to nothing; the operation still counts as completed.
type UpdateResult struct {
	Found    bool
	Shipment *domain.Shipment
}

// DeleteResult reports the outcome of a delete. TrackingNumber and ID echo
// the removed record when Found is true.
type DeleteResult struct {
	Found          bool
	TrackingNumber string
	ID             string
}

// ShipmentService defines use-case operations on the shipment collection.
type ShipmentService interface {
	Create(ctx context.Context, input CreateShipmentInput) (*domain.Shipment, error)
	ListAll(ctx context.Context) ([]*domain.Shipment, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Shipment, error)
	// FindByIdentifier resolves id-or-tracking-number and returns the record,
	// or domain.ErrShipmentNotFound.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Shipment, error)
	Update(ctx context.Context, identifier string, input UpdateShipmentInput) (*UpdateResult, error)
	Delete(ctx context.Context, identifier string) (*DeleteResult, error)
}
