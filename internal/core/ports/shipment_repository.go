package ports

import (
	"context"
	"time"

	"github.com/cargotrack/cargo-api/internal/core/domain"
)

// ShipmentRepository defines persistence operations for shipment records.
//
// The storage layer owns the uniqueness guarantee for tracking numbers:
// concurrent creates with the same tracking number must be rejected by a
// unique index, surfaced as domain.ErrDuplicateTracking. An application-level
// check-then-insert is not acceptable.
type ShipmentRepository interface {
	// Create inserts a new record and returns it with the assigned id.
	Create(ctx context.Context, s *domain.Shipment) (*domain.Shipment, error)
	// FindByID retrieves a record by its internal identifier.
	FindByID(ctx context.Context, id string) (*domain.Shipment, error)
	// FindByTrackingNumber retrieves a record by its tracking number.
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	// List returns records ordered newest-first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int64) ([]*domain.Shipment, error)
	// Update atomically applies the patch plus the given updatedAt to the
	// record with the given id and returns the updated record.
	Update(ctx context.Context, id string, patch domain.ShipmentPatch, updatedAt time.Time) (*domain.Shipment, error)
	// Delete removes the record with the given id. Hard delete, no tombstone.
	Delete(ctx context.Context, id string) error
}
