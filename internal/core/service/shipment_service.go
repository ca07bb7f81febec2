package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargotrack/cargo-api/internal/api/metrics"
	"github.com/cargotrack/cargo-api/internal/core/domain"
	"github.com/cargotrack/cargo-api/internal/core/ports"
)

const defaultRecentLimit = 5

// RecentCache abstracts the short-lived cache in front of the recent
// listing (Redis). A nil slice with a nil error means cache miss.
type RecentCache interface {
	Get(ctx context.Context, limit int) ([]*domain.Shipment, error)
	Set(ctx context.Context, limit int, shipments []*domain.Shipment) error
	Invalidate(ctx context.Context) error
}

type ShipmentService struct {
	repo   ports.ShipmentRepository
	cache  RecentCache
	logger zerolog.Logger
}

func NewShipmentService(repo ports.ShipmentRepository, cache RecentCache, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{repo: repo, cache: cache, logger: logger}
}

// Create validates all field rules, persists the record, and returns it with
// the assigned id and timestamps. Validation reports every violated field at
// once; duplicate tracking numbers surface as domain.ErrDuplicateTracking
// from the storage layer's unique index.
func (s *ShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	now := time.Now().UTC()
	shipment := &domain.Shipment{
		TrackingNumber:       strings.TrimSpace(input.TrackingNumber),
		Origin:               strings.TrimSpace(input.Origin),
		Destination:          strings.TrimSpace(input.Destination),
		WeightKg:             input.WeightKg,
		Dimensions:           strings.TrimSpace(input.Dimensions),
		ExpectedDeliveryDate: input.ExpectedDeliveryDate,
		ShipmentType:         domain.ShipmentType(strings.TrimSpace(input.ShipmentType)),
		Carrier:              strings.TrimSpace(input.Carrier),
		IsFragile:            input.IsFragile,
		IsUrgent:             input.IsUrgent,
		SenderName:           strings.TrimSpace(input.SenderName),
		SenderContact:        strings.TrimSpace(input.SenderContact),
		ReceiverName:         strings.TrimSpace(input.ReceiverName),
		ReceiverContact:      strings.TrimSpace(input.ReceiverContact),
		Notes:                strings.TrimSpace(input.Notes),
		Status:               domain.ShipmentStatus(strings.TrimSpace(input.Status)),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if shipment.ShipmentType == "" {
		shipment.ShipmentType = domain.TypeStandard
	}
	if shipment.Status == "" {
		shipment.Status = domain.StatusPending
	}

	if err := shipment.Validate(); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("create").Inc()
		return nil, err
	}

	created, err := s.repo.Create(ctx, shipment)
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateTracking) {
			s.logger.Error().Err(err).Msg("failed to create shipment")
		}
		return nil, err
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(string(created.ShipmentType)).Inc()
	s.invalidateRecent(ctx)

	s.logger.Info().Str("tracking_number", created.TrackingNumber).Str("id", created.ID).Msg("shipment created")
	return created, nil
}

// ListAll returns the whole collection ordered newest-first.
func (s *ShipmentService) ListAll(ctx context.Context) ([]*domain.Shipment, error) {
	return s.repo.List(ctx, 0)
}

// ListRecent returns the newest records truncated to limit. A non-positive
// limit falls back to the default of 5. Results are served from the recent
// cache when fresh.
func (s *ShipmentService) ListRecent(ctx context.Context, limit int) ([]*domain.Shipment, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	if cached, err := s.cache.Get(ctx, limit); err != nil {
		s.logger.Warn().Err(err).Msg("recent cache read failed, falling back to storage")
	} else if cached != nil {
		metrics.RecentCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	} else {
		metrics.RecentCacheTotal.WithLabelValues("miss").Inc()
	}

	shipments, err := s.repo.List(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, limit, shipments); err != nil {
		s.logger.Warn().Err(err).Msg("recent cache write failed")
	}
	return shipments, nil
}

// FindByIdentifier resolves the identifier and returns the matching record,
// or domain.ErrShipmentNotFound.
func (s *ShipmentService) FindByIdentifier(ctx context.Context, identifier string) (*domain.Shipment, error) {
	return s.resolve(ctx, identifier)
}

// Update resolves the identifier and applies the allow-listed fields present
// in the input. A miss is reported as a completed no-op (Found=false), not an
// error. Changed fields are re-validated; updatedAt is refreshed on success.
func (s *ShipmentService) Update(ctx context.Context, identifier string, input ports.UpdateShipmentInput) (*ports.UpdateResult, error) {
	existing, err := s.resolve(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			s.logger.Warn().Str("identifier", identifier).Msg("shipment not found for update")
			return &ports.UpdateResult{Found: false}, nil
		}
		return nil, err
	}

	patch := buildPatch(input)

	patched := *existing
	patch.Apply(&patched)
	if err := patched.ValidateFields(patch.Fields()...); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("update").Inc()
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing.ID, patch, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("id", existing.ID).Msg("failed to update shipment")
		return nil, err
	}

	s.invalidateRecent(ctx)
	s.logger.Info().Str("identifier", identifier).Str("id", updated.ID).Msg("shipment updated")
	return &ports.UpdateResult{Found: true, Shipment: updated}, nil
}

// Delete resolves the identifier and hard-deletes the record. Like Update, a
// miss is a completed no-op rather than an error.
func (s *ShipmentService) Delete(ctx context.Context, identifier string) (*ports.DeleteResult, error) {
	existing, err := s.resolve(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			s.logger.Warn().Str("identifier", identifier).Msg("shipment not found for deletion")
			return &ports.DeleteResult{Found: false}, nil
		}
		return nil, err
	}

	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		s.logger.Error().Err(err).Str("id", existing.ID).Msg("failed to delete shipment")
		return nil, err
	}

	s.invalidateRecent(ctx)
	s.logger.Info().Str("tracking_number", existing.TrackingNumber).Str("id", existing.ID).Msg("shipment deleted")
	return &ports.DeleteResult{
		Found:          true,
		TrackingNumber: existing.TrackingNumber,
		ID:             existing.ID,
	}, nil
}

func (s *ShipmentService) invalidateRecent(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("recent cache invalidation failed")
	}
}

// buildPatch collects the fields present in the input. Only allow-listed
// fields exist on UpdateShipmentInput, so immutable fields can never leak in.
func buildPatch(input ports.UpdateShipmentInput) domain.ShipmentPatch {
	patch := domain.ShipmentPatch{}
	if input.Origin != nil {
		patch[domain.FieldOrigin] = strings.TrimSpace(*input.Origin)
	}
	if input.Destination != nil {
		patch[domain.FieldDestination] = strings.TrimSpace(*input.Destination)
	}
	if input.WeightKg != nil {
		patch[domain.FieldWeight] = *input.WeightKg
	}
	if input.Dimensions != nil {
		patch[domain.FieldDimensions] = strings.TrimSpace(*input.Dimensions)
	}
	if input.ExpectedDeliveryDate != nil {
		patch[domain.FieldExpectedDeliveryDate] = *input.ExpectedDeliveryDate
	}
	if input.ShipmentType != nil {
		patch[domain.FieldShipmentType] = domain.ShipmentType(strings.TrimSpace(*input.ShipmentType))
	}
	if input.Carrier != nil {
		patch[domain.FieldCarrier] = strings.TrimSpace(*input.Carrier)
	}
	if input.IsFragile != nil {
		patch[domain.FieldIsFragile] = *input.IsFragile
	}
	if input.IsUrgent != nil {
		patch[domain.FieldIsUrgent] = *input.IsUrgent
	}
	if input.SenderName != nil {
		patch[domain.FieldSenderName] = strings.TrimSpace(*input.SenderName)
	}
	if input.SenderContact != nil {
		patch[domain.FieldSenderContact] = strings.TrimSpace(*input.SenderContact)
	}
	if input.ReceiverName != nil {
		patch[domain.FieldReceiverName] = strings.TrimSpace(*input.ReceiverName)
	}
	if input.ReceiverContact != nil {
		patch[domain.FieldReceiverContact] = strings.TrimSpace(*input.ReceiverContact)
	}
	if input.Notes != nil {
		patch[domain.FieldNotes] = strings.TrimSpace(*input.Notes)
	}
	if input.Status != nil {
		patch[domain.FieldStatus] = domain.ShipmentStatus(strings.TrimSpace(*input.Status))
	}
	return patch
}
