package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cargotrack/cargo-api/internal/api/metrics"
	"github.com/cargotrack/cargo-api/internal/core/domain"
)

// resolve looks a record up by either kind of handle. When the identifier is
// syntactically a valid internal id (24-char hex), id lookup runs first and
// wins on a hit; the tracking-number lookup is always attempted afterwards.
// Malformed identifiers skip straight to the tracking-number lookup instead
// of erroring.
func (s *ShipmentService) resolve(ctx context.Context, identifier string) (*domain.Shipment, error) {
	if primitive.IsValidObjectID(identifier) {
		shipment, err := s.repo.FindByID(ctx, identifier)
		if err == nil {
			metrics.LookupsTotal.WithLabelValues("id").Inc()
			return shipment, nil
		}
		if !errors.Is(err, domain.ErrShipmentNotFound) {
			return nil, err
		}
	}

	shipment, err := s.repo.FindByTrackingNumber(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			metrics.LookupsTotal.WithLabelValues("miss").Inc()
		}
		return nil, err
	}

	metrics.LookupsTotal.WithLabelValues("tracking_number").Inc()
	return shipment, nil
}
