package handler

import (
	"github.com/cargotrack/cargo-api/internal/core/domain"
	"github.com/cargotrack/cargo-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		TrackingNumber:       req.TrackingNumber,
		Origin:               req.Origin,
		Destination:          req.Destination,
		WeightKg:             req.Weight,
		Dimensions:           req.Dimensions,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		ShipmentType:         req.ShipmentType,
		Carrier:              req.Carrier,
		IsFragile:            req.IsFragile,
		IsUrgent:             req.IsUrgent,
		SenderName:           req.SenderName,
		SenderContact:        req.SenderContact,
		ReceiverName:         req.ReceiverName,
		ReceiverContact:      req.ReceiverContact,
		Notes:                req.Notes,
		Status:               req.Status,
	}
}

func toUpdateInput(req updateShipmentRequest) ports.UpdateShipmentInput {
	return ports.UpdateShipmentInput{
		Origin:               req.Origin,
		Destination:          req.Destination,
		WeightKg:             req.Weight,
		Dimensions:           req.Dimensions,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		ShipmentType:         req.ShipmentType,
		Carrier:              req.Carrier,
		IsFragile:            req.IsFragile,
		IsUrgent:             req.IsUrgent,
		SenderName:           req.SenderName,
		SenderContact:        req.SenderContact,
		ReceiverName:         req.ReceiverName,
		ReceiverContact:      req.ReceiverContact,
		Notes:                req.Notes,
		Status:               req.Status,
	}
}

// --- Domain → HTTP response ---

func toShipmentResponse(s *domain.Shipment) *shipmentResponse {
	return &shipmentResponse{
		ID:                   s.ID,
		TrackingNumber:       s.TrackingNumber,
		Origin:               s.Origin,
		Destination:          s.Destination,
		Weight:               s.WeightKg,
		Dimensions:           s.Dimensions,
		ExpectedDeliveryDate: s.ExpectedDeliveryDate.UTC(),
		ShipmentType:         string(s.ShipmentType),
		Carrier:              s.Carrier,
		IsFragile:            s.IsFragile,
		IsUrgent:             s.IsUrgent,
		SenderName:           s.SenderName,
		SenderContact:        s.SenderContact,
		ReceiverName:         s.ReceiverName,
		ReceiverContact:      s.ReceiverContact,
		Notes:                s.Notes,
		Status:               string(s.Status),
		CreatedAt:            s.CreatedAt.UTC(),
		UpdatedAt:            s.UpdatedAt.UTC(),
	}
}

func toShipmentListResponse(shipments []*domain.Shipment) []*shipmentResponse {
	out := make([]*shipmentResponse, len(shipments))
	for i, s := range shipments {
		out[i] = toShipmentResponse(s)
	}
	return out
}
