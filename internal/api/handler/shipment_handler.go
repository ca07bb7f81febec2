package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cargotrack/cargo-api/internal/core/domain"
	"github.com/cargotrack/cargo-api/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment record operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /api/shipments.
//
// @Summary      Create a new shipment record
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid shipment data"})
	}

	if missingRequired(req) {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All shipment fields are required"})
	}

	created, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, validationErrorResponse{
				Message: "Invalid shipment data",
				Errors:  ve.Errors,
			})
		}
		if errors.Is(err, domain.ErrDuplicateTracking) {
			return c.JSON(http.StatusConflict, messageResponse{Message: "Tracking number already exists"})
		}
		return err
	}

	return c.JSON(http.StatusCreated, toShipmentResponse(created))
}

// List handles GET /api/shipments.
//
// @Summary      List all shipment records, newest first
// @Tags         shipments
// @Produce      json
// @Success      200  {array}   shipmentResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	shipments, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentListResponse(shipments))
}

// Recent handles GET /api/shipments/recent.
//
// @Summary      List the most recent shipment records
// @Tags         shipments
// @Produce      json
// @Param        limit  query     int  false  "Maximum records to return (default 5)"
// @Success      200    {array}   shipmentResponse
// @Failure      500    {object}  messageResponse
// @Router       /api/shipments/recent [get]
func (h *ShipmentHandler) Recent(c echo.Context) error {
	// Unparsable or non-positive limits fall back to the default.
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	shipments, err := h.service.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentListResponse(shipments))
}

// Find handles GET /api/shipments/find/:identifier.
//
// @Summary      Find a shipment by internal id or tracking number
// @Tags         shipments
// @Produce      json
// @Param        identifier  path      string  true  "Internal id (24-char hex) or tracking number"
// @Success      200         {object}  shipmentResponse
// @Failure      404         {object}  messageResponse
// @Failure      500         {object}  messageResponse
// @Router       /api/shipments/find/{identifier} [get]
func (h *ShipmentHandler) Find(c echo.Context) error {
	identifier := c.Param("identifier")

	shipment, err := h.service.FindByIdentifier(c.Request().Context(), identifier)
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Shipment not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Update handles PATCH /api/shipments/:identifier.
//
// A missing record is deliberately reported as 200 with success=true and a
// null shipment, not 404, so callers that retry blindly see an idempotent
// outcome. Immutable fields present in the payload are silently ignored.
//
// @Summary      Partially update a shipment by id or tracking number
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                 true  "Internal id or tracking number"
// @Param        body        body      updateShipmentRequest  true  "Fields to update"
// @Success      200         {object}  updateShipmentResponse
// @Failure      400         {object}  updateValidationErrorResponse
// @Router       /api/shipments/{identifier} [patch]
func (h *ShipmentHandler) Update(c echo.Context) error {
	identifier := c.Param("identifier")

	var req updateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, updateValidationErrorResponse{
			Success: false,
			Message: "Invalid shipment data",
		})
	}

	result, err := h.service.Update(c.Request().Context(), identifier, toUpdateInput(req))
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, updateValidationErrorResponse{
				Success: false,
				Message: "Invalid shipment data",
				Errors:  ve.Errors,
			})
		}
		return err
	}

	if !result.Found {
		return c.JSON(http.StatusOK, updateShipmentResponse{
			Success: true,
			Message: "No shipment found - operation completed",
		})
	}

	return c.JSON(http.StatusOK, updateShipmentResponse{
		Success:  true,
		Message:  "Update operation completed",
		Shipment: toShipmentResponse(result.Shipment),
	})
}

// Delete handles DELETE /api/shipments/:identifier.
//
// Shares the success-shaped no-op contract with Update: a miss is 200 with
// success=true and no deletedShipment payload.
//
// @Summary      Delete a shipment by id or tracking number
// @Tags         shipments
// @Produce      json
// @Param        identifier  path      string  true  "Internal id or tracking number"
// @Success      200         {object}  deleteShipmentResponse
// @Failure      500         {object}  messageResponse
// @Router       /api/shipments/{identifier} [delete]
func (h *ShipmentHandler) Delete(c echo.Context) error {
	identifier := c.Param("identifier")

	result, err := h.service.Delete(c.Request().Context(), identifier)
	if err != nil {
		return err
	}

	if !result.Found {
		return c.JSON(http.StatusOK, deleteShipmentResponse{
			Success: true,
			Message: "No shipment found - operation completed",
		})
	}

	return c.JSON(http.StatusOK, deleteShipmentResponse{
		Success: true,
		Message: "Delete operation completed",
		DeletedShipment: &deletedShipmentRef{
			TrackingNumber: result.TrackingNumber,
			ID:             result.ID,
		},
	})
}

// missingRequired reports whether any required create field is absent.
// Optional fields (shipmentType, isFragile, isUrgent, notes, status) are
// excluded: they have defaults.
func missingRequired(req createShipmentRequest) bool {
	return req.TrackingNumber == "" ||
		req.Origin == "" ||
		req.Destination == "" ||
		req.Weight == 0 ||
		req.Dimensions == "" ||
		req.ExpectedDeliveryDate.IsZero() ||
		req.Carrier == "" ||
		req.SenderName == "" ||
		req.SenderContact == "" ||
		req.ReceiverName == "" ||
		req.ReceiverContact == ""
}
