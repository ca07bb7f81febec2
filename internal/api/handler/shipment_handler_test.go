package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cargotrack/cargo-api/internal/core/domain"
	"github.com/cargotrack/cargo-api/internal/core/ports"
)

// stubShipmentService lets each test script the service behaviour.
type stubShipmentService struct {
	createFn func(ctx context.Context, input ports.CreateShipmentInput) (*domain.Shipment, error)
	listFn   func(ctx context.Context) ([]*domain.Shipment, error)
	recentFn func(ctx context.Context, limit int) ([]*domain.Shipment, error)
	findFn   func(ctx context.Context, identifier string) (*domain.Shipment, error)
	updateFn func(ctx context.Context, identifier string, input ports.UpdateShipmentInput) (*ports.UpdateResult, error)
	deleteFn func(ctx context.Context, identifier string) (*ports.DeleteResult, error)
}

func (s *stubShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	return s.createFn(ctx, input)
}

func (s *stubShipmentService) ListAll(ctx context.Context) ([]*domain.Shipment, error) {
	return s.listFn(ctx)
}

func (s *stubShipmentService) ListRecent(ctx context.Context, limit int) ([]*domain.Shipment, error) {
	return s.recentFn(ctx, limit)
}

func (s *stubShipmentService) FindByIdentifier(ctx context.Context, identifier string) (*domain.Shipment, error) {
	return s.findFn(ctx, identifier)
}

func (s *stubShipmentService) Update(ctx context.Context, identifier string, input ports.UpdateShipmentInput) (*ports.UpdateResult, error) {
	return s.updateFn(ctx, identifier, input)
}

func (s *stubShipmentService) Delete(ctx context.Context, identifier string) (*ports.DeleteResult, error) {
	return s.deleteFn(ctx, identifier)
}

func sampleShipment() *domain.Shipment {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Shipment{
		ID:                   "64a1f0c2e4b0a1b2c3d4e5f6",
		TrackingNumber:       "TRACK001A",
		Origin:               "Mexico City",
		Destination:          "Monterrey",
		WeightKg:             12.5,
		Dimensions:           "40x30x20cm",
		ExpectedDeliveryDate: now.AddDate(0, 0, 5),
		ShipmentType:         domain.TypeStandard,
		Carrier:              "FedEx",
		SenderName:           "Ana Torres",
		SenderContact:        "555-123-4567",
		ReceiverName:         "Luis Vega",
		ReceiverContact:      "555-987-6543",
		Status:               domain.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

const createBody = `{
	"trackingNumber": "TRACK001A",
	"origin": "Mexico City",
	"destination": "Monterrey",
	"weight": 12.5,
	"dimensions": "40x30x20cm",
	"expectedDeliveryDate": "2030-01-15T00:00:00Z",
	"carrier": "FedEx",
	"senderName": "Ana Torres",
	"senderContact": "555-123-4567",
	"receiverName": "Luis Vega",
	"receiverContact": "555-987-6543"
}`

func doRequest(t *testing.T, method, target, body string, h echo.HandlerFunc, pathParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for name, value := range pathParams {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}

	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestCreateShipment_Created(t *testing.T) {
	svc := &stubShipmentService{
		createFn: func(_ context.Context, input ports.CreateShipmentInput) (*domain.Shipment, error) {
			if input.TrackingNumber != "TRACK001A" {
				t.Errorf("unexpected tracking number %q", input.TrackingNumber)
			}
			return sampleShipment(), nil
		},
	}
	h := NewShipmentHandler(svc)

	rec := doRequest(t, http.MethodPost, "/api/shipments", createBody, h.Create, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["id"] != "64a1f0c2e4b0a1b2c3d4e5f6" {
		t.Errorf("expected id in response, got %v", body["id"])
	}
	if body["status"] != "Pending" {
		t.Errorf("expected status Pending, got %v", body["status"])
	}
}

func TestCreateShipment_MissingFields(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		createFn: func(context.Context, ports.CreateShipmentInput) (*domain.Shipment, error) {
			t.Fatal("service must not be called for incomplete payloads")
			return nil, nil
		},
	})

	rec := doRequest(t, http.MethodPost, "/api/shipments", `{"origin": "Mexico City"}`, h.Create, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "All shipment fields are required" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestCreateShipment_ValidationErrors(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		createFn: func(context.Context, ports.CreateShipmentInput) (*domain.Shipment, error) {
			return nil, &domain.ValidationError{Errors: []string{
				"Weight cannot exceed 1000kg",
				"big is not valid dimensions format! Use LxWxH with unit (e.g., 20x30x15cm)",
			}}
		},
	})

	rec := doRequest(t, http.MethodPost, "/api/shipments", createBody, h.Create, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Invalid shipment data" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", body["errors"])
	}
}

func TestCreateShipment_DuplicateTracking(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		createFn: func(context.Context, ports.CreateShipmentInput) (*domain.Shipment, error) {
			return nil, domain.ErrDuplicateTracking
		},
	})

	rec := doRequest(t, http.MethodPost, "/api/shipments", createBody, h.Create, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Tracking number already exists" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestFindShipment_NotFound(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		findFn: func(context.Context, string) (*domain.Shipment, error) {
			return nil, domain.ErrShipmentNotFound
		},
	})

	rec := doRequest(t, http.MethodGet, "/api/shipments/find/NOSUCH999", "", h.Find,
		map[string]string{"identifier": "NOSUCH999"})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Shipment not found" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestFindShipment_Found(t *testing.T) {
	want := sampleShipment()
	h := NewShipmentHandler(&stubShipmentService{
		findFn: func(_ context.Context, identifier string) (*domain.Shipment, error) {
			if identifier != want.TrackingNumber {
				t.Errorf("unexpected identifier %q", identifier)
			}
			return want, nil
		},
	})

	rec := doRequest(t, http.MethodGet, "/api/shipments/find/TRACK001A", "", h.Find,
		map[string]string{"identifier": "TRACK001A"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["trackingNumber"] != want.TrackingNumber {
		t.Errorf("unexpected tracking number: %v", body["trackingNumber"])
	}
}

func TestRecentShipments_PassesLimit(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		recentFn: func(_ context.Context, limit int) ([]*domain.Shipment, error) {
			if limit != 3 {
				t.Errorf("expected limit 3, got %d", limit)
			}
			return []*domain.Shipment{sampleShipment()}, nil
		},
	})

	rec := doRequest(t, http.MethodGet, "/api/shipments/recent?limit=3", "", h.Recent, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecentShipments_BadLimitFallsThrough(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		recentFn: func(_ context.Context, limit int) ([]*domain.Shipment, error) {
			if limit != 0 {
				t.Errorf("unparsable limit must pass through as 0, got %d", limit)
			}
			return nil, nil
		},
	})

	rec := doRequest(t, http.MethodGet, "/api/shipments/recent?limit=abc", "", h.Recent, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUpdateShipment_MissIsSuccessShaped(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		updateFn: func(context.Context, string, ports.UpdateShipmentInput) (*ports.UpdateResult, error) {
			return &ports.UpdateResult{Found: false}, nil
		},
	})

	rec := doRequest(t, http.MethodPatch, "/api/shipments/NOSUCH999", `{"status": "Delivered"}`,
		h.Update, map[string]string{"identifier": "NOSUCH999"})

	if rec.Code != http.StatusOK {
		t.Fatalf("a miss must still be 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
	if body["message"] != "No shipment found - operation completed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if body["shipment"] != nil {
		t.Errorf("expected null shipment, got %v", body["shipment"])
	}
}

func TestUpdateShipment_Hit(t *testing.T) {
	updated := sampleShipment()
	updated.Status = domain.StatusInTransit

	h := NewShipmentHandler(&stubShipmentService{
		updateFn: func(_ context.Context, identifier string, input ports.UpdateShipmentInput) (*ports.UpdateResult, error) {
			if identifier != "TRACK001A" {
				t.Errorf("unexpected identifier %q", identifier)
			}
			if input.Status == nil || *input.Status != "In Transit" {
				t.Errorf("status field not bound: %v", input.Status)
			}
			if input.Origin != nil {
				t.Error("absent fields must bind as nil")
			}
			return &ports.UpdateResult{Found: true, Shipment: updated}, nil
		},
	})

	rec := doRequest(t, http.MethodPatch, "/api/shipments/TRACK001A", `{"status": "In Transit"}`,
		h.Update, map[string]string{"identifier": "TRACK001A"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Update operation completed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	shipment, ok := body["shipment"].(map[string]any)
	if !ok {
		t.Fatalf("expected shipment object, got %v", body["shipment"])
	}
	if shipment["status"] != "In Transit" {
		t.Errorf("unexpected status: %v", shipment["status"])
	}
}

func TestUpdateShipment_IgnoresImmutableFields(t *testing.T) {
	updated := sampleShipment()
	h := NewShipmentHandler(&stubShipmentService{
		updateFn: func(_ context.Context, _ string, input ports.UpdateShipmentInput) (*ports.UpdateResult, error) {
			if input.Origin == nil || *input.Origin != "Cancun" {
				t.Errorf("origin field not bound: %v", input.Origin)
			}
			return &ports.UpdateResult{Found: true, Shipment: updated}, nil
		},
	})

	// trackingNumber, id and createdAt are not bindable on the update schema,
	// so they can never reach the service no matter what the payload carries.
	body := `{
		"trackingNumber": "HACKED999",
		"id": "ffffffffffffffffffffffff",
		"createdAt": "2001-01-01T00:00:00Z",
		"origin": "Cancun"
	}`
	rec := doRequest(t, http.MethodPatch, "/api/shipments/TRACK001A", body,
		h.Update, map[string]string{"identifier": "TRACK001A"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	respBody := decodeBody(t, rec)
	shipment, ok := respBody["shipment"].(map[string]any)
	if !ok {
		t.Fatalf("expected shipment object, got %v", respBody["shipment"])
	}
	if shipment["trackingNumber"] != updated.TrackingNumber {
		t.Errorf("tracking number changed: %v", shipment["trackingNumber"])
	}
}

func TestUpdateShipment_ValidationErrors(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		updateFn: func(context.Context, string, ports.UpdateShipmentInput) (*ports.UpdateResult, error) {
			return nil, &domain.ValidationError{Errors: []string{"Weight cannot exceed 1000kg"}}
		},
	})

	rec := doRequest(t, http.MethodPatch, "/api/shipments/TRACK001A", `{"weight": 9999}`,
		h.Update, map[string]string{"identifier": "TRACK001A"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
	if errs, ok := body["errors"].([]any); !ok || len(errs) != 1 {
		t.Errorf("expected 1 error, got %v", body["errors"])
	}
}

func TestDeleteShipment_Hit(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		deleteFn: func(_ context.Context, identifier string) (*ports.DeleteResult, error) {
			return &ports.DeleteResult{
				Found:          true,
				TrackingNumber: "TRACK001A",
				ID:             "64a1f0c2e4b0a1b2c3d4e5f6",
			}, nil
		},
	})

	rec := doRequest(t, http.MethodDelete, "/api/shipments/TRACK001A", "", h.Delete,
		map[string]string{"identifier": "TRACK001A"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Delete operation completed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	deleted, ok := body["deletedShipment"].(map[string]any)
	if !ok {
		t.Fatalf("expected deletedShipment object, got %v", body["deletedShipment"])
	}
	if deleted["trackingNumber"] != "TRACK001A" || deleted["id"] != "64a1f0c2e4b0a1b2c3d4e5f6" {
		t.Errorf("deletion confirmation mismatch: %v", deleted)
	}
}

func TestDeleteShipment_MissIsSuccessShaped(t *testing.T) {
	h := NewShipmentHandler(&stubShipmentService{
		deleteFn: func(context.Context, string) (*ports.DeleteResult, error) {
			return &ports.DeleteResult{Found: false}, nil
		},
	})

	rec := doRequest(t, http.MethodDelete, "/api/shipments/NOSUCH999", "", h.Delete,
		map[string]string{"identifier": "NOSUCH999"})

	if rec.Code != http.StatusOK {
		t.Fatalf("a miss must still be 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
	if body["message"] != "No shipment found - operation completed" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if _, present := body["deletedShipment"]; present {
		t.Error("deletedShipment must be omitted on a miss")
	}
}
