package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	trackingNumberRe = regexp.MustCompile(`^[A-Za-z0-9]{8,20}$`)
	dimensionsRe     = regexp.MustCompile(`^\d+(\.\d+)?x\d+(\.\d+)?x\d+(\.\d+)?(cm|in|m)$`)
	phoneRe          = regexp.MustCompile(`^[\+]?[(]?[0-9]{3}[)]?[-\s\.]?[0-9]{3}[-\s\.]?[0-9]{4,6}$`)
)

const maxNotesLen = 500

const (
	minWeightKg = 0.1
	maxWeightKg = 1000
)

// ValidationError aggregates every violated field rule, not just the first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid shipment data: " + strings.Join(e.Errors, "; ")
}

// Validate checks every field rule on s. The returned error is a
// *ValidationError listing all violations, or nil when the record is valid.
func (s *Shipment) Validate() error {
	return s.ValidateFields(
		FieldTrackingNumber, FieldOrigin, FieldDestination, FieldWeight,
		FieldDimensions, FieldExpectedDeliveryDate, FieldShipmentType,
		FieldCarrier, FieldSenderName, FieldSenderContact, FieldReceiverName,
		FieldReceiverContact, FieldNotes, FieldStatus,
	)
}

// ValidateFields checks only the named fields, used to re-validate the
// changed subset during a partial update. Unknown names are ignored.
func (s *Shipment) ValidateFields(fields ...string) error {
	var violations []string
	add := func(msg string) { violations = append(violations, msg) }

	for _, field := range fields {
		switch field {
		case FieldTrackingNumber:
			switch {
			case strings.TrimSpace(s.TrackingNumber) == "":
				add("Tracking number is required")
			case !trackingNumberRe.MatchString(s.TrackingNumber):
				add(fmt.Sprintf("%s is not a valid tracking number!", s.TrackingNumber))
			}
		case FieldOrigin:
			if strings.TrimSpace(s.Origin) == "" {
				add("Origin is required")
			}
		case FieldDestination:
			if strings.TrimSpace(s.Destination) == "" {
				add("Destination is required")
			}
		case FieldWeight:
			switch {
			case s.WeightKg == 0:
				add("Weight is required")
			case s.WeightKg < minWeightKg:
				add("Weight must be at least 0.1kg")
			case s.WeightKg > maxWeightKg:
				add("Weight cannot exceed 1000kg")
			}
		case FieldDimensions:
			switch {
			case strings.TrimSpace(s.Dimensions) == "":
				add("Dimensions are required")
			case !dimensionsRe.MatchString(s.Dimensions):
				add(fmt.Sprintf("%s is not valid dimensions format! Use LxWxH with unit (e.g., 20x30x15cm)", s.Dimensions))
			}
		case FieldExpectedDeliveryDate:
			switch {
			case s.ExpectedDeliveryDate.IsZero():
				add("Expected delivery date is required")
			case !s.ExpectedDeliveryDate.After(time.Now()):
				add(fmt.Sprintf("%s must be in the future!", s.ExpectedDeliveryDate.Format(time.RFC3339)))
			}
		case FieldShipmentType:
			switch {
			case s.ShipmentType == "":
				add("Shipment type is required")
			case !ValidType(s.ShipmentType):
				add(fmt.Sprintf("%s is not a valid shipment type", s.ShipmentType))
			}
		case FieldCarrier:
			if strings.TrimSpace(s.Carrier) == "" {
				add("Carrier is required")
			}
		case FieldSenderName:
			if strings.TrimSpace(s.SenderName) == "" {
				add("Sender name is required")
			}
		case FieldSenderContact:
			switch {
			case strings.TrimSpace(s.SenderContact) == "":
				add("Sender contact is required")
			case !phoneRe.MatchString(s.SenderContact):
				add(fmt.Sprintf("%s is not a valid phone number!", s.SenderContact))
			}
		case FieldReceiverName:
			if strings.TrimSpace(s.ReceiverName) == "" {
				add("Receiver name is required")
			}
		case FieldReceiverContact:
			switch {
			case strings.TrimSpace(s.ReceiverContact) == "":
				add("Receiver contact is required")
			case !phoneRe.MatchString(s.ReceiverContact):
				add(fmt.Sprintf("%s is not a valid phone number!", s.ReceiverContact))
			}
		case FieldNotes:
			if utf8.RuneCountInString(s.Notes) > maxNotesLen {
				add("Notes cannot exceed 500 characters")
			}
		case FieldStatus:
			switch {
			case s.Status == "":
				add("Status is required")
			case !ValidStatus(s.Status):
				add(fmt.Sprintf("%s is not a valid status", s.Status))
			}
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Errors: violations}
	}
	return nil
}
