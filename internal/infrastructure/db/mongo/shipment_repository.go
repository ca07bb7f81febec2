package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargotrack/cargo-api/internal/core/domain"
)

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// shipmentDoc is the storage representation. Kept separate from the domain
// type so the _id round-trip and bson naming stay out of the core.
type shipmentDoc struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	TrackingNumber       string             `bson:"tracking_number"`
	Origin               string             `bson:"origin"`
	Destination          string             `bson:"destination"`
	WeightKg             float64            `bson:"weight_kg"`
	Dimensions           string             `bson:"dimensions"`
	ExpectedDeliveryDate time.Time          `bson:"expected_delivery_date"`
	ShipmentType         string             `bson:"shipment_type"`
	Carrier              string             `bson:"carrier"`
	IsFragile            bool               `bson:"is_fragile"`
	IsUrgent             bool               `bson:"is_urgent"`
	SenderName           string             `bson:"sender_name"`
	SenderContact        string             `bson:"sender_contact"`
	ReceiverName         string             `bson:"receiver_name"`
	ReceiverContact      string             `bson:"receiver_contact"`
	Notes                string             `bson:"notes,omitempty"`
	Status               string             `bson:"status"`
	CreatedAt            time.Time          `bson:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at"`
}

func toDoc(s *domain.Shipment) *shipmentDoc {
	return &shipmentDoc{
		TrackingNumber:       s.TrackingNumber,
		Origin:               s.Origin,
		Destination:          s.Destination,
		WeightKg:             s.WeightKg,
		Dimensions:           s.Dimensions,
		ExpectedDeliveryDate: s.ExpectedDeliveryDate,
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
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func (d *shipmentDoc) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:                   d.ID.Hex(),
		TrackingNumber:       d.TrackingNumber,
		Origin:               d.Origin,
		Destination:          d.Destination,
		WeightKg:             d.WeightKg,
		Dimensions:           d.Dimensions,
		ExpectedDeliveryDate: d.ExpectedDeliveryDate,
		ShipmentType:         domain.ShipmentType(d.ShipmentType),
		Carrier:              d.Carrier,
		IsFragile:            d.IsFragile,
		IsUrgent:             d.IsUrgent,
		SenderName:           d.SenderName,
		SenderContact:        d.SenderContact,
		ReceiverName:         d.ReceiverName,
		ReceiverContact:      d.ReceiverContact,
		Notes:                d.Notes,
		Status:               domain.ShipmentStatus(d.Status),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

// bsonKeys translates domain field names to storage keys for $set patches.
var bsonKeys = map[string]string{
	domain.FieldTrackingNumber:       "tracking_number",
	domain.FieldOrigin:               "origin",
	domain.FieldDestination:          "destination",
	domain.FieldWeight:               "weight_kg",
	domain.FieldDimensions:           "dimensions",
	domain.FieldExpectedDeliveryDate: "expected_delivery_date",
	domain.FieldShipmentType:         "shipment_type",
	domain.FieldCarrier:              "carrier",
	domain.FieldIsFragile:            "is_fragile",
	domain.FieldIsUrgent:             "is_urgent",
	domain.FieldSenderName:           "sender_name",
	domain.FieldSenderContact:        "sender_contact",
	domain.FieldReceiverName:         "receiver_name",
	domain.FieldReceiverContact:      "receiver_contact",
	domain.FieldNotes:                "notes",
	domain.FieldStatus:               "status",
}

// Create inserts a new shipment document. The unique index on
// tracking_number rejects duplicates regardless of request timing.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toDoc(s))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTracking
		}
		return nil, fmt.Errorf("insert shipment: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByID retrieves a shipment by its ObjectID hex. A malformed id is
// reported as not-found rather than an error.
func (r *ShipmentRepository) FindByID(ctx context.Context, id string) (*domain.Shipment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShipmentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByTrackingNumber retrieves a shipment by its tracking number.
func (r *ShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	return r.findOne(ctx, bson.M{"tracking_number": trackingNumber})
}

func (r *ShipmentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shipmentDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("find shipment: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns shipments ordered by created_at descending. A limit <= 0
// returns the whole collection.
func (r *ShipmentRepository) List(ctx context.Context, limit int64) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer cursor.Close(ctx)

	shipments := make([]*domain.Shipment, 0)
	for cursor.Next(ctx) {
		var doc shipmentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode shipment: %w", err)
		}
		shipments = append(shipments, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	return shipments, nil
}

// Update atomically applies the patch and the new updated_at with a single
// $set, returning the post-update document.
func (r *ShipmentRepository) Update(ctx context.Context, id string, patch domain.ShipmentPatch, updatedAt time.Time) (*domain.Shipment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShipmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": updatedAt}
	for field, value := range patch {
		key, ok := bsonKeys[field]
		if !ok {
			continue
		}
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc shipmentDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("update shipment: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete hard-deletes the shipment with the given id.
func (r *ShipmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrShipmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes on the shipments collection. The unique
// index on tracking_number is the storage-level conflict guarantee.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tracking_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "carrier", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "expected_delivery_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
