package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

const collectionAppointments = "appointments"

// appointmentDoc adds the slot claim to the persisted appointment. slot_key
// is "<vet_id>:<unix_ts>" while the booking holds the slot and is unset on
// cancellation; a unique sparse index makes the claim atomic.
type appointmentDoc struct {
	domain.Appointment `bson:",inline"`
	SlotKey            string `bson:"slot_key,omitempty"`
}

func slotKey(vetID string, at time.Time) string {
	return fmt.Sprintf("%s:%d", vetID, at.Unix())
}

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

// Create inserts a new SCHEDULED appointment, claiming the (vet, timestamp)
// slot in the same write. The unique index on slot_key rejects the insert
// when another live booking holds the slot.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := appointmentDoc{Appointment: *a}
	doc.ID = uuid.NewString()
	doc.Status = domain.StatusScheduled
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.SlotKey = slotKey(a.VetID, a.AppointmentDate)

	if _, err := r.col.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrVetUnavailable
		}
		return nil, err
	}
	return &doc.Appointment, nil
}

// FindByID retrieves an appointment by id.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Appointment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all appointments ordered by appointment date.
func (r *AppointmentRepository) List(ctx context.Context) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "appointment_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Appointment
	for cur.Next(ctx) {
		var a domain.Appointment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}

// Transition atomically moves a SCHEDULED appointment to target. The filter
// pins the current status, so a concurrent transition loses the race and is
// reported as domain.ErrInvalidTransition. Cancellation releases the booking
// slot by unsetting slot_key.
func (r *AppointmentRepository) Transition(ctx context.Context, id string, target domain.AppointmentStatus) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":     target,
			"updated_at": time.Now().UTC(),
		},
	}
	if target == domain.StatusCancelled {
		update["$unset"] = bson.M{"slot_key": ""}
	}

	var a domain.Appointment
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": domain.StatusScheduled},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// CAS failed: either the id is unknown or the appointment already left
	// SCHEDULED. Distinguish with a plain lookup.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrInvalidTransition
}

// CountByStatus groups appointment counts by status.
func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[domain.AppointmentStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status domain.AppointmentStatus `bson:"_id"`
			Count  int64                    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Status] = row.Count
	}
	return out, cur.Err()
}

// Count returns the total number of appointments.
func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes the appointment collection relies on.
// The slot_key index is unique and sparse: cancelled appointments have the
// field unset and stop occupying the slot.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slot_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "appointment_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
