package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

const collectionMedicalRecords = "medical_records"

type MedicalRecordRepository struct {
	col *mongo.Collection
}

func NewMedicalRecordRepository(db *mongo.Database) *MedicalRecordRepository {
	return &MedicalRecordRepository{col: db.Collection(collectionMedicalRecords)}
}

func (r *MedicalRecordRepository) List(ctx context.Context) ([]*domain.MedicalRecord, error) {
	return r.find(ctx, bson.M{})
}

// ListByPet returns a pet's medical history, newest first.
func (r *MedicalRecordRepository) ListByPet(ctx context.Context, petID string) ([]*domain.MedicalRecord, error) {
	return r.find(ctx, bson.M{"pet_id": petID})
}

func (r *MedicalRecordRepository) find(ctx context.Context, filter bson.M) ([]*domain.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "record_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.MedicalRecord
	for cur.Next(ctx) {
		var rec domain.MedicalRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, cur.Err()
}

func (r *MedicalRecordRepository) FindByID(ctx context.Context, id string) (*domain.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.MedicalRecord
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMedicalRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *MedicalRecordRepository) Create(ctx context.Context, rec *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *rec
	doc.ID = uuid.NewString()
	if doc.RecordDate.IsZero() {
		doc.RecordDate = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
