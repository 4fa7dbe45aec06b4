package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

const collectionSpecialties = "specialties"

type SpecialtyRepository struct {
	col *mongo.Collection
}

func NewSpecialtyRepository(db *mongo.Database) *SpecialtyRepository {
	return &SpecialtyRepository{col: db.Collection(collectionSpecialties)}
}

func (r *SpecialtyRepository) List(ctx context.Context) ([]*domain.Specialty, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Specialty
	for cur.Next(ctx) {
		var s domain.Specialty
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (r *SpecialtyRepository) FindByID(ctx context.Context, id string) (*domain.Specialty, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Specialty
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSpecialtyNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SpecialtyRepository) Create(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sp := *s
	sp.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SpecialtyRepository) Update(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSpecialtyNotFound
	}
	return s, nil
}

func (r *SpecialtyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSpecialtyNotFound
	}
	return nil
}
