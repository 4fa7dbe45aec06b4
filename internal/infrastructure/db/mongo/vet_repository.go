package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

const collectionVets = "vets"

type VetRepository struct {
	col *mongo.Collection
}

func NewVetRepository(db *mongo.Database) *VetRepository {
	return &VetRepository{col: db.Collection(collectionVets)}
}

func (r *VetRepository) List(ctx context.Context) ([]*domain.Vet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Vet
	for cur.Next(ctx) {
		var v domain.Vet
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (r *VetRepository) FindByID(ctx context.Context, id string) (*domain.Vet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vet
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVetNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VetRepository) Create(ctx context.Context, v *domain.Vet) (*domain.Vet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	vet := *v
	vet.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, &vet); err != nil {
		return nil, err
	}
	return &vet, nil
}

func (r *VetRepository) Update(ctx context.Context, v *domain.Vet) (*domain.Vet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrVetNotFound
	}
	return v, nil
}

func (r *VetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrVetNotFound
	}
	return nil
}

func (r *VetRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}
