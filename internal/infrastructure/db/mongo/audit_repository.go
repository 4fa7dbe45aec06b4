package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

const collectionAppointmentEvents = "appointment_events"

// AuditRepository persists the append-only appointment audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAppointmentEvents)}
}

// InsertEvent appends a lifecycle event. Events are never updated or deleted.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AppointmentEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, event)
	return err
}
