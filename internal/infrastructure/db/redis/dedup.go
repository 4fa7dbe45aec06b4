package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

const dedupTTL = 24 * time.Hour

// AuditDedup provides idempotency checks for audit events backed by Redis.
// An appointment reaches a given status exactly once, so the key is
// audit:<appointment_id>:<status>.
type AuditDedup struct {
	client *redis.Client
}

// NewAuditDedup creates an AuditDedup wrapping the given Redis client.
func NewAuditDedup(client *redis.Client) *AuditDedup {
	return &AuditDedup{client: client}
}

// IsDuplicate reports whether this lifecycle event has already been recorded.
func (d *AuditDedup) IsDuplicate(ctx context.Context, appointmentID string, status domain.AppointmentStatus) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(appointmentID, status)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *AuditDedup) Mark(ctx context.Context, appointmentID string, status domain.AppointmentStatus) error {
	return d.client.Set(ctx, d.key(appointmentID, status), "1", dedupTTL).Err()
}

func (d *AuditDedup) key(appointmentID string, status domain.AppointmentStatus) string {
	return fmt.Sprintf("audit:%s:%s", appointmentID, status)
}
