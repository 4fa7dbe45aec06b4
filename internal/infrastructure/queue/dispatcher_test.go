package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetclinic/clinic-system/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AppointmentEvent
}

func (s *recordingAuditService) Process(_ context.Context, event domain.AppointmentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingAuditService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherDeliversEvents(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Record(domain.AppointmentEvent{
			ID:            fmt.Sprintf("evt-%d", i),
			AppointmentID: fmt.Sprintf("appt-%d", i),
			Status:        domain.StatusScheduled,
		})
	}

	deadline := time.After(2 * time.Second)
	for svc.count() < 10 {
		select {
		case <-deadline:
			t.Fatalf("only %d of 10 events delivered", svc.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcherRecordNeverBlocks(t *testing.T) {
	// Workers are never started, so the single queue fills up. Record must
	// drop the overflow instead of blocking the caller.
	d := NewDispatcher(1, &recordingAuditService{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+50; i++ {
			d.Record(domain.AppointmentEvent{AppointmentID: "appt-1", Status: domain.StatusScheduled})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}
