package rabbitmq

import (
	"context"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/physiocrm/agenda-period-cache/internal/config"
	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
)

type stubPeriodCacheUseCase struct {
	mu            sync.Mutex
	affectedDates []string
	rangeCalls    int
	refreshCalls  int
}

func (s *stubPeriodCacheUseCase) GetPeriodAppointments(ctx context.Context, query domain.PeriodQuery) ([]domain.Appointment, error) {
	return nil, nil
}

func (s *stubPeriodCacheUseCase) PrefetchAdjacentPeriods(ctx context.Context, query domain.PeriodQuery) {
}

func (s *stubPeriodCacheUseCase) InvalidateAffectedPeriods(ctx context.Context, dateStr string, clinicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.affectedDates = append(s.affectedDates, dateStr)
}

func (s *stubPeriodCacheUseCase) InvalidateDateRange(ctx context.Context, startDateStr, endDateStr string, clinicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rangeCalls++
}

func (s *stubPeriodCacheUseCase) InvalidateAllForClinic(ctx context.Context, clinicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++
}

type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields)  {}
func (nopLogger) Info(event string, fields out.LogFields)   {}
func (nopLogger) Warn(event string, fields out.LogFields)   {}
func (nopLogger) Error(event string, fields out.LogFields)  {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func newTestListener(useCase *stubPeriodCacheUseCase) *MutationListener {
	return &MutationListener{
		useCase: useCase,
		cfg:     &config.Config{},
		logger:  nopLogger{},
	}
}

func TestConsumeAppointments_StopsOnClosedChannel(t *testing.T) {
	listener := newTestListener(&stubPeriodCacheUseCase{})

	msgs := make(chan amqp.Delivery)
	close(msgs)

	done := make(chan struct{})
	go func() {
		listener.consumeAppointments(context.Background(), msgs)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consume loop must return after the delivery channel is closed")
	}
}

func TestConsumeAppointments_DispatchesBufferedThenStops(t *testing.T) {
	useCase := &stubPeriodCacheUseCase{}
	listener := newTestListener(useCase)

	msgs := make(chan amqp.Delivery, 1)
	msgs <- amqp.Delivery{
		RoutingKey: "clinic.agenda-cache-svc.appointment.v1.created",
		Body:       []byte(`{"clinic_id":"clinic-1","date":"2024-01-17"}`),
	}
	close(msgs)

	listener.consumeAppointments(context.Background(), msgs)

	useCase.mu.Lock()
	defer useCase.mu.Unlock()
	if len(useCase.affectedDates) != 1 || useCase.affectedDates[0] != "2024-01-17" {
		t.Errorf("invalidations: got %v, want [2024-01-17]", useCase.affectedDates)
	}
}

func TestConsumeAppointments_StopsOnContextCancel(t *testing.T) {
	listener := newTestListener(&stubPeriodCacheUseCase{})

	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan amqp.Delivery)

	done := make(chan struct{})
	go func() {
		listener.consumeAppointments(ctx, msgs)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consume loop must return after the context is cancelled")
	}
}
