package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/physiocrm/agenda-period-cache/internal/config"
	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
)

// Кэш-фейк с той же семантикой пометки устаревших записей, что и у адаптера
type fakeCachePort struct {
	mu         sync.Mutex
	entries    map[domain.PeriodCacheKey][]domain.Appointment
	stale      map[domain.PeriodCacheKey]bool
	panicsLeft int
}

func newFakeCachePort() *fakeCachePort {
	return &fakeCachePort{
		entries: make(map[domain.PeriodCacheKey][]domain.Appointment),
		stale:   make(map[domain.PeriodCacheKey]bool),
	}
}

func (f *fakeCachePort) GetPeriod(ctx context.Context, key domain.PeriodCacheKey) ([]domain.Appointment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	appointments, exists := f.entries[key]
	if !exists || f.stale[key] {
		return nil, false
	}
	return appointments, true
}

func (f *fakeCachePort) StorePeriod(ctx context.Context, key domain.PeriodCacheKey, appointments []domain.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = appointments
	delete(f.stale, key)
}

func (f *fakeCachePort) InvalidateMatching(ctx context.Context, predicate out.PeriodKeyPredicate) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.panicsLeft > 0 {
		f.panicsLeft--
		panic("injected cache failure")
	}

	invalidated := 0
	for key := range f.entries {
		if predicate(key) && !f.stale[key] {
			f.stale[key] = true
			invalidated++
		}
	}
	return invalidated
}

func (f *fakeCachePort) isStale(key domain.PeriodCacheKey) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stale[key]
}

func (f *fakeCachePort) storedKeysCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeAgendaPort struct {
	mu           sync.Mutex
	appointments []domain.Appointment
	err          error
	calls        int
}

func (f *fakeAgendaPort) GetAppointments(ctx context.Context, clinicID string, professionalID uuid.UUID, startDate, endDate time.Time) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

func (f *fakeAgendaPort) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Логгер, запоминающий события по уровням
type recordingLogger struct {
	mu     sync.Mutex
	events map[out.LogLevel][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{events: make(map[out.LogLevel][]string)}
}

func (l *recordingLogger) record(level out.LogLevel, event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[level] = append(l.events[level], event)
}

func (l *recordingLogger) Debug(event string, fields out.LogFields) {
	l.record(out.LogLevelDebug, event)
}

func (l *recordingLogger) Info(event string, fields out.LogFields) {
	l.record(out.LogLevelInfo, event)
}

func (l *recordingLogger) Warn(event string, fields out.LogFields) {
	l.record(out.LogLevelWarn, event)
}

func (l *recordingLogger) Error(event string, fields out.LogFields) {
	l.record(out.LogLevelError, event)
}

func (l *recordingLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l *recordingLogger) WithModule(module string) out.LoggerPort        { return l }

func (l *recordingLogger) hasEvent(level out.LogLevel, event string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events[level] {
		if e == event {
			return true
		}
	}
	return false
}

func newTestService(cachePort out.CachePort, agendaPort out.AgendaPort, logger out.LoggerPort) *PeriodCacheService {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	return NewPeriodCacheService(agendaPort, cachePort, cfg, logger)
}
