package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/physiocrm/agenda-period-cache/internal/config"
	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
)

type periodCacheEntry struct {
	Appointments []domain.Appointment
	Stale        bool
}

type CacheAdapter struct {
	cache  *lru.Cache[domain.PeriodCacheKey, *periodCacheEntry]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[domain.PeriodCacheKey, *periodCacheEntry](cfg.Cache.PeriodsSize)
	if err != nil {
		logger.Error("cache.periods.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.PeriodsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  lruCache,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetPeriod(ctx context.Context, key domain.PeriodCacheKey) ([]domain.Appointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(key)
	if !exists {
		c.logger.Debug("cache.periods.get.miss", out.LogFields{
			"clinicId": key.ClinicID,
			"viewType": key.ViewType,
		})
		return nil, false
	}

	// Устаревшая запись читается как промах, следующий Store ее перезапишет
	if entry.Stale {
		c.logger.Debug("cache.periods.get.stale", out.LogFields{
			"clinicId": key.ClinicID,
			"viewType": key.ViewType,
		})
		return nil, false
	}

	c.logger.Debug("cache.periods.get.hit", out.LogFields{
		"clinicId":          key.ClinicID,
		"viewType":          key.ViewType,
		"appointmentsCount": len(entry.Appointments),
	})
	return entry.Appointments, true
}

func (c *CacheAdapter) StorePeriod(ctx context.Context, key domain.PeriodCacheKey, appointments []domain.Appointment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.periods.store", out.LogFields{
		"clinicId":          key.ClinicID,
		"viewType":          key.ViewType,
		"appointmentsCount": len(appointments),
	})

	// Создаем новую запись в кэше
	newEntry := &periodCacheEntry{
		Appointments: appointments,
	}

	c.cache.Add(key, newEntry)
}

// InvalidateMatching помечает устаревшими все записи, подходящие под предикат
// Повторная пометка идемпотентна, записи не удаляются - данные перечитаются лениво
func (c *CacheAdapter) InvalidateMatching(ctx context.Context, predicate out.PeriodKeyPredicate) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	invalidated := 0
	for _, key := range c.cache.Keys() {
		if !predicate(key) {
			continue
		}

		entry, exists := c.cache.Peek(key)
		if !exists || entry.Stale {
			continue
		}

		entry.Stale = true
		invalidated++
	}

	if invalidated > 0 {
		c.logger.Debug("cache.periods.invalidate", out.LogFields{
			"invalidated": invalidated,
		})
	}

	return invalidated
}
