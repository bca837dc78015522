package services

import (
	"context"
	"fmt"

	"github.com/physiocrm/agenda-period-cache/internal/config"
	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
)

type PeriodCacheService struct {
	agendaPort out.AgendaPort
	cachePort  out.CachePort
	logger     out.LoggerPort
	cfg        *config.Config
}

func NewPeriodCacheService(
	agendaPort out.AgendaPort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *PeriodCacheService {
	return &PeriodCacheService{
		agendaPort: agendaPort,
		cachePort:  cachePort,
		cfg:        cfg,
		logger:     logger.WithModule("PeriodCacheService"),
	}
}

func (s *PeriodCacheService) cacheEnabled() bool {
	return s.cachePort != nil && s.cfg.Cache.Enabled
}

func (s *PeriodCacheService) GetPeriodAppointments(ctx context.Context, query domain.PeriodQuery) ([]domain.Appointment, error) {
	bounds := CalculatePeriodBounds(query)
	key := BuildPeriodCacheKey(query.ClinicID, query.ViewType, bounds, query.ProfessionalID)

	// Проверяем кэш только если он включен
	if s.cacheEnabled() {
		if appointments, exists := s.cachePort.GetPeriod(ctx, key); exists {
			s.logger.Debug("periods.get.cache.hit", out.LogFields{
				"clinicId":          query.ClinicID,
				"viewType":          query.ViewType,
				"period":            FormatPeriodBounds(bounds),
				"appointmentsCount": len(appointments),
			})
			return appointments, nil
		}
	}

	s.logger.Debug("periods.get.cache.miss", out.LogFields{
		"clinicId": query.ClinicID,
		"viewType": query.ViewType,
		"period":   FormatPeriodBounds(bounds),
	})

	appointments, err := s.agendaPort.GetAppointments(ctx, query.ClinicID, query.ProfessionalID, bounds.StartDate, bounds.EndDate)
	if err != nil {
		s.logger.Error("periods.get.agenda.fetch_failed", out.LogFields{
			"clinicId": query.ClinicID,
			"period":   FormatPeriodBounds(bounds),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("periods.get.agenda.fetch_failed: %w", err)
	}

	// Сохраняем в кэш только если он включен
	if s.cacheEnabled() {
		s.cachePort.StorePeriod(ctx, key, appointments)
	}

	return appointments, nil
}

// PrefetchAdjacentPeriods прогревает соседние периоды для листания календаря
// Ошибки прогрева не влияют на основной поток, только debug-лог
func (s *PeriodCacheService) PrefetchAdjacentPeriods(ctx context.Context, query domain.PeriodQuery) {
	if !s.cacheEnabled() {
		return
	}

	// Прогрев переживает завершение исходного запроса
	ctx = context.WithoutCancel(ctx)

	for _, direction := range []domain.Direction{domain.DirectionForward, domain.DirectionBackward} {
		adjacent := CalculateAdjacentPeriod(query, direction)

		go func(q domain.PeriodQuery) {
			if _, err := s.GetPeriodAppointments(ctx, q); err != nil {
				s.logger.Debug("periods.prefetch.failed", out.LogFields{
					"clinicId": q.ClinicID,
					"viewType": q.ViewType,
					"error":    err.Error(),
				})
			}
		}(adjacent)
	}
}
