package services

import (
	"context"

	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
	"github.com/physiocrm/agenda-period-cache/internal/utils"
)

var allViewTypes = []domain.ViewType{domain.ViewTypeDay, domain.ViewTypeWeek, domain.ViewTypeMonth}

// InvalidateAffectedPeriods помечает устаревшими ровно те периоды,
// которые содержат измененную дату: по одному на каждую гранулярность
// Записи специалистов с теми же границами попадают под ту же инвалидацию
// Любая ошибка деградирует до полной инвалидации клиники, наружу не выходит
func (s *PeriodCacheService) InvalidateAffectedPeriods(ctx context.Context, dateStr string, clinicID string) {
	if !s.cacheEnabled() {
		return
	}

	defer s.recoverInvalidation(ctx, "invalidate.affected_periods", clinicID)

	mutatedDate, err := utils.ParseDate(dateStr)
	if err != nil {
		s.logger.Warn("invalidate.affected_periods.date.parse_failed", out.LogFields{
			"clinicId": clinicID,
			"date":     dateStr,
			"error":    err.Error(),
		})
		s.InvalidateAllForClinic(ctx, clinicID)
		return
	}

	invalidated := 0
	for _, viewType := range allViewTypes {
		bounds := CalculatePeriodBounds(domain.PeriodQuery{
			ViewType:      viewType,
			ReferenceDate: mutatedDate,
			ClinicID:      clinicID,
		})

		startMillis := bounds.StartDate.UnixMilli()
		endMillis := bounds.EndDate.UnixMilli()
		vt := viewType

		invalidated += s.cachePort.InvalidateMatching(ctx, func(key domain.PeriodCacheKey) bool {
			return key.ClinicID == clinicID &&
				key.ViewType == vt &&
				key.StartMillis == startMillis &&
				key.EndMillis == endMillis
		})

		s.logger.Debug("invalidate.affected_periods.period", out.LogFields{
			"clinicId": clinicID,
			"viewType": viewType,
			"period":   FormatPeriodBounds(bounds),
		})
	}

	s.logger.Info("invalidate.affected_periods.done", out.LogFields{
		"clinicId":    clinicID,
		"date":        dateStr,
		"invalidated": invalidated,
	})
}

// InvalidateDateRange помечает устаревшими все периоды, пересекающиеся с диапазоном
// Пересечение шире точечной инвалидации, но это корректный минимальный надмножественный выбор
// для массовых операций: перечислять каждую дату диапазона было бы расточительно
func (s *PeriodCacheService) InvalidateDateRange(ctx context.Context, startDateStr, endDateStr string, clinicID string) {
	if !s.cacheEnabled() {
		return
	}

	defer s.recoverInvalidation(ctx, "invalidate.date_range", clinicID)

	rangeStart, err := utils.ParseDate(startDateStr)
	if err != nil {
		s.logger.Warn("invalidate.date_range.start.parse_failed", out.LogFields{
			"clinicId": clinicID,
			"date":     startDateStr,
			"error":    err.Error(),
		})
		s.InvalidateAllForClinic(ctx, clinicID)
		return
	}

	rangeEnd, err := utils.ParseDate(endDateStr)
	if err != nil {
		s.logger.Warn("invalidate.date_range.end.parse_failed", out.LogFields{
			"clinicId": clinicID,
			"date":     endDateStr,
			"error":    err.Error(),
		})
		s.InvalidateAllForClinic(ctx, clinicID)
		return
	}

	// Диапазон расширяем до целых суток, мутации задаются датами
	rangeStart = utils.StartCurrentDay(rangeStart)
	rangeEnd = utils.EndCurrentDay(rangeEnd)

	invalidated := s.cachePort.InvalidateMatching(ctx, func(key domain.PeriodCacheKey) bool {
		return key.ClinicID == clinicID && key.Overlaps(rangeStart, rangeEnd)
	})

	s.logger.Info("invalidate.date_range.done", out.LogFields{
		"clinicId":    clinicID,
		"rangeStart":  startDateStr,
		"rangeEnd":    endDateStr,
		"invalidated": invalidated,
	})
}

// InvalidateAllForClinic - безусловная инвалидация всех периодов клиники
// Явный запасной путь: вызывается при нераспознанных датах, ошибках вычислений
// и по явному запросу полного обновления
func (s *PeriodCacheService) InvalidateAllForClinic(ctx context.Context, clinicID string) {
	if !s.cacheEnabled() {
		return
	}

	invalidated := s.cachePort.InvalidateMatching(ctx, func(key domain.PeriodCacheKey) bool {
		return key.ClinicID == clinicID
	})

	s.logger.Info("invalidate.all_for_clinic.done", out.LogFields{
		"clinicId":    clinicID,
		"invalidated": invalidated,
	})
}

// Паника при вычислении границ или ключей не должна дойти до потока мутации
// Лучше лишний раз перечитать данные, чем отдать устаревшее расписание
func (s *PeriodCacheService) recoverInvalidation(ctx context.Context, event string, clinicID string) {
	if r := recover(); r != nil {
		s.logger.Error(event+".panic", out.LogFields{
			"clinicId": clinicID,
			"panic":    r,
		})
		// Запасной путь тоже ходит в кэш и тоже может упасть,
		// вторая паника не должна выйти наружу
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(event+".fallback.panic", out.LogFields{
					"clinicId": clinicID,
					"panic":    r,
				})
			}
		}()
		s.InvalidateAllForClinic(ctx, clinicID)
	}
}
