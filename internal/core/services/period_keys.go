package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
)

// BuildPeriodCacheKey строит канонический ключ периода
// Любая опорная дата внутри одного периода дает один и тот же ключ,
// поэтому все запросы одной недели/месяца разделяют одну запись кэша
func BuildPeriodCacheKey(clinicID string, viewType domain.ViewType, bounds domain.PeriodBounds, professionalID uuid.UUID) domain.PeriodCacheKey {
	return domain.PeriodCacheKey{
		ClinicID:       clinicID,
		ViewType:       viewType,
		StartMillis:    bounds.StartDate.UnixMilli(),
		EndMillis:      bounds.EndDate.UnixMilli(),
		ProfessionalID: professionalID,
	}
}

// KeyForQuery - ключ периода, содержащего опорную дату запроса
func KeyForQuery(query domain.PeriodQuery) domain.PeriodCacheKey {
	bounds := CalculatePeriodBounds(query)
	return BuildPeriodCacheKey(query.ClinicID, query.ViewType, bounds, query.ProfessionalID)
}

// IsDateInPeriod - включительная проверка попадания даты в границы
// с точностью до миллисекунды
// На некорректных границах (start > end) не падает, а возвращает false
func IsDateInPeriod(date time.Time, bounds domain.PeriodBounds) bool {
	startMillis := bounds.StartDate.UnixMilli()
	endMillis := bounds.EndDate.UnixMilli()
	if startMillis > endMillis {
		return false
	}

	dateMillis := date.UnixMilli()
	return dateMillis >= startMillis && dateMillis <= endMillis
}

// FormatPeriodBounds - человекочитаемые границы для логов
func FormatPeriodBounds(bounds domain.PeriodBounds) string {
	return fmt.Sprintf("%s to %s",
		bounds.StartDate.Format("2006-01-02"),
		bounds.EndDate.Format("2006-01-02"),
	)
}
