package in

import (
	"context"

	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
)

type PeriodCacheUseCase interface {
	// Чтение записей периода с прогревом кэша
	GetPeriodAppointments(ctx context.Context, query domain.PeriodQuery) ([]domain.Appointment, error)

	// Прогрев соседних периодов для пагинации календаря
	PrefetchAdjacentPeriods(ctx context.Context, query domain.PeriodQuery)

	// Инвалидация кэша при изменении записей на прием
	// Ошибки парсинга и вычислений не пробрасываются наружу,
	// они деградируют до полной инвалидации клиники
	InvalidateAffectedPeriods(ctx context.Context, dateStr string, clinicID string)
	InvalidateDateRange(ctx context.Context, startDateStr, endDateStr string, clinicID string)
	InvalidateAllForClinic(ctx context.Context, clinicID string)
}
