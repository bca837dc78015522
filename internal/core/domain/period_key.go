package domain

import (
	"time"

	"github.com/google/uuid"
)

// PeriodCacheKey - канонический идентификатор закэшированного периода
// Типизированная сравнимая структура, границы храним в миллисекундах,
// чтобы ключи от разных time.Time с одинаковым моментом совпадали
type PeriodCacheKey struct {
	ClinicID       string
	ViewType       ViewType
	StartMillis    int64
	EndMillis      int64
	ProfessionalID uuid.UUID
}

func (k PeriodCacheKey) Bounds() PeriodBounds {
	return PeriodBounds{
		StartDate: time.UnixMilli(k.StartMillis),
		EndDate:   time.UnixMilli(k.EndMillis),
	}
}

// Overlaps проверяет пересечение границ ключа с диапазоном дат
func (k PeriodCacheKey) Overlaps(rangeStart, rangeEnd time.Time) bool {
	startOverlapping := k.StartMillis <= rangeEnd.UnixMilli()
	endOverlapping := k.EndMillis >= rangeStart.UnixMilli()
	return startOverlapping && endOverlapping
}
