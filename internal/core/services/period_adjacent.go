package services

import (
	"time"

	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
)

// CalculateAdjacentPeriod сдвигает запрос ровно на одну единицу его гранулярности
// Клиника и специалист сохраняются, меняется только опорная дата
// Forward затем Backward дает запрос с теми же границами периода
func CalculateAdjacentPeriod(query domain.PeriodQuery, direction domain.Direction) domain.PeriodQuery {
	shifted := query
	ref := query.ReferenceDate
	step := int(direction)

	switch query.ViewType {
	case domain.ViewTypeWeek:
		shifted.ReferenceDate = ref.AddDate(0, 0, 7*step)
	case domain.ViewTypeMonth:
		// Нормализуем к 1-му числу, иначе сдвиг с 31-го числа
		// перепрыгивает короткий месяц (31 января + месяц = 3 марта)
		firstDay := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		shifted.ReferenceDate = firstDay.AddDate(0, step, 0)
	default:
		shifted.ReferenceDate = ref.AddDate(0, 0, step)
	}

	return shifted
}
