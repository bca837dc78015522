package services

import (
	"time"

	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/utils"
)

// CalculatePeriodBounds вычисляет включительный интервал [StartDate, EndDate]
// для периода, содержащего опорную дату запроса
// Тотальная функция: на любой валидной дате результат всегда есть,
// неизвестная гранулярность считается днем
func CalculatePeriodBounds(query domain.PeriodQuery) domain.PeriodBounds {
	ref := query.ReferenceDate

	switch query.ViewType {
	case domain.ViewTypeWeek:
		return calculateWeekBounds(ref)
	case domain.ViewTypeMonth:
		return calculateMonthBounds(ref)
	default:
		return calculateDayBounds(ref)
	}
}

func calculateDayBounds(ref time.Time) domain.PeriodBounds {
	return domain.PeriodBounds{
		StartDate: utils.StartCurrentDay(ref),
		EndDate:   utils.EndCurrentDay(ref),
	}
}

// Неделя всегда с понедельника 00:00 по воскресенье 23:59:59.999
func calculateWeekBounds(ref time.Time) domain.PeriodBounds {
	// time.Weekday: 0 - воскресенье, 6 - суббота
	weekday := int(ref.Weekday())

	var offset int
	if weekday == 0 {
		// Воскресенье - последний день недели, понедельник был 6 дней назад
		offset = 6
	} else {
		offset = weekday - 1
	}

	monday := utils.StartCurrentDay(ref.AddDate(0, 0, -offset))
	sunday := monday.AddDate(0, 0, 6)

	return domain.PeriodBounds{
		StartDate: monday,
		EndDate:   utils.EndCurrentDay(sunday),
	}
}

// Месяц с 1-го числа по последний день месяца
func calculateMonthBounds(ref time.Time) domain.PeriodBounds {
	firstDay := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	// Нулевой день следующего месяца - последний день текущего,
	// корректно для 28/29/30/31 дней и високосного февраля
	lastDay := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location())

	return domain.PeriodBounds{
		StartDate: firstDay,
		EndDate:   utils.EndCurrentDay(lastDay),
	}
}
