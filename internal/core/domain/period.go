package domain

import (
	"time"

	"github.com/google/uuid"
)

type ViewType string

const (
	ViewTypeDay   ViewType = "day"
	ViewTypeWeek  ViewType = "week"
	ViewTypeMonth ViewType = "month"
)

// ParseViewType приводит строку к известной гранулярности
// Неизвестные значения деградируют до дня, чтобы календарь не падал
func ParseViewType(str string) ViewType {
	switch ViewType(str) {
	case ViewTypeDay, ViewTypeWeek, ViewTypeMonth:
		return ViewType(str)
	default:
		return ViewTypeDay
	}
}

type Direction int

const (
	DirectionForward  Direction = 1
	DirectionBackward Direction = -1
)

// PeriodQuery описывает какой календарный период, для какой клиники
// и опционально для какого специалиста нужен вызывающему
type PeriodQuery struct {
	ViewType       ViewType
	ReferenceDate  time.Time
	ClinicID       string
	ProfessionalID uuid.UUID // uuid.Nil - период всей клиники
}

// PeriodBounds - включительный интервал [StartDate, EndDate]
type PeriodBounds struct {
	StartDate time.Time
	EndDate   time.Time
}
