package out

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
)

// AgendaPort - бэкенд клиники, источник данных о записях на прием
type AgendaPort interface {
	GetAppointments(ctx context.Context, clinicID string, professionalID uuid.UUID, startDate, endDate time.Time) ([]domain.Appointment, error)
}
