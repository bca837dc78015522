package domain

import (
	"github.com/google/uuid"

	"github.com/physiocrm/agenda-period-cache/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusFulfilled AppointmentStatus = "fulfilled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoshow    AppointmentStatus = "noshow"
)

type Appointment struct {
	ID             uuid.UUID                  `json:"id"`
	PatientID      uuid.UUID                  `json:"patientId"`
	ProfessionalID uuid.UUID                  `json:"professionalId"`
	StartDate      json_types.DateTime        `json:"start"`
	EndDate        json_types.DateTimeOrEmpty `json:"end"`
	Status         AppointmentStatus          `json:"status"`
	Room           string                     `json:"room,omitempty"`
}
