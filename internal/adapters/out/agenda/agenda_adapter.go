package agenda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/physiocrm/agenda-period-cache/internal/config"
	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/out"
)

type AgendaAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

type appointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Total        int                  `json:"total"`
}

func NewAgendaAdapter(cfg *config.Config, logger out.LoggerPort) *AgendaAdapter {
	return &AgendaAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.Agenda.URL,
		username: cfg.Agenda.Username,
		password: cfg.Agenda.Password,
		logger:   logger,
	}
}

func (a *AgendaAdapter) GetAppointments(ctx context.Context, clinicID string, professionalID uuid.UUID, startDate, endDate time.Time) ([]domain.Appointment, error) {
	a.logger.Info("agenda.appointments.fetch", out.LogFields{
		"clinicId":  clinicID,
		"startDate": startDate,
		"endDate":   endDate,
	})

	url := fmt.Sprintf("%s/clinics/%s/appointments", a.baseURL, clinicID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("agenda.appointments.fetch_failed", out.LogFields{
			"clinicId": clinicID,
			"error":    err.Error(),
		})
		return nil, err
	}

	query := req.URL.Query()
	query.Add("start", startDate.Format(time.RFC3339))
	query.Add("end", endDate.Format(time.RFC3339))
	if professionalID != uuid.Nil {
		query.Add("professionalId", professionalID.String())
	}
	req.URL.RawQuery = query.Encode()

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("agenda.appointments.fetch_failed", out.LogFields{
			"clinicId": clinicID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("agenda.appointments.fetch_failed", out.LogFields{
			"clinicId": clinicID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var response appointmentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		a.logger.Error("agenda.appointments.decode_response_failed", out.LogFields{
			"clinicId": clinicID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("agenda.appointments.fetch_success", out.LogFields{
		"clinicId":          clinicID,
		"appointmentsCount": len(response.Appointments),
	})

	return response.Appointments, nil
}
