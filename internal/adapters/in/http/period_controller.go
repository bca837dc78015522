package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/physiocrm/agenda-period-cache/internal/config"
	"github.com/physiocrm/agenda-period-cache/internal/core/domain"
	"github.com/physiocrm/agenda-period-cache/internal/core/ports/in"
	"github.com/physiocrm/agenda-period-cache/internal/core/services"
	"github.com/physiocrm/agenda-period-cache/internal/utils"
)

type PeriodController struct {
	useCase in.PeriodCacheUseCase
	cfg     *config.Config
}

func NewPeriodController(useCase in.PeriodCacheUseCase, cfg *config.Config) *PeriodController {
	return &PeriodController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *PeriodController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/periods/:clinicId/appointments", c.getPeriodAppointments)
		api.POST("/cache/:clinicId/invalidate-date", c.invalidateDate)
		api.POST("/cache/:clinicId/invalidate-range", c.invalidateRange)
		api.POST("/cache/:clinicId/invalidate-all", c.invalidateAll)
	}
}

type InvalidateDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type InvalidateRangeRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

func (c *PeriodController) getPeriodAppointments(ctx *gin.Context) {
	clinicID := ctx.Param("clinicId")

	referenceDate, err := utils.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	professionalID := uuid.Nil
	if professionalParam := ctx.Query("professionalId"); professionalParam != "" {
		professionalID, err = uuid.Parse(professionalParam)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid professional ID format"})
			return
		}
	}

	query := domain.PeriodQuery{
		ViewType:       domain.ParseViewType(ctx.Query("viewType")),
		ReferenceDate:  referenceDate,
		ClinicID:       clinicID,
		ProfessionalID: professionalID,
	}

	appointments, err := c.useCase.GetPeriodAppointments(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Прогреваем соседние периоды, листание календаря попадет в кэш
	c.useCase.PrefetchAdjacentPeriods(ctx.Request.Context(), query)

	bounds := services.CalculatePeriodBounds(query)
	ctx.JSON(http.StatusOK, gin.H{
		"clinicId":     clinicID,
		"viewType":     query.ViewType,
		"period":       services.FormatPeriodBounds(bounds),
		"appointments": appointments,
	})
}

func (c *PeriodController) invalidateDate(ctx *gin.Context) {
	var req InvalidateDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.useCase.InvalidateAffectedPeriods(ctx.Request.Context(), req.Date, ctx.Param("clinicId"))
	ctx.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (c *PeriodController) invalidateRange(ctx *gin.Context) {
	var req InvalidateRangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.useCase.InvalidateDateRange(ctx.Request.Context(), req.StartDate, req.EndDate, ctx.Param("clinicId"))
	ctx.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (c *PeriodController) invalidateAll(ctx *gin.Context) {
	c.useCase.InvalidateAllForClinic(ctx.Request.Context(), ctx.Param("clinicId"))
	ctx.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (c *PeriodController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
