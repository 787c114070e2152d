package handler

import (
	"encoding/csv"
	"fmt"
	"loan-schedule/internal/api/handler/dto"
	"loan-schedule/internal/domain/schedule"
	"loan-schedule/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const formatCSV = "csv"

type ScheduleHandler struct {
	service schedule.ScheduleService
	logger  *slog.Logger
	now     func() time.Time
}

func NewScheduleHandler(s schedule.ScheduleService, l *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: s,
		logger:  l.With("component", "ScheduleHandler"),
		now:     time.Now,
	}
}

// Calculate computes a repayment schedule.
//
// @Summary Calculate a repayment schedule
// @Description Computes the monthly repayment schedule for a product, principal and optional term. An empty start_date means today. Pass format=csv to download the rows as CSV.
// @Tags Schedules
// @Accept json
// @Produce json
// @Produce text/csv
// @Param request body dto.CalcRequest true "Schedule request"
// @Param format query string false "Response format" Enums(json, csv)
// @Success 200 {object} dto.ScheduleResponse "Computed schedule"
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 404 {object} dto.ErrorResponse "Unknown or inactive product"
// @Failure 422 {object} dto.ErrorResponse "Principal or term outside product limits"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loan/calc [post]
// @Security BearerAuth
func (h *ScheduleHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalcRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}
	domainReq, err := req.ToDomain(h.now())
	if err != nil {
		respondError(w, err)
		return
	}

	sched, err := h.service.ComputeSchedule(r.Context(), domainReq)
	if err != nil {
		respondError(w, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), formatCSV) {
		h.respondCSV(w, r, sched)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewScheduleResponse(sched))
}

func (h *ScheduleHandler) respondCSV(w http.ResponseWriter, r *http.Request, sched *schedule.Schedule) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sched.Summary.ProductKey+"_schedule.csv"))
	w.WriteHeader(http.StatusOK)

	records := append([][]string{dto.CSVHeader}, dto.CSVRecords(sched)...)
	if err := csv.NewWriter(w).WriteAll(records); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write CSV schedule", slog.Any("error", err))
	}
}
