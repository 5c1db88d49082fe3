package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	reqdto "lodgekeeper/internal/handler/dto/request"
	"lodgekeeper/internal/infra/export"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportQueries queries.ReportQueries
	pdfExporter   export.ReportExporter
	excelExporter export.ReportExporter
	clock         clock.Clock
}

func NewReportHandler(
	reportQueries queries.ReportQueries,
	pdfExporter *export.PDFExporter,
	excelExporter *export.ExcelExporter,
	clk clock.Clock,
) *ReportHandler {
	return &ReportHandler{
		reportQueries: reportQueries,
		pdfExporter:   pdfExporter,
		excelExporter: excelExporter,
		clock:         clk,
	}
}

// @Summary Build report
// @Description Reservation report for a daily, weekly, monthly or custom period
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param mode query string false "Report mode" Enums(daily, weekly, monthly, custom)
// @Param date query string false "Anchor date (YYYY-MM-DD), defaults to today"
// @Param start_date query string false "Custom range start (YYYY-MM-DD)"
// @Param end_date query string false "Custom range end, inclusive (YYYY-MM-DD)"
// @Param format query string false "Output format" Enums(json, pdf, excel)
// @Success 200 {object} queries.ReportData
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reports [get]
func (h *ReportHandler) BuildReport(c *gin.Context) {
	var query reqdto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	mode, err := queries.NewReportMode(query.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid report mode",
		})
		return
	}

	now := h.clock.Now()
	anchor := clock.Today(h.clock)
	if query.Date != nil {
		anchor, err = time.Parse(time.DateOnly, *query.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
			return
		}
	}

	var customStart, customEnd time.Time
	if mode == queries.ReportCustom {
		if query.StartDate == nil || query.EndDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "start_date and end_date are required for custom reports",
			})
			return
		}
		customStart, err = time.Parse(time.DateOnly, *query.StartDate)
		if err == nil {
			customEnd, err = time.Parse(time.DateOnly, *query.EndDate)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
			return
		}
	}

	report, err := h.reportQueries.Build(c.Request.Context(), mode, anchor, customStart, customEnd, now)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidReportRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "end_date must not be before start_date",
			})
		case errors.Is(err, queries.ErrInvalidReportMode):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid report mode",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	switch query.Format {
	case "pdf":
		h.writeExport(c, h.pdfExporter, report)
	case "excel":
		h.writeExport(c, h.excelExporter, report)
	default:
		c.JSON(http.StatusOK, report)
	}
}

// @Summary Occupancy report
// @Description Per-day occupancy rates over [start_date, end_date)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} queries.OccupancyReport
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reports/occupancy [get]
func (h *ReportHandler) Occupancy(c *gin.Context) {
	var query reqdto.OccupancyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	start, err := time.Parse(time.DateOnly, query.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}
	end, err := time.Parse(time.DateOnly, query.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "end_date must be after start_date",
		})
		return
	}

	report, err := h.reportQueries.Occupancy(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary Dashboard
// @Description Today's arrivals, departures, in-house count and pending vouchers
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.DashboardView
// @Failure 401 {object} map[string]string
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	view, err := h.reportQueries.Dashboard(c.Request.Context(), clock.Today(h.clock))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ReportHandler) writeExport(c *gin.Context, exporter export.ReportExporter, report *queries.ReportData) {
	filename := fmt.Sprintf("%s-report-%s.%s",
		report.Mode, report.StartDate.Format(time.DateOnly), exporter.FileExtension())

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", exporter.ContentType())
	c.Status(http.StatusOK)

	if err := exporter.Write(c.Writer, report); err != nil {
		// Headers may already be out; abort the stream
		c.Abort()
	}
}
