package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles reporting posts and the admin review of reports
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterReportRoutes registers report routes. Admin checks happen in the service.
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/posts/:id/report", h.ReportPost, middleware.RequireAuth())

	admin := g.Group("/admin/reports", middleware.RequireAuth())
	admin.GET("", h.ListReports)
	admin.GET("/:id", h.GetReport)
	admin.PATCH("/:id", h.UpdateReport)
	admin.DELETE("/:id", h.DeleteReport)
}

// ReportPost files a report against a post
func (h *ReportHandler) ReportPost(c echo.Context) error {
	var req models.CreateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	viewer := middleware.Identity(c)
	report, err := h.reports.ReportPost(c.Request().Context(), viewer.UserID, c.Param("id"), req.Reasons, req.Description)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusCreated, report)
}

// ListReports lists reports newest first, filtered by status and reason
func (h *ReportHandler) ListReports(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	reports, total, err := h.reports.ListReports(c.Request().Context(), middleware.Identity(c), services.ReportListInput{
		Status: c.QueryParam("status"),
		Reason: c.QueryParam("reason"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"reports": reports},
		"meta":    echo.Map{"totalItems": total, "limit": limit, "offset": offset},
	})
}

func (h *ReportHandler) GetReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	report, err := h.reports.GetReport(c.Request().Context(), middleware.Identity(c), id)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, report)
}

// UpdateReport records an admin's review
func (h *ReportHandler) UpdateReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	var req models.UpdateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	report, err := h.reports.UpdateReport(c.Request().Context(), middleware.Identity(c), id, services.ReportUpdateInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return err
	}
	if err := h.reports.DeleteReport(c.Request().Context(), middleware.Identity(c), id); err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"deleted": true})
}

func reportID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}
	return uint(id), nil
}
