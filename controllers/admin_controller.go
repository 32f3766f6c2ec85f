package controllers

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"crimewatch/middleware"
	"crimewatch/services"
)

// UpdateStatusRequest is the body of a status transition call.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminReports returns one page of the filtered report listing together
// with aggregate counts over the whole filtered set.
func AdminReports(reports services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil {
			page = 1
		}

		result, err := reports.Search(c.Request.Context(), q, page)
		if err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// ExportReports streams the filtered report set as a CSV attachment,
// ordered by id ascending.
func ExportReports(reports services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reports.Export(c.Request.Context(), c.Query("q"))
		if err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename=reports.csv")

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"id", "user", "crime_type", "description", "location", "status", "timestamp"})
		for _, r := range list {
			_ = w.Write([]string{
				strconv.FormatUint(uint64(r.ID), 10),
				r.User.Username,
				r.CrimeType,
				strings.ReplaceAll(r.Description, "\n", " "),
				r.Location,
				r.Status,
				r.CreatedAt.Format("2006-01-02T15:04:05"),
			})
		}
		w.Flush()
	}
}

// UpdateStatus applies a status transition to one report on behalf of
// the authenticated admin.
func UpdateStatus(transitions services.TransitionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
			return
		}

		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}

		report, err := transitions.Transition(c.Request.Context(), uint(reportID), req.Status, actorID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrReportNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			case errors.Is(err, services.ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			case errors.Is(err, services.ErrPermissionDenied):
				c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			case errors.Is(err, services.ErrInvalidStatus):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			default:
				log.Printf("Transition error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  report.Status,
		})
	}
}

// ReportAudits returns the ordered audit trail of one report.
func ReportAudits(transitions services.TransitionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
			return
		}

		audits, err := transitions.AuditTrail(c.Request.Context(), uint(reportID))
		if err != nil {
			if errors.Is(err, services.ErrReportNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
				return
			}
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"audits": audits})
	}
}
