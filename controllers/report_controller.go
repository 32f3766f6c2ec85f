package controllers

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"crimewatch/database"
	"crimewatch/middleware"
	"crimewatch/services"
	"crimewatch/utils"
)

// CreateReport accepts a multipart incident submission with an optional
// image attachment and persists it with status Pending.
func CreateReport(reports services.ReportService, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		crimeType := c.PostForm("crime_type")
		description := c.PostForm("description")
		if crimeType == "" || description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "crime_type and description are required"})
			return
		}

		report := database.CrimeReport{
			UserID:      userID,
			CrimeType:   crimeType,
			Description: description,
			Location:    c.PostForm("location"),
		}

		if lat := c.PostForm("latitude"); lat != "" {
			v, err := strconv.ParseFloat(lat, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
				return
			}
			report.Latitude = &v
		}
		if lon := c.PostForm("longitude"); lon != "" {
			v, err := strconv.ParseFloat(lon, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
				return
			}
			report.Longitude = &v
		}

		if file, err := c.FormFile("attachment"); err == nil && file.Filename != "" {
			if !utils.AllowedFile(file.Filename) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported attachment type"})
				return
			}
			stored := utils.StoredFilename(file.Filename)
			if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, stored)); err != nil {
				log.Printf("Attachment save error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
				return
			}
			relPath := filepath.Join("uploads", stored)
			report.ImagePath = &relPath
		}

		if err := reports.Create(c.Request.Context(), &report); err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Report submitted!",
			"report":  report,
		})
	}
}

// MyReports lists the caller's own submissions with their audit trails.
func MyReports(reports services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		list, err := reports.ListByUser(c.Request.Context(), userID)
		if err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reports": list})
	}
}
