package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suttley13/burn2earn-backend/models"
	"github.com/suttley13/burn2earn-backend/services"
	"github.com/suttley13/burn2earn-backend/utils"
)

// MaxUploadSize caps the multipart body of an analyze request.
const MaxUploadSize = 10 << 20 // 10 MiB

// LogStore is the slice of LogService the controller needs.
type LogStore interface {
	CreateLog(ctx context.Context, entry *models.FoodLog) error
	ListLogsForDay(ctx context.Context, userID, date string) ([]models.FoodLog, error)
	DeleteLog(ctx context.Context, id string) error
}

// PhotoArchive is optional; a nil archive disables photo uploads.
type PhotoArchive interface {
	ArchivePhoto(ctx context.Context, userID, base64Data, contentType string) (string, error)
}

type LogController struct {
	analyzer services.FoodAnalyzer
	logs     LogStore
	photos   PhotoArchive
}

func NewLogController(analyzer services.FoodAnalyzer, logs LogStore, photos PhotoArchive) *LogController {
	return &LogController{analyzer: analyzer, logs: logs, photos: photos}
}

// Analyze handles POST /analyze: multipart form with "image" (base64 or data
// URI), optional "text", and "userId". One successful call produces exactly
// one stored row; an AI failure stores nothing.
func (ctl *LogController) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)
	if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse request: " + err.Error()})
		return
	}

	image := c.PostForm("image")
	text := c.PostForm("text")
	userID := c.PostForm("userId")

	if image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	payload, mimeType := utils.ParseImageInput(image)

	analysis, err := ctl.analyzer.AnalyzeFood(c.Request.Context(), payload, mimeType, text)
	if err != nil {
		log.Printf("Gemini error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI analysis failed: " + err.Error()})
		return
	}

	var photoURL string
	if ctl.photos != nil {
		photoURL, err = ctl.photos.ArchivePhoto(c.Request.Context(), userID, payload, mimeType)
		if err != nil {
			// archival is best-effort and never fails the request
			log.Printf("photo archive error: %v", err)
			photoURL = ""
		}
	}

	entry := models.FoodLog{
		UserID:     userID,
		FoodName:   analysis.Name,
		Calories:   analysis.Calories,
		ProteinG:   analysis.ProteinG,
		CarbsG:     analysis.CarbsG,
		FatG:       analysis.FatG,
		Confidence: analysis.Confidence,
		Notes:      analysis.Notes,
		PhotoURL:   photoURL,
	}
	if err := ctl.logs.CreateLog(c.Request.Context(), &entry); err != nil {
		log.Printf("insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// ListByDay handles GET /logs?userId=&date= and returns the user's entries
// for one logical day, oldest first.
func (ctl *LogController) ListByDay(c *gin.Context) {
	userID := c.Query("userId")
	date := c.Query("date")

	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required (YYYY-MM-DD)"})
		return
	}
	if _, _, err := services.DayWindow(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	logs, err := ctl.logs.ListLogsForDay(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("select error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// Delete handles DELETE /logs/:id (id also accepted as a query parameter).
func (ctl *LogController) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	if err := ctl.logs.DeleteLog(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Log entry not found"})
			return
		}
		log.Printf("delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
