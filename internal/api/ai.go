package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriday/backend/internal/model"
	"github.com/nutriday/backend/internal/service"
)

// AIHandler exposes the single AI gateway endpoint. The client sends an
// action name plus an action-specific payload; the handler dispatches to the
// matching service call and returns the upstream result verbatim.
type AIHandler struct {
	ai      service.IAIService
	records service.IRecordService
}

// NewAIHandler creates a new AIHandler instance
func NewAIHandler(ai service.IAIService, records service.IRecordService) *AIHandler {
	return &AIHandler{ai: ai, records: records}
}

// RegisterRoutes registers the AI gateway routes
func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ai/query", h.Query)
}

// Query dispatches an AI gateway request by action name.
func (h *AIHandler) Query(c *gin.Context) {
	var req struct {
		Action  string          `json:"action" binding:"required"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Action {
	case "recommendation":
		h.recommendation(c, req.Payload)
	case "manualEntry":
		h.manualEntry(c, req.Payload)
	case "summary":
		h.summary(c, req.Payload)
	case "report":
		h.report(c, req.Payload)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + req.Action})
	}
}

func (h *AIHandler) respondUpstreamError(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, gin.H{
		"error":   "AI request failed",
		"message": err.Error(),
	})
}

func (h *AIHandler) recommendation(c *gin.Context, payload json.RawMessage) {
	var req struct {
		Request       model.RecommendationRequest `json:"request"`
		CurrentIntake model.Macros                `json:"currentIntake"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.ai.GetMealRecommendation(c.Request.Context(), req.Request, req.CurrentIntake)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AIHandler) manualEntry(c *gin.Context, payload json.RawMessage) {
	var req struct {
		Text        string `json:"text"`
		ImageBase64 string `json:"imageBase64"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" && req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text or imageBase64 is required"})
		return
	}

	foods, err := h.ai.AnalyzeManualEntry(c.Request.Context(), req.Text, req.ImageBase64)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *AIHandler) summary(c *gin.Context, payload json.RawMessage) {
	var req struct {
		DayLog model.Macros `json:"dayLog"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.ai.GetDailySummary(c.Request.Context(), req.DayLog)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// report asks the AI for a narrative over a week of records. The client may
// ship the records directly, or name an end date and have the server pull the
// seven-day window ending there.
func (h *AIHandler) report(c *gin.Context, payload json.RawMessage) {
	var req struct {
		Records []model.DailyRecord `json:"records"`
		EndDate string              `json:"endDate"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Records == nil && req.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "records or endDate is required"})
		return
	}

	records := req.Records
	if records == nil {
		window, err := h.records.WeeklyWindow(c.Request.Context(), req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		records = window
	}

	text, err := h.ai.GenerateWeeklyReport(c.Request.Context(), records)
	if err != nil {
		h.respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}
