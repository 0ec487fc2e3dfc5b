package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutriday/backend/internal/model"
	"github.com/nutriday/backend/internal/service"
)

// RecordHandler handles daily record requests
type RecordHandler struct {
	records service.IRecordService
}

// NewRecordHandler creates a new RecordHandler instance
func NewRecordHandler(records service.IRecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// RegisterRoutes registers the daily record routes
func (h *RecordHandler) RegisterRoutes(router *gin.RouterGroup) {
	records := router.Group("/records")
	{
		records.GET("", h.ListRecords)
		records.GET("/:date", h.GetRecord)
		records.PUT("/:date", h.SaveRecord)
		records.GET("/:date/totals", h.GetTotals)
		records.PUT("/:date/metrics", h.UpdateMetrics)
		records.POST("/:date/meals/:mealID/ai-result", h.AcceptAIResult)
		records.POST("/:date/meals/:mealID/foods", h.AppendFoods)
		records.PUT("/:date/meals/:mealID/foods/:index", h.EditFood)
		records.DELETE("/:date/meals/:mealID/foods/:index", h.DeleteFood)
		records.POST("/:date/meals/:mealID/clear", h.ClearMeal)
	}
}

// TotalsResponse carries the derived view of one day's intake. Nothing in it
// is stored; it is recomputed from the current foods on every request.
type TotalsResponse struct {
	Current         model.Macros `json:"current"`
	Remaining       model.Macros `json:"remaining"`
	CarbEnergyShare int          `json:"carbEnergyShare"`
	CarbTargetMet   bool         `json:"carbTargetMet"`
	ProteinWarning  bool         `json:"proteinWarning"`
}

func (h *RecordHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// ListRecords returns every record in the inclusive start..end range, one
// per calendar day in ascending order.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query parameters are required"})
		return
	}

	records, err := h.records.History(c.Request.Context(), start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// GetRecord returns the record for a date, defaulted when never saved.
func (h *RecordHandler) GetRecord(c *gin.Context) {
	record, err := h.records.Load(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// SaveRecord overwrites the record for a date wholesale.
func (h *RecordHandler) SaveRecord(c *gin.Context) {
	var record model.DailyRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record.Date = c.Param("date")
	if err := h.records.Save(c.Request.Context(), record); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// GetTotals returns the aggregated macros and derived progress flags.
func (h *RecordHandler) GetTotals(c *gin.Context) {
	record, err := h.records.Load(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	current := record.Totals()
	c.JSON(http.StatusOK, TotalsResponse{
		Current:         current,
		Remaining:       model.Remaining(current, model.TargetMacros),
		CarbEnergyShare: model.CarbEnergyShare(current),
		CarbTargetMet:   model.CarbTargetMet(current),
		ProteinWarning:  model.ProteinOverLimit(current),
	})
}

// UpdateMetrics replaces the body metrics block for a date.
func (h *RecordHandler) UpdateMetrics(c *gin.Context) {
	var metrics model.BodyMetrics
	if err := c.ShouldBindJSON(&metrics); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutate(c, func(record model.DailyRecord) model.DailyRecord {
		return record.WithMetrics(metrics)
	})
}

// AcceptAIResult replaces a meal's foods with an accepted AI recommendation.
func (h *RecordHandler) AcceptAIResult(c *gin.Context) {
	var result model.AiResponse
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if result.Ingredients == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients array is required"})
		return
	}

	mealID := c.Param("mealID")
	if !h.checkMealID(c, mealID) {
		return
	}

	h.mutate(c, func(record model.DailyRecord) model.DailyRecord {
		return record.AcceptAIResult(mealID, result)
	})
}

// AppendFoods adds manually logged items to a meal.
func (h *RecordHandler) AppendFoods(c *gin.Context) {
	var req struct {
		Foods []model.FoodItem `json:"foods" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealID := c.Param("mealID")
	if !h.checkMealID(c, mealID) {
		return
	}

	h.mutate(c, func(record model.DailyRecord) model.DailyRecord {
		return record.AppendFoods(mealID, req.Foods)
	})
}

// EditFood replaces one food item in place. An out-of-range index is a
// silent no-op: the response carries the unchanged record.
func (h *RecordHandler) EditFood(c *gin.Context) {
	var food model.FoodItem
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealID := c.Param("mealID")
	if !h.checkMealID(c, mealID) {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food index"})
		return
	}

	h.mutate(c, func(record model.DailyRecord) model.DailyRecord {
		return record.EditFood(mealID, index, food)
	})
}

// DeleteFood removes one food item. The meal's lock is left untouched.
func (h *RecordHandler) DeleteFood(c *gin.Context) {
	mealID := c.Param("mealID")
	if !h.checkMealID(c, mealID) {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food index"})
		return
	}

	h.mutate(c, func(record model.DailyRecord) model.DailyRecord {
		return record.DeleteFood(mealID, index)
	})
}

// ClearMeal empties and unlocks a meal.
func (h *RecordHandler) ClearMeal(c *gin.Context) {
	mealID := c.Param("mealID")
	if !h.checkMealID(c, mealID) {
		return
	}

	h.mutate(c, func(record model.DailyRecord) model.DailyRecord {
		return record.ClearMeal(mealID)
	})
}

func (h *RecordHandler) checkMealID(c *gin.Context, mealID string) bool {
	if !model.ValidMealID(mealID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown meal id"})
		return false
	}
	return true
}

// mutate runs the load-mutate-save pipeline for the date in the path and
// responds with the updated record and its recomputed totals.
func (h *RecordHandler) mutate(c *gin.Context, fn func(model.DailyRecord) model.DailyRecord) {
	record, err := h.records.Load(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated := fn(record)
	if err := h.records.Save(c.Request.Context(), updated); err != nil {
		h.respondError(c, err)
		return
	}

	current := updated.Totals()
	c.JSON(http.StatusOK, gin.H{
		"record": updated,
		"totals": TotalsResponse{
			Current:         current,
			Remaining:       model.Remaining(current, model.TargetMacros),
			CarbEnergyShare: model.CarbEnergyShare(current),
			CarbTargetMet:   model.CarbTargetMet(current),
			ProteinWarning:  model.ProteinOverLimit(current),
		},
	})
}
