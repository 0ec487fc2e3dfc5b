package service

import (
	"context"

	"github.com/nutriday/backend/internal/model"
)

// IAIService defines the interface for the AI gateway
type IAIService interface {
	GetMealRecommendation(ctx context.Context, req model.RecommendationRequest, currentIntake model.Macros) (*model.AiResponse, error)
	AnalyzeManualEntry(ctx context.Context, text, imageBase64 string) ([]model.FoodItem, error)
	GetDailySummary(ctx context.Context, dayLog model.Macros) (string, error)
	GenerateWeeklyReport(ctx context.Context, records []model.DailyRecord) (string, error)
}

// IRecordService defines the interface for daily record persistence
type IRecordService interface {
	Load(ctx context.Context, date string) (model.DailyRecord, error)
	Save(ctx context.Context, record model.DailyRecord) error
	History(ctx context.Context, startDate, endDate string) ([]model.DailyRecord, error)
	WeeklyWindow(ctx context.Context, endDate string) ([]model.DailyRecord, error)
}

// IPhotoService defines the interface for meal photo storage
type IPhotoService interface {
	UploadMealPhoto(ctx context.Context, imageBase64 string) (string, error)
}
