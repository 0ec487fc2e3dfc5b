package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutriday/backend/internal/model"
)

const (
	recordKeyPrefix = "diet:record:"
	dateLayout      = "2006-01-02"
)

// ErrInvalidDate is returned when a date string is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// RecordService persists daily records in Redis, one entry per calendar
// date. Absence is a valid state: loading an unknown date yields the default
// skeleton without creating a storage entry.
type RecordService struct {
	redis *redis.Client
}

// NewRecordService creates a new RecordService instance
func NewRecordService(redisClient *redis.Client) *RecordService {
	return &RecordService{redis: redisClient}
}

func recordKey(date string) string {
	return recordKeyPrefix + date
}

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Load returns the stored record for date, or the default skeleton when no
// record exists. Absence is never an error.
func (s *RecordService) Load(ctx context.Context, date string) (model.DailyRecord, error) {
	if _, err := ParseDate(date); err != nil {
		return model.DailyRecord{}, err
	}

	data, err := s.redis.Get(ctx, recordKey(date)).Bytes()
	if err == redis.Nil {
		return model.NewDailyRecord(date), nil
	}
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("failed to load record for %s: %w", date, err)
	}

	var record model.DailyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.DailyRecord{}, fmt.Errorf("failed to unmarshal record for %s: %w", date, err)
	}
	return record, nil
}

// Save overwrites whatever is stored under the record's date. Last writer
// wins; there is no merge or version check. Records without a single food
// item anywhere are not written; instead any stored entry for that date is
// removed, so emptying a previously saved day does not leave a stale record
// behind and merely browsing a date never creates one.
func (s *RecordService) Save(ctx context.Context, record model.DailyRecord) error {
	if _, err := ParseDate(record.Date); err != nil {
		return err
	}
	if !record.HasFoods() {
		if err := s.redis.Del(ctx, recordKey(record.Date)).Err(); err != nil {
			return fmt.Errorf("failed to clear record for %s: %w", record.Date, err)
		}
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for %s: %w", record.Date, err)
	}

	if err := s.redis.Set(ctx, recordKey(record.Date), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save record for %s: %w", record.Date, err)
	}
	return nil
}

// History walks the inclusive date range in ascending order, loading each
// day. Unrecorded days yield default skeletons, not gaps.
func (s *RecordService) History(ctx context.Context, startDate, endDate string) ([]model.DailyRecord, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	records := []model.DailyRecord{}
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		record, err := s.Load(ctx, cur.Format(dateLayout))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// WeeklyWindow returns the fixed 7-day report window ending at endDate.
func (s *RecordService) WeeklyWindow(ctx context.Context, endDate string) ([]model.DailyRecord, error) {
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	start := end.AddDate(0, 0, -6)
	return s.History(ctx, start.Format(dateLayout), endDate)
}
