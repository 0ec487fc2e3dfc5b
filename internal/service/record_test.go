package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriday/backend/internal/model"
)

func newTestRecordService(t *testing.T) *RecordService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRecordService(client)
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2026-08-30")
	assert.NoError(t, err)

	for _, bad := range []string{"", "2026-8-30", "30-08-2026", "2026/08/30", "not-a-date"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestRecordService_LoadSave(t *testing.T) {
	svc := newTestRecordService(t)
	ctx := context.Background()

	t.Run("loading an unknown date returns the default skeleton", func(t *testing.T) {
		record, err := svc.Load(ctx, "2026-08-30")
		require.NoError(t, err)
		assert.Equal(t, model.NewDailyRecord("2026-08-30"), record)
	})

	t.Run("save and load round-trip", func(t *testing.T) {
		record := model.NewDailyRecord("2026-08-30")
		record = record.AppendFoods(model.MealLunch, []model.FoodItem{
			{Name: "Rice", Weight: 200, Macros: model.Macros{Calories: 260, Protein: 5, Carbs: 58, Fat: 0.6}},
		})
		require.NoError(t, svc.Save(ctx, record))

		loaded, err := svc.Load(ctx, "2026-08-30")
		require.NoError(t, err)
		assert.Equal(t, record, loaded)
	})

	t.Run("saving a foodless record writes nothing", func(t *testing.T) {
		empty := model.NewDailyRecord("2026-09-01").ClearMeal(model.MealBreakfast)
		require.False(t, empty.HasFoods())
		require.NoError(t, svc.Save(ctx, empty))

		loaded, err := svc.Load(ctx, "2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, model.NewDailyRecord("2026-09-01"), loaded)
	})

	t.Run("emptying a persisted day removes the stored entry", func(t *testing.T) {
		record := model.NewDailyRecord("2026-09-03").
			ClearMeal(model.MealBreakfast).
			AppendFoods(model.MealLunch, []model.FoodItem{
				{Name: "Rice", Weight: 200, Macros: model.Macros{Calories: 260}},
			})
		require.NoError(t, svc.Save(ctx, record))

		emptied := record.DeleteFood(model.MealLunch, 0)
		require.False(t, emptied.HasFoods())
		require.NoError(t, svc.Save(ctx, emptied))

		// the stale record must not resurrect on reload
		loaded, err := svc.Load(ctx, "2026-09-03")
		require.NoError(t, err)
		assert.Equal(t, model.NewDailyRecord("2026-09-03"), loaded)
	})

	t.Run("last writer wins", func(t *testing.T) {
		first := model.NewDailyRecord("2026-09-02")
		require.NoError(t, svc.Save(ctx, first))

		second := first.AppendFoods(model.MealSnack, []model.FoodItem{{Name: "Apple", Weight: 150, Macros: model.Macros{Calories: 78, Carbs: 21}}})
		require.NoError(t, svc.Save(ctx, second))

		loaded, err := svc.Load(ctx, "2026-09-02")
		require.NoError(t, err)
		assert.Equal(t, second, loaded)
	})

	t.Run("invalid dates are rejected", func(t *testing.T) {
		_, err := svc.Load(ctx, "bogus")
		assert.ErrorIs(t, err, ErrInvalidDate)

		err = svc.Save(ctx, model.DailyRecord{Date: "bogus"})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestRecordService_History(t *testing.T) {
	svc := newTestRecordService(t)
	ctx := context.Background()

	saved := model.NewDailyRecord("2026-08-29").AppendFoods(model.MealDinner, []model.FoodItem{
		{Name: "Noodles", Weight: 300, Macros: model.Macros{Calories: 400, Protein: 12, Carbs: 80, Fat: 2}},
	})
	require.NoError(t, svc.Save(ctx, saved))

	t.Run("inclusive ascending range with default gaps", func(t *testing.T) {
		records, err := svc.History(ctx, "2026-08-28", "2026-08-30")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "2026-08-28", records[0].Date)
		assert.Equal(t, "2026-08-29", records[1].Date)
		assert.Equal(t, "2026-08-30", records[2].Date)

		assert.Equal(t, model.NewDailyRecord("2026-08-28"), records[0])
		assert.Equal(t, saved, records[1])
	})

	t.Run("single-day range", func(t *testing.T) {
		records, err := svc.History(ctx, "2026-08-29", "2026-08-29")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, saved, records[0])
	})

	t.Run("start after end yields no records", func(t *testing.T) {
		records, err := svc.History(ctx, "2026-08-30", "2026-08-28")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("range crossing a month boundary", func(t *testing.T) {
		records, err := svc.History(ctx, "2026-08-30", "2026-09-02")
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "2026-09-01", records[2].Date)
	})
}

func TestRecordService_WeeklyWindow(t *testing.T) {
	svc := newTestRecordService(t)

	records, err := svc.WeeklyWindow(context.Background(), "2026-08-30")
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, "2026-08-24", records[0].Date)
	assert.Equal(t, "2026-08-30", records[6].Date)

	_, err = svc.WeeklyWindow(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
