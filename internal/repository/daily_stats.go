package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatsRepository interface {
	// AddCompletion upserts the (user, date) ledger row: the row is created
	// with zeros on the first completion of the day, then minutes, points
	// and the task counter accumulate. It returns the day's cumulative row.
	AddCompletion(ctx context.Context, userID string, date time.Time, minutes int, points float64) (*entity.DailyStats, error)

	Get(ctx context.Context, userID string, date time.Time) (*entity.DailyStats, error)
	GetRange(ctx context.Context, userID string, from, to time.Time) ([]entity.DailyStats, error)
	CountOfUser(ctx context.Context, userID string) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type dailyStatsRepository struct{}

func NewDailyStatsRepository() *dailyStatsRepository {
	return &dailyStatsRepository{}
}

func (r *dailyStatsRepository) AddCompletion(
	ctx context.Context, userID string, date time.Time, minutes int, points float64,
) (*entity.DailyStats, error) {
	row := &entity.DailyStats{
		Base:           entity.Base{ID: uuid.NewString()},
		UserID:         userID,
		Date:           date,
		MinutesStudied: minutes,
		PointsEarned:   points,
		TasksCompleted: 1,
	}

	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "date"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"minutes_studied": gorm.Expr("minutes_studied+?", minutes),
				"points_earned":   gorm.Expr("points_earned+?", points),
				"tasks_completed": gorm.Expr("tasks_completed+1"),
			}),
		}).Create(row).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, date)
}

func (r *dailyStatsRepository) Get(
	ctx context.Context, userID string, date time.Time,
) (*entity.DailyStats, error) {
	result := &entity.DailyStats{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND date=?", userID, date).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *dailyStatsRepository) GetRange(
	ctx context.Context, userID string, from, to time.Time,
) ([]entity.DailyStats, error) {
	result := []entity.DailyStats{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND date>=? AND date<=?", userID, from, to).
		Order("date ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *dailyStatsRepository) CountOfUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.DailyStats{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *dailyStatsRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.DailyStats{}).Error
}
