package repository

import (
	"context"
	"database/sql"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)

	// IncreaseTotals atomically adds studied minutes and points to the
	// user's lifetime accumulators.
	IncreaseTotals(ctx context.Context, id string, points float64, minutes int) error

	// UpdateStreak persists the streak counters computed by the tracker.
	UpdateStreak(ctx context.Context, id string, current, max, graceUsed int, lastStudyDate sql.NullTime) error

	Delete(ctx context.Context, id string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	result := &entity.User{}
	if err := xcontext.DB(ctx).Where("id=?", id).Take(result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	result := &entity.User{}
	if err := xcontext.DB(ctx).Where("name=?", name).Take(result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	result := []entity.User{}
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) IncreaseTotals(ctx context.Context, id string, points float64, minutes int) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"total_points":     gorm.Expr("total_points+?", points),
			"total_study_time": gorm.Expr("total_study_time+?", minutes),
		}).Error
}

func (r *userRepository) UpdateStreak(
	ctx context.Context, id string, current, max, graceUsed int, lastStudyDate sql.NullTime,
) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"current_streak":  current,
			"max_streak":      max,
			"grace_days_used": graceUsed,
			"last_study_date": lastStudyDate,
		}).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.User{}).Error
}
