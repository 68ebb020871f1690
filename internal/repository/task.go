package repository

import (
	"context"
	"time"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error

	// GetOfUser scopes the lookup to the owner. Foreign tasks surface as
	// record-not-found, never as someone else's row.
	GetOfUser(ctx context.Context, id, userID string) (*entity.Task, error)
	GetIncompleteByUserID(ctx context.Context, userID string) ([]entity.Task, error)

	// GetExpired returns active, incomplete tasks whose expected completion
	// has passed.
	GetExpired(ctx context.Context, now time.Time) ([]entity.Task, error)

	StartTimer(ctx context.Context, id string, startedAt, expectedCompletion time.Time) error
	PauseTimer(ctx context.Context, id string, remainingMinutes int) error

	// DeactivateAllOfUser pauses nothing; it force-clears the active flag of
	// every running timer of the user so a new one can start.
	DeactivateAllOfUser(ctx context.Context, userID string) error

	// MarkCompleted flips the task to completed if and only if it was not
	// completed before, returning whether this caller won the flip. Racing
	// actors (interactive request vs sweeper) serialize on this.
	MarkCompleted(ctx context.Context, id string, completedAt time.Time) (bool, error)

	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type taskRepository struct{}

func NewTaskRepository() *taskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return xcontext.DB(ctx).Create(task).Error
}

func (r *taskRepository) GetOfUser(ctx context.Context, id, userID string) (*entity.Task, error) {
	result := &entity.Task{}
	if err := xcontext.DB(ctx).Where("id=? AND user_id=?", id, userID).Take(result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) GetIncompleteByUserID(ctx context.Context, userID string) ([]entity.Task, error) {
	result := []entity.Task{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND is_completed=false", userID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) GetExpired(ctx context.Context, now time.Time) ([]entity.Task, error) {
	result := []entity.Task{}
	err := xcontext.DB(ctx).
		Where("is_active=true AND is_completed=false AND expected_completion<=?", now).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) StartTimer(
	ctx context.Context, id string, startedAt, expectedCompletion time.Time,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=?", id).
		Updates(map[string]any{
			"is_active":           true,
			"started_at":          startedAt,
			"expected_completion": expectedCompletion,
		}).Error
}

func (r *taskRepository) PauseTimer(ctx context.Context, id string, remainingMinutes int) error {
	return xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=?", id).
		Updates(map[string]any{
			"duration_minutes":    remainingMinutes,
			"is_active":           false,
			"started_at":          nil,
			"expected_completion": nil,
		}).Error
}

func (r *taskRepository) DeactivateAllOfUser(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("user_id=? AND is_active=true", userID).
		Updates(map[string]any{
			"is_active":           false,
			"started_at":          nil,
			"expected_completion": nil,
		}).Error
}

func (r *taskRepository) MarkCompleted(
	ctx context.Context, id string, completedAt time.Time,
) (bool, error) {
	result := xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=? AND is_completed=false", id).
		Updates(map[string]any{
			"is_completed":        true,
			"completed_at":        completedAt,
			"is_active":           false,
			"started_at":          nil,
			"expected_completion": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Task{}).Error
}

func (r *taskRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.Task{}).Error
}
