package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *entity.Challenge) error
	GetByID(ctx context.Context, id string) (*entity.Challenge, error)

	// GetOfChallenged scopes the lookup to the challenged party, which is
	// the only side allowed to accept or decline.
	GetOfChallenged(ctx context.Context, id, challengedID string) (*entity.Challenge, error)

	GetSentByUserID(ctx context.Context, userID string, limit int) ([]entity.Challenge, error)
	GetReceivedByUserID(ctx context.Context, userID string, limit int) ([]entity.Challenge, error)

	// GetActiveByUserID returns active challenges of either side whose
	// scoring window covers the given instant.
	GetActiveByUserID(ctx context.Context, userID string, at time.Time) ([]entity.Challenge, error)

	// GetExpired returns active challenges whose window has closed.
	GetExpired(ctx context.Context, now time.Time) ([]entity.Challenge, error)

	// Activate flips a pending challenge to active and re-anchors its
	// scoring window. Returns false if the challenge was not pending.
	Activate(ctx context.Context, id string, start, end time.Time) (bool, error)

	// Decline flips a pending challenge to declined. Returns false if the
	// challenge was not pending.
	Decline(ctx context.Context, id string) (bool, error)

	// AddPoints credits points to one side of an active challenge.
	AddPoints(ctx context.Context, id string, isChallenger bool, points float64) error

	// Complete records the resolution of an active challenge. Returns false
	// if someone resolved it first, making resolution idempotent.
	Complete(ctx context.Context, id string, winnerID sql.NullString, pointsGained float64) (bool, error)
}

type challengeRepository struct{}

func NewChallengeRepository() *challengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *entity.Challenge) error {
	return xcontext.DB(ctx).Create(challenge).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*entity.Challenge, error) {
	result := &entity.Challenge{}
	if err := xcontext.DB(ctx).Where("id=?", id).Take(result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetOfChallenged(
	ctx context.Context, id, challengedID string,
) (*entity.Challenge, error) {
	result := &entity.Challenge{}
	err := xcontext.DB(ctx).
		Where("id=? AND challenged_id=?", id, challengedID).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetSentByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.Challenge, error) {
	result := []entity.Challenge{}
	err := xcontext.DB(ctx).
		Where("challenger_id=?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetReceivedByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.Challenge, error) {
	result := []entity.Challenge{}
	err := xcontext.DB(ctx).
		Where("challenged_id=?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetActiveByUserID(
	ctx context.Context, userID string, at time.Time,
) ([]entity.Challenge, error) {
	result := []entity.Challenge{}
	err := xcontext.DB(ctx).
		Where("status=?", entity.ChallengeActive).
		Where("start_date<=? AND end_date>?", at, at).
		Where("challenger_id=? OR challenged_id=?", userID, userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetExpired(ctx context.Context, now time.Time) ([]entity.Challenge, error) {
	result := []entity.Challenge{}
	err := xcontext.DB(ctx).
		Where("status=? AND end_date<=?", entity.ChallengeActive, now).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) Activate(
	ctx context.Context, id string, start, end time.Time,
) (bool, error) {
	result := xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id=? AND status=?", id, entity.ChallengePending).
		Updates(map[string]any{
			"status":     entity.ChallengeActive,
			"start_date": start,
			"end_date":   end,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *challengeRepository) Decline(ctx context.Context, id string) (bool, error) {
	result := xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id=? AND status=?", id, entity.ChallengePending).
		Update("status", entity.ChallengeDeclined)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *challengeRepository) AddPoints(
	ctx context.Context, id string, isChallenger bool, points float64,
) error {
	column := "challenged_points"
	if isChallenger {
		column = "challenger_points"
	}

	return xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id=?", id).
		Update(column, gorm.Expr(column+"+?", points)).Error
}

func (r *challengeRepository) Complete(
	ctx context.Context, id string, winnerID sql.NullString, pointsGained float64,
) (bool, error) {
	result := xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id=? AND status=?", id, entity.ChallengeActive).
		Updates(map[string]any{
			"status":        entity.ChallengeCompleted,
			"winner_id":     winnerID,
			"points_gained": pointsGained,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
