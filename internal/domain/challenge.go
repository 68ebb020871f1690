package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shuuuu87/DarkFocus/internal/domain/notification"
	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/internal/model"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
)

// ConsolationPoints is the fixed award the losing side of a resolved
// challenge receives for competing.
const ConsolationPoints = 2.0

type ChallengeDomain interface {
	Propose(ctx context.Context, req *model.ProposeChallengeRequest) (*model.ProposeChallengeResponse, error)
	Accept(ctx context.Context, req *model.AcceptChallengeRequest) (*model.AcceptChallengeResponse, error)
	Decline(ctx context.Context, req *model.DeclineChallengeRequest) (*model.DeclineChallengeResponse, error)
	GetList(ctx context.Context, req *model.GetChallengesRequest) (*model.GetChallengesResponse, error)

	// Resolve settles an active challenge whose window has closed. Shared
	// between on-demand paths and the sweeper; re-invocation no-ops.
	Resolve(ctx context.Context, challenge *entity.Challenge) error
}

type challengeDomain struct {
	challengeRepo repository.ChallengeRepository
	userRepo      repository.UserRepository
	leaderboard   statistic.Leaderboard
	notifyEngine  *notification.Engine
}

func NewChallengeDomain(
	challengeRepo repository.ChallengeRepository,
	userRepo repository.UserRepository,
	leaderboard statistic.Leaderboard,
	notifyEngine *notification.Engine,
) *challengeDomain {
	return &challengeDomain{
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		leaderboard:   leaderboard,
		notifyEngine:  notifyEngine,
	}
}

func (d *challengeDomain) Propose(
	ctx context.Context, req *model.ProposeChallengeRequest,
) (*model.ProposeChallengeResponse, error) {
	challengerID := xcontext.RequestUserID(ctx)
	if req.ChallengedID == challengerID {
		return nil, errorx.New(errorx.BadRequest, "Not allow challenging yourself")
	}

	if req.DurationDays <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Duration must be positive")
	}

	if _, err := d.userRepo.GetByID(ctx, req.ChallengedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenged user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenged user: %v", err)
		return nil, errorx.Unknown
	}

	// The window is provisional until acceptance re-anchors it.
	now := time.Now()
	challenge := &entity.Challenge{
		Base:         entity.Base{ID: uuid.NewString()},
		ChallengerID: challengerID,
		ChallengedID: req.ChallengedID,
		DurationDays: req.DurationDays,
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, req.DurationDays),
		Status:       entity.ChallengePending,
	}

	if err := d.challengeRepo.Create(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
		return nil, errorx.Unknown
	}

	d.notifyEngine.ChallengeProposed(ctx, *challenge)

	return &model.ProposeChallengeResponse{ID: challenge.ID}, nil
}

func (d *challengeDomain) Accept(
	ctx context.Context, req *model.AcceptChallengeRequest,
) (*model.AcceptChallengeResponse, error) {
	challenge, err := d.getReceivedChallenge(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if challenge.Status != entity.ChallengePending {
		return nil, errorx.New(errorx.Unavailable, "Challenge is not pending")
	}

	// Scoring starts now, not at proposal time.
	start := time.Now()
	end := start.AddDate(0, 0, challenge.DurationDays)

	activated, err := d.challengeRepo.Activate(ctx, challenge.ID, start, end)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot activate challenge: %v", err)
		return nil, errorx.Unknown
	}

	if !activated {
		return nil, errorx.New(errorx.Unavailable, "Challenge is not pending")
	}

	d.notifyEngine.ChallengeAccepted(ctx, *challenge)

	return &model.AcceptChallengeResponse{
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
	}, nil
}

func (d *challengeDomain) Decline(
	ctx context.Context, req *model.DeclineChallengeRequest,
) (*model.DeclineChallengeResponse, error) {
	challenge, err := d.getReceivedChallenge(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	declined, err := d.challengeRepo.Decline(ctx, challenge.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decline challenge: %v", err)
		return nil, errorx.Unknown
	}

	if !declined {
		return nil, errorx.New(errorx.Unavailable, "Challenge is not pending")
	}

	d.notifyEngine.ChallengeDeclined(ctx, *challenge)

	return &model.DeclineChallengeResponse{}, nil
}

func (d *challengeDomain) GetList(
	ctx context.Context, req *model.GetChallengesRequest,
) (*model.GetChallengesResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	sent, err := d.challengeRepo.GetSentByUserID(ctx, userID, 50)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sent challenges: %v", err)
		return nil, errorx.Unknown
	}

	received, err := d.challengeRepo.GetReceivedByUserID(ctx, userID, 50)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get received challenges: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetChallengesResponse{
		Sent:     []model.Challenge{},
		Received: []model.Challenge{},
	}

	for _, c := range sent {
		resp.Sent = append(resp.Sent, d.convertChallenge(ctx, c))
	}
	for _, c := range received {
		resp.Received = append(resp.Received, d.convertChallenge(ctx, c))
	}

	return resp, nil
}

func (d *challengeDomain) Resolve(ctx context.Context, challenge *entity.Challenge) error {
	if challenge.Status != entity.ChallengeActive {
		return nil
	}

	if time.Now().Before(challenge.EndDate) {
		return errorx.New(errorx.Unavailable, "Challenge window is still open")
	}

	var winnerID sql.NullString
	var pointsGained float64
	switch {
	case challenge.ChallengerPoints > challenge.ChallengedPoints:
		winnerID = sql.NullString{Valid: true, String: challenge.ChallengerID}
		pointsGained = challenge.ChallengerPoints - challenge.ChallengedPoints
	case challenge.ChallengedPoints > challenge.ChallengerPoints:
		winnerID = sql.NullString{Valid: true, String: challenge.ChallengedID}
		pointsGained = challenge.ChallengedPoints - challenge.ChallengerPoints
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	resolved, err := d.challengeRepo.Complete(ctx, challenge.ID, winnerID, pointsGained)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete challenge: %v", err)
		return errorx.Unknown
	}

	// Lost the race against another resolver; the awards are theirs.
	if !resolved {
		return nil
	}

	if winnerID.Valid {
		loserID := challenge.ChallengerID
		if winnerID.String == challenge.ChallengerID {
			loserID = challenge.ChallengedID
		}

		if err := d.userRepo.IncreaseTotals(ctx, winnerID.String, pointsGained, 0); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award challenge winner: %v", err)
			return errorx.Unknown
		}

		if err := d.userRepo.IncreaseTotals(ctx, loserID, ConsolationPoints, 0); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award consolation points: %v", err)
			return errorx.Unknown
		}

		xcontext.WithCommitDBTransaction(ctx)

		d.leaderboard.ChangePoints(ctx, winnerID.String, pointsGained)
		d.leaderboard.ChangePoints(ctx, loserID, ConsolationPoints)
	} else {
		// A tie awards nothing.
		xcontext.WithCommitDBTransaction(ctx)
	}

	challenge.Status = entity.ChallengeCompleted
	challenge.WinnerID = winnerID
	challenge.PointsGained = pointsGained

	d.notifyEngine.ChallengeResolved(ctx, *challenge)

	return nil
}

func (d *challengeDomain) getReceivedChallenge(
	ctx context.Context, id string,
) (*entity.Challenge, error) {
	challenge, err := d.challengeRepo.GetOfChallenged(ctx, id, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	return challenge, nil
}

func (d *challengeDomain) convertChallenge(
	ctx context.Context, c entity.Challenge,
) model.Challenge {
	resp := model.Challenge{
		ID:               c.ID,
		ChallengerID:     c.ChallengerID,
		ChallengedID:     c.ChallengedID,
		DurationDays:     c.DurationDays,
		StartDate:        c.StartDate.Format(time.RFC3339),
		EndDate:          c.EndDate.Format(time.RFC3339),
		ChallengerPoints: c.ChallengerPoints,
		ChallengedPoints: c.ChallengedPoints,
		Status:           string(c.Status),
		PointsGained:     c.PointsGained,
	}

	if c.WinnerID.Valid {
		resp.WinnerID = c.WinnerID.String
	}

	if challenger, err := d.userRepo.GetByID(ctx, c.ChallengerID); err == nil {
		resp.ChallengerName = challenger.Name
	}
	if challenged, err := d.userRepo.GetByID(ctx, c.ChallengedID); err == nil {
		resp.ChallengedName = challenged.Name
	}

	return resp
}
