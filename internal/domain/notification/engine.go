package notification

import (
	"context"
	"fmt"

	"github.com/shuuuu87/DarkFocus/internal/domain/rank"
	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"golang.org/x/exp/slices"
)

var streakMilestones = []int{7, 30, 100, 365}

// Engine compares user snapshots taken before and after an award and
// emits the achievements crossed in between.
type Engine struct {
	notifier Notifier
}

func NewEngine(notifier Notifier) *Engine {
	return &Engine{notifier: notifier}
}

func (e *Engine) TaskCompleted(ctx context.Context, before, after entity.User) {
	oldRank := rank.Of(before.TotalPoints)
	newRank := rank.Of(after.TotalPoints)
	if oldRank != newRank {
		e.notify(ctx, after.ID, "rank_up",
			fmt.Sprintf("Rank up! %s -> %s", oldRank, newRank))
	}

	if int(before.TotalPoints)/100 < int(after.TotalPoints)/100 {
		milestone := int(after.TotalPoints) / 100 * 100
		e.notify(ctx, after.ID, "points_milestone",
			fmt.Sprintf("You reached %d points", milestone))
	}

	if after.CurrentStreak != before.CurrentStreak &&
		slices.Contains(streakMilestones, after.CurrentStreak) {
		e.notify(ctx, after.ID, "streak_milestone",
			fmt.Sprintf("%d day streak", after.CurrentStreak))
	}

	oldHours := before.TotalStudyTime / 60
	newHours := after.TotalStudyTime / 60
	if oldHours/10 < newHours/10 {
		e.notify(ctx, after.ID, "hours_milestone",
			fmt.Sprintf("%d hours studied", newHours/10*10))
	}
}

func (e *Engine) ChallengeProposed(ctx context.Context, challenge entity.Challenge) {
	e.notify(ctx, challenge.ChallengedID, "challenge_received",
		fmt.Sprintf("You received a %d-day challenge", challenge.DurationDays))
}

func (e *Engine) ChallengeAccepted(ctx context.Context, challenge entity.Challenge) {
	e.notify(ctx, challenge.ChallengerID, "challenge_accepted",
		"Your challenge was accepted, the clock is running")
}

func (e *Engine) ChallengeDeclined(ctx context.Context, challenge entity.Challenge) {
	e.notify(ctx, challenge.ChallengerID, "challenge_declined",
		"Your challenge was declined")
}

func (e *Engine) ChallengeResolved(ctx context.Context, challenge entity.Challenge) {
	if !challenge.WinnerID.Valid {
		msg := "Challenge ended in a tie"
		e.notify(ctx, challenge.ChallengerID, "challenge_resolved", msg)
		e.notify(ctx, challenge.ChallengedID, "challenge_resolved", msg)
		return
	}

	loserID := challenge.ChallengerID
	if challenge.WinnerID.String == challenge.ChallengerID {
		loserID = challenge.ChallengedID
	}

	e.notify(ctx, challenge.WinnerID.String, "challenge_resolved",
		fmt.Sprintf("You won the challenge and gained %.1f points", challenge.PointsGained))
	e.notify(ctx, loserID, "challenge_resolved",
		"You lost the challenge but earned 2.0 points for competing")
}

func (e *Engine) notify(ctx context.Context, userID, event, message string) {
	if err := e.notifier.Notify(ctx, userID, event, message); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot notify user %s about %s: %v", userID, event, err)
	}
}
