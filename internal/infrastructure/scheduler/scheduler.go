package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/achievement"
	"github.com/hash23code/foxwise-todo-sub001/pkg/config"
)

// Scheduler drives the two daily badge checkpoints. The evening pass runs at
// the configured local hour and evaluates the current day; the midnight pass
// runs shortly after 00:00 and closes out the day that just ended.
type Scheduler struct {
	achievements achievement.Service
	completions  achievement.CompletionRepository
	cron         *cron.Cron
	location     *time.Location
	logger       *logrus.Logger
}

func NewScheduler(
	achievements achievement.Service,
	completions achievement.CompletionRepository,
	cfg config.SchedulerConfig,
	log *logrus.Logger,
) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		achievements: achievements,
		completions:  completions,
		cron:         cron.New(cron.WithLocation(loc)),
		location:     loc,
		logger:       log,
	}

	eveningSpec := fmt.Sprintf("0 %d * * *", cfg.EveningHour)
	if _, err := s.cron.AddFunc(eveningSpec, s.runEveningCheck); err != nil {
		return nil, fmt.Errorf("failed to schedule evening check: %w", err)
	}
	// A few minutes past midnight so late writes for the closing day land first.
	if _, err := s.cron.AddFunc("5 0 * * *", s.runMidnightCheck); err != nil {
		return nil, fmt.Errorf("failed to schedule midnight check: %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("timezone", s.location.String()).Info("Badge scheduler started")
}

// Stop halts the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Badge scheduler stopped")
}

func (s *Scheduler) runEveningCheck() {
	date := achievement.LocalDate(time.Now().In(s.location))
	s.runCheck(date, achievement.CheckEvening)
}

func (s *Scheduler) runMidnightCheck() {
	date := achievement.LocalDate(time.Now().In(s.location).AddDate(0, 0, -1))
	s.runCheck(date, achievement.CheckMidnight)
}

// runCheck fans the checkpoint out to every user with activity on the date.
// One user's failure never blocks the rest.
func (s *Scheduler) runCheck(date time.Time, check achievement.CheckType) {
	ctx := context.Background()
	startTime := time.Now()

	s.logger.WithFields(logrus.Fields{
		"check_type": string(check),
		"date":       date.Format("2006-01-02"),
	}).Info("Starting daily badge check")

	userIDs, err := s.completions.DistinctUserIDs(ctx, date)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"check_type": string(check),
			"error":      err,
		}).Error("Failed to list users for badge check")
		return
	}

	awardedTotal := 0
	for _, userID := range userIDs {
		awarded, err := s.achievements.RunDailyCheck(ctx, userID, date, check)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"user_id":    userID.String(),
				"check_type": string(check),
				"error":      err,
			}).Error("Badge check failed for user")
			continue
		}
		awardedTotal += len(awarded)
	}

	s.logger.WithFields(logrus.Fields{
		"check_type":     string(check),
		"users_checked":  len(userIDs),
		"badges_awarded": awardedTotal,
		"duration":       time.Since(startTime).String(),
	}).Info("Completed daily badge check")
}
