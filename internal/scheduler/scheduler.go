package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/dicoslang/backoffice/internal/models"
)

// RotationTime is when a new word of the day is picked, UTC.
const RotationTime = "00:00"

// Rotator picks a new word of the day.
type Rotator interface {
	Rotate(ctx context.Context) (*models.WordOfTheDay, error)
}

// Scheduler runs the daily jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	rotator   Rotator
	timeout   time.Duration
}

func New(rotator Rotator) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		rotator:   rotator,
		timeout:   30 * time.Second,
	}
}

// Start schedules the rotation and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(RotationTime).Do(s.RotateNow); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	log.Printf("[scheduler] word of the day rotation scheduled at %s UTC", RotationTime)
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RotateNow picks today's word. Failures are logged; the next run retries.
func (s *Scheduler) RotateNow() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	pick, err := s.rotator.Rotate(ctx)
	if err != nil {
		log.Printf("[scheduler] rotation failed err=%v", err)
		return
	}
	log.Printf("[scheduler] rotated day=%s word=%s", pick.ID, pick.WordID)
}
