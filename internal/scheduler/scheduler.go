package scheduler

import (
	"context"
	"time"

	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/services"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/sirupsen/logrus"
)

// Scheduler periodically reminds organizations about applications that have
// sat in PENDING longer than the configured age. It never mutates lifecycle
// state; it only sends webhook digests.
type Scheduler struct {
	interval time.Duration
	age      time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler(interval, age time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		interval: interval,
		age:      age,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	logrus.Infof("Starting reminder scheduler (every %s, pending older than %s)", s.interval, s.age)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	logrus.Info("Stopping reminder scheduler")
	s.cancel()
}

type pendingDigest struct {
	OrganizationProfileID uint
	PendingCount          int
}

func (s *Scheduler) sweep() {
	cutoff := time.Now().Add(-s.age)

	var digests []pendingDigest

	err := db.DB.Model(&models.Application{}).
		Select("internships.organization_profile_id AS organization_profile_id, COUNT(applications.id) AS pending_count").
		Joins("JOIN internships ON internships.id = applications.internship_id").
		Where("applications.status = ? AND applications.created_at < ?", types.ApplicationPending, cutoff).
		Group("internships.organization_profile_id").
		Scan(&digests).Error

	if err != nil {
		logrus.WithError(err).Error("Reminder sweep query failed")
		return
	}

	for _, digest := range digests {
		var org models.OrganizationProfile
		if err := db.DB.First(&org, digest.OrganizationProfileID).Error; err != nil {
			logrus.WithError(err).Warnf("Reminder sweep: organization %d not found", digest.OrganizationProfileID)
			continue
		}
		services.NotifyPendingReminder(&org, digest.PendingCount)
	}
}
