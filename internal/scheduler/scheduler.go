package scheduler

import (
	"DiningAPI/internal/hours"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReloadTimeout bounds one scheduled reload
const ReloadTimeout = 30 * time.Second

// Reloader rebuilds the schedule table from its source
type Reloader interface {
	Reload(ctx context.Context) (*hours.Table, error)
}

// ReloadScheduler reloads the schedule table on a cron spec and logs the
// status of every hall after each reload.
type ReloadScheduler struct {
	cronEngine *cron.Cron
	reloader   Reloader
	engine     *hours.Engine
	log        logrus.FieldLogger
	spec       string
	runCtx     context.Context
	cancel     context.CancelFunc
}

// NewReloadScheduler creates a new scheduler. Cron specs are evaluated in the
// engine's location so "0 5 * * *" means 5 AM campus time.
func NewReloadScheduler(reloader Reloader, engine *hours.Engine, log logrus.FieldLogger, spec string) *ReloadScheduler {
	return &ReloadScheduler{
		cronEngine: cron.New(cron.WithLocation(engine.Location())),
		reloader:   reloader,
		engine:     engine,
		log:        log,
		spec:       spec,
	}
}

// Start registers the reload job and starts the cron engine.
// An empty spec disables scheduled reloads.
func (s *ReloadScheduler) Start(ctx context.Context) error {
	if s.spec == "" {
		s.log.Info("scheduled schedule reloads disabled")
		return nil
	}
	s.runCtx, s.cancel = context.WithCancel(ctx)

	if _, err := s.cronEngine.AddFunc(s.spec, func() { s.RunOnce(s.runCtx) }); err != nil {
		s.cancel()
		return fmt.Errorf("invalid reload cron spec %q: %w", s.spec, err)
	}

	s.cronEngine.Start()
	s.log.WithField("spec", s.spec).Info("schedule reload scheduler started")
	return nil
}

// RunOnce reloads the table and logs a snapshot of all halls
func (s *ReloadScheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, ReloadTimeout)
	defer cancel()

	table, err := s.reloader.Reload(ctx)
	if err != nil {
		s.log.WithError(err).Error("scheduled schedule reload failed, keeping the previous table")
		return
	}
	s.log.WithField("source", table.Source()).Info("schedule reloaded")

	for _, hs := range s.engine.AllStatuses(time.Time{}) {
		s.log.WithFields(logrus.Fields{
			"hall":   hs.ID,
			"status": hs.Status.Kind(),
			"detail": hours.Detail(hs.Status),
		}).Info("hall status")
	}
}

// Stop stops the cron engine and waits for a running reload to finish
func (s *ReloadScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	stopCtx := s.cronEngine.Stop()
	<-stopCtx.Done()
	s.log.Info("schedule reload scheduler stopped")
}
