// Package scheduler drives periodic recloning of every collection mirror on
// a cron schedule, adapting the Runner shape in
// easyweb3tools-easy-paas's polymarket backend cron package: a
// *cron.Cron wrapped with a base context and a zap logger, one AddFunc per
// job.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Mirror is the narrow slice of a collection mirror the scheduler drives: a full reclone.
type Mirror interface {
	CloneCollection(ctx context.Context) error
}

// Runner wraps a cron scheduler bound to a base context.
type Runner struct {
	cron    *cron.Cron
	log     *zap.Logger
	baseCtx context.Context
}

// New builds a Runner. baseCtx is used for every scheduled job; it should
// be cancelled on shutdown to stop in-flight clones promptly.
func New(log *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{cron: cron.New(), log: log, baseCtx: baseCtx}
}

// ScheduleReclone registers a periodic CloneCollection for one entity's
// mirror. A failure is logged, not propagated — the next scheduled tick
// retries: the next scheduled tick will drop and reclone the collection.
func (r *Runner) ScheduleReclone(spec, entity string, m Mirror) error {
	_, err := r.cron.AddFunc(spec, func() {
		r.log.Info("scheduled reclone starting", zap.String("entity", entity))
		if err := m.CloneCollection(r.baseCtx); err != nil {
			r.log.Error("scheduled reclone failed", zap.String("entity", entity), zap.Error(err))
			return
		}
		r.log.Info("scheduled reclone complete", zap.String("entity", entity))
	})
	return err
}

// Start begins running scheduled jobs.
func (r *Runner) Start() {
	r.log.Info("scheduler started")
	r.cron.Start()
}

// Stop waits for in-flight jobs to finish, then stops the scheduler.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("scheduler stopped")
}
