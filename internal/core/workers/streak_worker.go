package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// StreakRebuilder replays one student's fitness log into a fresh streak.
type StreakRebuilder interface {
	RebuildStreak(ctx context.Context, owner string, day time.Time) (domain.Streak, error)
}

type StreakJob struct {
	Owner string
	Day   time.Time
}

// StreakWorker rebuilds streaks off the request path, one job at a time.
type StreakWorker struct {
	rebuilder StreakRebuilder
	jobs      chan StreakJob
	done      chan struct{}
}

func NewStreakWorker(rebuilder StreakRebuilder, queueSize int) *StreakWorker {
	if queueSize <= 0 {
		queueSize = 100
	}
	return &StreakWorker{
		rebuilder: rebuilder,
		jobs:      make(chan StreakJob, queueSize),
		done:      make(chan struct{}),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		log.Println("[WORKER] Streak worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Streak worker shutting down...")
				return
			}
		}
	}()
}

// Done is closed once the worker loop has returned.
func (w *StreakWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks; it reports false when the queue is full.
func (w *StreakWorker) Enqueue(owner string, day time.Time) bool {
	select {
	case w.jobs <- StreakJob{Owner: owner, Day: day}:
		return true
	default:
		log.Printf("[WORKER] Streak queue full! Dropping rebuild for %s", owner)
		return false
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	jobCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	streak, err := w.rebuilder.RebuildStreak(jobCtx, job.Owner, job.Day)
	if err != nil {
		log.Printf("[WORKER] Failed to rebuild streak for %s: %v", job.Owner, err)
		return
	}

	log.Printf("[WORKER] Streak rebuilt for %s: Current=%d, Best=%d", job.Owner, streak.Current, streak.Best)
}
