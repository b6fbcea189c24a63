package worker // import "github.com/bookverse/bookverse/worker"

import (
	"time"

	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/model"
	"github.com/bookverse/bookverse/store"
	"go.uber.org/zap"
)

const maxRecomputeAttempts = 5

// RecomputePool retries book rating recomputations that failed inline after
// a review mutation. The mutation itself is already committed, so losing a
// job only delays the aggregate catching up.
type RecomputePool struct {
	queue chan model.Job
}

func NewRecomputePool(store *store.Store, size int) *RecomputePool {
	pool := &RecomputePool{
		queue: make(chan model.Job, 64),
	}

	for i := 0; i < size; i++ {
		worker := &RatingRecomputeWorker{id: i, store: store, pool: pool}
		go worker.Run(pool.queue)
	}

	return pool
}

func (p *RecomputePool) GetQueue() chan model.Job {
	return p.queue
}

// Implement WorkPool interface
func (p *RecomputePool) Push(job model.Job) {
	select {
	case p.queue <- job:
	default:
		log.Warn("Recompute queue is full, dropping job", zap.Int32("book_id", job.BookID))
	}
}

type RatingRecomputeWorker struct {
	id    int
	store *store.Store
	pool  *RecomputePool
}

func (w *RatingRecomputeWorker) Run(c <-chan model.Job) {
	log.Debug("RatingRecomputeWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		if job.Type != model.JobTypeRecomputeRating {
			log.Warn("Unknown job type", zap.String("type", job.Type))
			continue
		}

		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int32("book_id", job.BookID),
			zap.Int("attempt", job.Attempt))

		if err := w.store.RecomputeBookRating(job.BookID); err != nil {
			w.retry(job, err)
			continue
		}
	}
}

func (w *RatingRecomputeWorker) retry(job model.Job, err error) {
	if job.Attempt+1 >= maxRecomputeAttempts {
		log.Error("Giving up on rating recompute",
			zap.Int32("book_id", job.BookID),
			zap.Int("attempts", job.Attempt+1),
			zap.Error(err))
		return
	}

	next := job
	next.Attempt++
	delay := time.Duration(next.Attempt) * time.Second

	log.Warn("Rating recompute failed, scheduling retry",
		zap.Int32("book_id", job.BookID),
		zap.Int("attempt", next.Attempt),
		zap.Duration("delay", delay),
		zap.Error(err))

	// Re-push off the worker goroutine so a full queue cannot deadlock it.
	time.AfterFunc(delay, func() { w.pool.Push(next) })
}
