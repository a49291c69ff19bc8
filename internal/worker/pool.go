// Package worker runs background jobs off a Redis list queue. The API
// enqueues; a small pool of goroutines drains with BRPOP so a burst of
// alerts never slows a request down.
package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const emailQueueKey = "bizpos:jobs:email"

// EmailJob is the queued payload for one outgoing message.
type EmailJob struct {
	To       []string  `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	Attempts int       `json:"attempts"`
	QueuedAt time.Time `json:"queued_at"`
}

// Dispatcher pushes jobs onto the queue. It is safe for concurrent use.
type Dispatcher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewDispatcher(rdb *redis.Client, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{rdb: rdb, log: log}
}

// EnqueueEmail queues a message for asynchronous delivery.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, to []string, subject, body string) error {
	job := EmailJob{To: to, Subject: subject, Body: body, QueuedAt: time.Now()}
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, emailQueueKey, payload).Err(); err != nil {
		return err
	}
	d.log.Debug().Int("recipients", len(to)).Str("subject", subject).Msg("email job queued")
	return nil
}

// Pool drains the queue with a fixed number of workers.
type Pool struct {
	rdb    *redis.Client
	worker *EmailWorker
	size   int
	log    zerolog.Logger
	wg     sync.WaitGroup
}

func NewPool(rdb *redis.Client, worker *EmailWorker, size int, log zerolog.Logger) *Pool {
	if size <= 0 {
		size = 3
	}
	return &Pool{rdb: rdb, worker: worker, size: size, log: log}
}

// Start launches the workers. They stop when ctx is canceled; Wait
// blocks until all in-flight jobs finish.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	p.log.Info().Int("workers", p.size).Msg("worker pool started")
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.With().Int("worker", id).Logger()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopping")
			return
		default:
		}

		// Short block so cancellation is noticed promptly.
		res, err := p.rdb.BRPop(ctx, 2*time.Second, emailQueueKey).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Msg("queue read failed")
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value].
		if len(res) != 2 {
			continue
		}

		var job EmailJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Error().Err(err).Msg("dropping malformed job")
			continue
		}
		p.handle(ctx, log, job)
	}
}

const maxAttempts = 3

func (p *Pool) handle(ctx context.Context, log zerolog.Logger, job EmailJob) {
	err := p.worker.Process(job)
	if err == nil {
		log.Info().Str("subject", job.Subject).Msg("email sent")
		return
	}

	job.Attempts++
	if job.Attempts >= maxAttempts {
		log.Error().Err(err).Str("subject", job.Subject).Msg("email dropped after retries")
		return
	}
	log.Warn().Err(err).Int("attempt", job.Attempts).Msg("email send failed, requeueing")
	payload, merr := json.Marshal(job)
	if merr != nil {
		return
	}
	if rerr := p.rdb.LPush(ctx, emailQueueKey, payload).Err(); rerr != nil {
		log.Error().Err(rerr).Msg("requeue failed")
	}
}
