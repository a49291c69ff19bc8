package worker

import (
	"time"

	"github.com/rs/zerolog"

	"bizpos/internal/infra"
)

// EmailWorker sends queued messages through the SMTP relay behind a
// circuit breaker, so a dead relay fast-fails instead of tying up the
// pool on timeouts.
type EmailWorker struct {
	mailer  *infra.Mailer
	breaker *infra.CircuitBreaker
	timeout time.Duration
	log     zerolog.Logger
}

func NewEmailWorker(mailer *infra.Mailer, log zerolog.Logger) *EmailWorker {
	return &EmailWorker{
		mailer:  mailer,
		breaker: infra.NewCircuitBreaker(infra.DefaultCBConfig()),
		timeout: 15 * time.Second,
		log:     log,
	}
}

// Process delivers one job. ErrCircuitOpen counts as a failure so the
// pool's retry/requeue policy applies.
func (w *EmailWorker) Process(job EmailJob) error {
	return w.breaker.Execute(func() error {
		return w.mailer.SendWithTimeout(job.To, job.Subject, job.Body, w.timeout)
	})
}

// BreakerState is exposed for the health endpoint.
func (w *EmailWorker) BreakerState() string {
	return w.breaker.State().String()
}
