// Package tasks runs the deferred work that follows API mutations: the
// conference confirmation email, the featured-speaker scan, and the
// periodic announcement refresh. Work is dispatched to an in-process
// worker pool over a buffered channel; enqueueing never blocks the
// request path, and a full queue drops the task with a warning.
package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// job is one unit of background work.
type job struct {
	name string
	run  func(ctx context.Context) error
}

// Dispatcher implements domain.TaskQueue on top of a worker pool.
type Dispatcher struct {
	emailService   domain.EmailService
	sessionService domain.SessionService
	logger         *slog.Logger
	jobTimeout     time.Duration

	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a Dispatcher with the given queue capacity and
// worker count and starts the workers.
func NewDispatcher(emailService domain.EmailService, logger *slog.Logger, queueSize, workers int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	if workers <= 0 {
		workers = 2
	}
	d := &Dispatcher{
		emailService: emailService,
		logger:       logger,
		jobTimeout:   30 * time.Second,
		jobs:         make(chan job, queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// BindSessionService attaches the session service used by speaker-check
// tasks. The dispatcher is constructed first because the session service
// enqueues through it.
func (d *Dispatcher) BindSessionService(s domain.SessionService) {
	d.mu.Lock()
	d.sessionService = s
	d.mu.Unlock()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
		if err := j.run(ctx); err != nil {
			d.logger.Error("background task failed", "task", j.name, "error", err)
		}
		cancel()
	}
}

// enqueue hands the job to a worker if the queue has room; otherwise the
// task is dropped. Deferred work here is best-effort by contract.
func (d *Dispatcher) enqueue(j job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Warn("task dropped, dispatcher closed", "task", j.name)
		return
	}
	select {
	case d.jobs <- j:
	default:
		d.logger.Warn("task dropped, queue full", "task", j.name)
	}
}

func (d *Dispatcher) EnqueueConfirmationEmail(task domain.ConfirmationEmailTask) {
	d.enqueue(job{
		name: "confirmation_email",
		run: func(ctx context.Context) error {
			return d.emailService.SendConferenceConfirmation(ctx, &domain.ConferenceConfirmationEmailData{
				Email:          task.Email,
				ConferenceName: task.ConferenceName,
				ConferenceInfo: task.ConferenceInfo,
			})
		},
	})
}

func (d *Dispatcher) EnqueueSpeakerCheck(task domain.SpeakerCheckTask) {
	d.enqueue(job{
		name: "speaker_check",
		run: func(ctx context.Context) error {
			d.mu.Lock()
			s := d.sessionService
			d.mu.Unlock()
			if s == nil {
				return errors.New("no session service bound")
			}
			return s.ScanFeaturedSpeaker(ctx, task.Speaker, task.ConferenceID, task.WebsafeConferenceKey)
		},
	})
}

// Close stops accepting tasks and waits for in-flight work to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}
