package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ytgrab/ytgrab/internal/config"
	"github.com/ytgrab/ytgrab/internal/engine"
	"github.com/ytgrab/ytgrab/internal/format"
	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/session"
	"github.com/ytgrab/ytgrab/internal/validate"
)

// ErrBusy is returned by Start while another download is in progress
var ErrBusy = errors.New("another download is already in progress")

// eventBuffer sizes the per-job event channel; the dispatcher drains it
// continuously so it only smooths bursts.
const eventBuffer = 64

// Callbacks is the narrow contract exposed to a presentation layer.
// OnProgress and OnTerminal are invoked from a single dispatch goroutine
// in emission order, at most once per event. ConfirmOverwrite is called
// synchronously from the worker.
type Callbacks struct {
	OnProgress       func(model.ProgressEvent)
	OnTerminal       func(success bool)
	ConfirmOverwrite func(label string) bool
}

// Orchestrator owns at most one active download session at a time and
// fans its progress and terminal result out to the attached callbacks.
type Orchestrator struct {
	eng      engine.Engine
	settings *config.Settings
	cb       Callbacks
	log      *logrus.Logger
	cache    *format.Cache

	// preflight overrides the session's default precondition checks;
	// tests inject a stub here
	preflight func() error

	mu      sync.Mutex
	current *session.Session
	done    chan struct{}
}

// New creates an orchestrator with no active session
func New(eng engine.Engine, settings *config.Settings, cb Callbacks, log *logrus.Logger) *Orchestrator {
	if log == nil {
		log = logrus.New()
	}
	return &Orchestrator{
		eng:      eng,
		settings: settings,
		cb:       cb,
		log:      log,
		cache:    format.NewCache(settings.CacheCapacity),
	}
}

// IsBusy reports whether a session is currently running
func (o *Orchestrator) IsBusy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busyLocked()
}

func (o *Orchestrator) busyLocked() bool {
	if o.done == nil {
		return false
	}
	select {
	case <-o.done:
		return false
	default:
		return true
	}
}

// Start validates the request and, when all preconditions pass, begins
// the download on the dedicated worker. Validation and precondition
// failures are returned synchronously with no state change; engine
// failures during the run surface through the callbacks only.
func (o *Orchestrator) Start(kind model.ReferenceKind, rawRef, destination, selector string) error {
	// Reserve the worker before validating so a concurrent Start is
	// rejected instead of racing; the reservation is released on any
	// validation failure.
	done := make(chan struct{})
	o.mu.Lock()
	if o.busyLocked() {
		o.mu.Unlock()
		return ErrBusy
	}
	o.done = done
	o.current = nil
	o.mu.Unlock()

	release := func() {
		o.mu.Lock()
		o.done = nil
		o.current = nil
		o.mu.Unlock()
	}

	ref, err := validate.ValidateReference(kind, rawRef)
	if err != nil {
		release()
		return err
	}
	destDir, err := validate.ValidateDestination(destination)
	if err != nil {
		release()
		return err
	}
	if selector == "" {
		selector = format.SelectorBest
	}

	job := model.JobSpec{
		ID:       uuid.NewString(),
		Ref:      ref,
		DestDir:  destDir,
		Selector: selector,
	}

	events := make(chan model.ProgressEvent, eventBuffer)
	emit := func(ev model.ProgressEvent) {
		events <- ev
	}

	sess := session.New(job, o.eng, session.Config{
		MaxAttempts:        o.settings.MaxAttempts,
		RetryBackoff:       o.settings.RetryBackoff,
		SocketTimeout:      o.settings.SocketTimeout,
		MergeFormat:        o.settings.MergeFormat,
		OutputTemplate:     o.settings.OutputTemplate,
		CollectionTemplate: o.settings.CollectionTemplate,
		Preflight:          o.preflight,
		Logger:             o.log,
	}, emit, o.cb.ConfirmOverwrite)

	if err := sess.Validate(); err != nil {
		close(events)
		release()
		return err
	}

	o.mu.Lock()
	o.current = sess
	o.mu.Unlock()

	o.log.WithFields(logrus.Fields{
		"job":  job.ID,
		"kind": kind,
		"dest": destDir,
	}).Info("starting download")

	// Dispatcher: ordered, at-most-once delivery until the worker closes
	// the channel after the terminal event.
	go func() {
		for ev := range events {
			if o.cb.OnProgress != nil {
				o.cb.OnProgress(ev)
			}
			if ev.Kind == model.EventAllFinished && o.cb.OnTerminal != nil {
				o.cb.OnTerminal(ev.Success)
			}
		}
		close(done)
	}()

	go func() {
		sess.Run(context.Background())
		close(events)
	}()

	return nil
}

// Cancel requests a cooperative stop and blocks until the session reaches
// a terminal state and its last event has been delivered. It is a no-op
// when nothing is running.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	sess, done := o.current, o.done
	busy := o.busyLocked()
	o.mu.Unlock()

	if !busy || sess == nil {
		return
	}

	sess.Cancel()
	<-done
}

// FetchFormats resolves the selection menu for a single-item reference,
// consulting the bounded format cache first.
func (o *Orchestrator) FetchFormats(ctx context.Context, rawRef string) ([]model.SelectionEntry, error) {
	ref, err := validate.ValidateReference(model.KindSingle, rawRef)
	if err != nil {
		return nil, err
	}

	if menu, ok := o.cache.Get(ref.Value); ok {
		return menu, nil
	}

	pr, err := o.eng.Probe(ctx, ref.Value)
	if err != nil {
		return nil, err
	}

	menu := format.ResolveExtended(pr.Variants)
	o.cache.Put(ref.Value, menu)

	o.log.WithFields(logrus.Fields{
		"url":     ref.Value,
		"formats": len(menu),
	}).Info("formats loaded")

	return menu, nil
}
