package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ytgrab/ytgrab/internal/engine"
	"github.com/ytgrab/ytgrab/internal/format"
	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/platform"
	"github.com/ytgrab/ytgrab/internal/progress"
	"github.com/ytgrab/ytgrab/internal/validate"
)

// ErrCancelled reports a cooperative stop requested by the user
var ErrCancelled = errors.New("download stopped by user")

// Confirmer answers whether a pre-existing output for item label should be
// overwritten. Called synchronously from the worker.
type Confirmer func(label string) bool

// Config holds the session's runtime knobs
type Config struct {
	MaxAttempts        int
	RetryBackoff       time.Duration
	SocketTimeout      time.Duration
	MergeFormat        string
	OutputTemplate     string
	CollectionTemplate string

	// Preflight overrides the default connectivity and tooling checks;
	// tests inject a stub here
	Preflight func() error

	Logger *logrus.Logger
}

// Session drives exactly one job through the
// Idle -> Validating -> Running -> {Succeeded, Failed} machine, with
// Running re-entered through Retrying on transient engine failures.
type Session struct {
	job     model.JobSpec
	cfg     Config
	eng     engine.Engine
	emit    func(model.ProgressEvent)
	confirm Confirmer
	agg     *progress.Aggregator
	log     *logrus.Logger

	mu        sync.Mutex
	state     model.SessionState
	retry     model.RetryState
	cancelled atomic.Bool
}

// New constructs an idle session for one job
func New(job model.JobSpec, eng engine.Engine, cfg Config, emit func(model.ProgressEvent), confirm Confirmer) *Session {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if emit == nil {
		emit = func(model.ProgressEvent) {}
	}
	s := &Session{
		job:     job,
		cfg:     cfg,
		eng:     eng,
		emit:    emit,
		confirm: confirm,
		log:     cfg.Logger,
		state:   model.StateIdle,
	}
	s.agg = progress.New(cfg.Logger, emit)
	return s
}

// State returns the current machine state
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RetryState returns a snapshot of the retry bookkeeping
func (s *Session) RetryState() model.RetryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retry
}

// Cancel requests a cooperative stop. The flag is observed between items
// and between retry attempts; an in-flight transfer is never interrupted.
func (s *Session) Cancel() {
	s.cancelled.Store(true)
}

// Validate runs the precondition checks: connectivity preflight and
// external muxing tool availability. Failure is terminal for this session
// and is returned synchronously so the caller can report it before any
// engine work starts.
func (s *Session) Validate() error {
	s.setState(model.StateValidating)

	preflight := s.cfg.Preflight
	if preflight == nil {
		preflight = defaultPreflight
	}
	if err := preflight(); err != nil {
		s.setState(model.StateFailed)
		return err
	}
	return nil
}

// Run executes the workflow for the job's reference kind and returns
// overall success. It emits the terminal AllFinished event last.
func (s *Session) Run(ctx context.Context) bool {
	s.setState(model.StateRunning)

	var success bool
	switch s.job.Ref.Kind {
	case model.KindSingle:
		success = s.runSingle(ctx)
	case model.KindList:
		success = s.runList(ctx)
	case model.KindCollection:
		success = s.runCollection(ctx)
	default:
		s.fail(fmt.Errorf("invalid download mode: %s", s.job.Ref.Kind))
	}

	if success {
		s.setState(model.StateSucceeded)
	} else {
		s.setState(model.StateFailed)
	}
	s.emit(model.ProgressEvent{Kind: model.EventAllFinished, Success: success})
	return success
}

func (s *Session) runSingle(ctx context.Context) bool {
	url := s.job.Ref.Value

	label, overwrite, skip := s.prepareItem(ctx, url)
	s.agg.StartItem(1, label)
	if skip {
		s.log.WithField("item", label).Info("kept existing file")
		s.agg.Observe(progress.Frame{Phase: progress.PhaseFinished})
		return true
	}

	if err := s.fetchWithRetry(ctx, url, s.outputTemplate(), false, overwrite); err != nil {
		s.fail(err)
		return false
	}
	return true
}

func (s *Session) runList(ctx context.Context) bool {
	urls, skipped, err := validate.LoadListFile(s.job.Ref.Value)
	if err != nil {
		s.fail(err)
		return false
	}
	if skipped > 0 {
		s.log.WithField("lines", skipped).Warn("skipped invalid lines in URL file")
	}
	if len(urls) == 0 {
		s.fail(errors.New("no valid URLs found in the file"))
		return false
	}

	s.log.WithField("count", len(urls)).Info("valid URLs loaded")
	s.agg.SetTotal(len(urls))

	success := true
	for i, url := range urls {
		if s.cancelled.Load() {
			s.fail(ErrCancelled)
			return false
		}

		label, overwrite, skip := s.prepareItem(ctx, url)
		s.agg.StartItem(i+1, label)
		if skip {
			s.log.WithField("item", label).Info("kept existing file")
			s.agg.Observe(progress.Frame{Phase: progress.PhaseFinished})
			continue
		}

		if err := s.fetchWithRetry(ctx, url, s.outputTemplate(), false, overwrite); err != nil {
			if errors.Is(err, ErrCancelled) {
				s.fail(err)
				return false
			}
			// One bad item never stops the batch
			success = false
			s.emit(model.ProgressEvent{
				Kind:    model.EventFailed,
				Message: fmt.Sprintf("failed to download %s: %v", url, err),
				Index:   i + 1,
				Total:   len(urls),
			})
			s.log.WithField("url", url).WithError(err).Warn("skipping to the next URL")
		}
	}
	return success
}

func (s *Session) runCollection(ctx context.Context) bool {
	url := s.job.Ref.Value

	count, err := s.eng.CountItems(ctx, url)
	if err != nil {
		s.fail(err)
		return false
	}
	if count == 0 {
		// An empty collection is a valid, empty result
		s.log.Info("collection is empty, nothing to download")
		return true
	}

	s.agg.SetTotal(count)
	s.agg.AutoAdvance()
	s.agg.StartItem(1, fmt.Sprintf("collection with %d items", count))

	template := filepath.Join(s.job.DestDir, s.cfg.CollectionTemplate)
	if err := s.fetchWithRetry(ctx, url, template, true, false); err != nil {
		s.fail(err)
		return false
	}
	return true
}

// fetchWithRetry invokes the engine, re-entering Running through Retrying
// on retryable failures with a fixed back-off, until the attempt budget is
// spent. Cancellation is observed between attempts only.
func (s *Session) fetchWithRetry(ctx context.Context, url, destTemplate string, playlist, overwrite bool) error {
	s.mu.Lock()
	s.retry = model.RetryState{MaxAttempts: s.cfg.MaxAttempts}
	s.mu.Unlock()

	opts := engine.FetchOptions{
		SocketTimeout: s.cfg.SocketTimeout,
		MergeFormat:   s.cfg.MergeFormat,
		Playlist:      playlist,
		Overwrite:     overwrite,
		AudioOnly:     s.job.Selector == format.SelectorAudioOnly,
		OnFrame:       s.agg.Observe,
	}

	for {
		s.mu.Lock()
		s.retry.Attempt++
		attempt := s.retry.Attempt
		s.mu.Unlock()

		err := s.eng.Fetch(ctx, url, s.job.Selector, destTemplate, opts)
		if err == nil {
			return nil
		}

		s.mu.Lock()
		s.retry.LastErr = err
		exhausted := s.retry.Exhausted()
		s.mu.Unlock()

		var engErr *engine.Error
		if !errors.As(err, &engErr) || !engErr.Retryable || exhausted {
			return err
		}

		s.setState(model.StateRetrying)
		s.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"max":     s.cfg.MaxAttempts,
		}).WithError(err).Warn("retrying download")

		select {
		case <-time.After(s.cfg.RetryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		if s.cancelled.Load() {
			return ErrCancelled
		}
		s.setState(model.StateRunning)
	}
}

// prepareItem probes the item title and, when the expected output already
// exists, asks the confirmer whether to overwrite. skip means the caller
// should treat the item as trivially succeeded without transferring. A
// failed probe is not fatal; the fetch will surface the real error.
func (s *Session) prepareItem(ctx context.Context, url string) (label string, overwrite, skip bool) {
	label = url

	pr, err := s.eng.Probe(ctx, url)
	if err != nil {
		s.log.WithField("url", url).WithError(err).Warn("probe failed, downloading without metadata")
		return label, false, false
	}
	if pr.Title == "" {
		return label, false, false
	}
	label = pr.Title

	out := filepath.Join(s.job.DestDir, pr.Title+"."+s.cfg.MergeFormat)
	if _, err := os.Stat(out); err != nil {
		return label, false, false
	}
	if s.confirm == nil || !s.confirm(pr.Title) {
		return label, false, true
	}
	return label, true, false
}

func (s *Session) outputTemplate() string {
	return filepath.Join(s.job.DestDir, s.cfg.OutputTemplate)
}

func (s *Session) fail(err error) {
	s.emit(model.ProgressEvent{Kind: model.EventFailed, Message: err.Error()})
}

func (s *Session) setState(state model.SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// defaultPreflight checks connectivity and the external muxing tool. Both
// are hard preconditions for any workflow; neither is retried.
func defaultPreflight() error {
	if err := platform.CheckConnectivity(platform.ConnectivityProbeTimeout); err != nil {
		return err
	}
	if err := platform.LookupTool(platform.FFmpegCommand); err != nil {
		return err
	}
	return nil
}
