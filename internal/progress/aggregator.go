package progress

import (
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytgrab/ytgrab/internal/model"
)

// Phase tags emitted by the media engine
const (
	PhaseDownloading = "downloading"
	PhaseFinished    = "finished"
)

// Frame is one raw progress callback from the media engine. Percent, Rate
// and ETA are engine-formatted strings and may be malformed or absent.
type Frame struct {
	Phase   string
	Percent string
	Rate    string
	ETA     string
}

// Aggregator coalesces raw engine frames into ProgressEvents. It clamps
// percent values to [0,100], swallows unparseable samples, and guarantees
// exactly one ItemFinished per completed item. For batch and collection
// workflows it carries the item index supplied by the session.
type Aggregator struct {
	mu          sync.Mutex
	log         *logrus.Logger
	emit        func(model.ProgressEvent)
	index       int
	total       int
	itemDone    bool
	autoAdvance bool
}

// New creates an aggregator forwarding events through emit
func New(log *logrus.Logger, emit func(model.ProgressEvent)) *Aggregator {
	if log == nil {
		log = logrus.New()
	}
	return &Aggregator{log: log, emit: emit}
}

// SetTotal records the item count for batch workflows. The index advances
// only through StartItem; extra completion frames for the same item (one
// per downloaded stream) stay latched.
func (a *Aggregator) SetTotal(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.total = n
	if n > 0 && a.index == 0 {
		a.index = 1
	}
}

// AutoAdvance makes item completions advance the index without StartItem
// calls. Collections run as one engine invocation, so the session cannot
// mark per-item starts itself.
func (a *Aggregator) AutoAdvance() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.autoAdvance = true
}

// StartItem marks the beginning of item index and emits ItemStarted
func (a *Aggregator) StartItem(index int, label string) {
	a.mu.Lock()
	a.index = index
	a.itemDone = false
	ev := model.ProgressEvent{
		Kind:  model.EventItemStarted,
		Label: label,
		Index: index,
		Total: a.total,
	}
	a.mu.Unlock()

	a.emit(ev)
}

// Observe consumes one raw engine frame
func (a *Aggregator) Observe(f Frame) {
	switch f.Phase {
	case PhaseDownloading:
		a.observeDownloading(f)
	case PhaseFinished:
		a.observeFinished()
	}
}

func (a *Aggregator) observeDownloading(f Frame) {
	percent, err := parsePercent(f.Percent)
	if err != nil {
		// One bad sample must never abort a download
		a.log.WithField("percent", f.Percent).Debug("skipping malformed progress sample")
		return
	}

	a.mu.Lock()
	ev := model.ProgressEvent{
		Kind:    model.EventDownloading,
		Percent: percent,
		Rate:    f.Rate,
		ETA:     f.ETA,
		Index:   a.index,
		Total:   a.total,
	}
	a.mu.Unlock()

	a.emit(ev)
}

func (a *Aggregator) observeFinished() {
	a.mu.Lock()
	if a.itemDone {
		a.mu.Unlock()
		return
	}
	a.itemDone = true
	ev := model.ProgressEvent{
		Kind:  model.EventItemFinished,
		Index: a.index,
		Total: a.total,
	}
	if a.autoAdvance && a.total > 0 && a.index < a.total {
		a.index++
		a.itemDone = false
	}
	a.mu.Unlock()

	a.emit(ev)
}

// parsePercent converts an engine percent string such as "42.3%" into a
// float clamped to [0,100].
func parsePercent(raw string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return value, nil
}
