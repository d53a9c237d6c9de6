package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/metascore-lookup-service/internal/catalog"
	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
	"github.com/preston-bernstein/metascore-lookup-service/internal/metrics"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers"
)

const (
	defaultInterval = time.Hour
	defaultMaxPages = 200
	readyFailures   = 3
)

// CatalogWriter installs a freshly ingested catalog.
type CatalogWriter interface {
	ReplaceEntries(entries []domaingames.RawEntry) catalog.BuildResult
	Size() int
}

// Poller pages through the source on an interval and swaps each result into the catalog.
type Poller struct {
	source   providers.PageSource
	writer   CatalogWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	maxPages int
	now      func() time.Time

	refreshMu sync.Mutex

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastDuration        time.Duration
	Records             int
	Pages               int
	Truncated           bool
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// Result describes one refresh cycle.
type Result struct {
	Pages      int    `json:"pages"`
	Entries    int    `json:"entries"`
	Records    int    `json:"records"`
	Keys       int    `json:"keys"`
	Skipped    int    `json:"skipped"`
	Truncated  bool   `json:"truncated"`
	Installed  bool   `json:"installed"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"durationMs"`
}

// New constructs a Poller with sane defaults.
func New(source providers.PageSource, writer CatalogWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, maxPages int) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Poller{
		source:   source,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		maxPages: maxPages,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start runs one refresh cycle synchronously, so the catalog is populated
// when Start returns, then keeps refreshing on the interval until the context
// is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
	p.Refresh(ctx)

	p.ticker = time.NewTicker(p.interval)
	go func() {
		defer close(p.exited)
		defer p.ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop and waits for it to exit or for ctx to expire.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh runs one ingest-and-swap cycle. Cycles never overlap; a concurrent
// caller waits for the running cycle and then runs its own.
func (p *Poller) Refresh(ctx context.Context) Result {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := p.now()
	began := time.Now()
	p.recordAttempt(start)

	run := p.collect(ctx)
	res := Result{
		Pages:     run.pages,
		Entries:   len(run.entries),
		Truncated: run.err != nil || run.capped,
	}
	if run.err != nil {
		res.Error = run.err.Error()
	}

	// A failed first page taught us nothing; keep serving what we have.
	keepCurrent := run.err != nil && len(run.entries) == 0 && p.writer != nil && p.writer.Size() > 0
	if !keepCurrent && p.writer != nil {
		built := p.writer.ReplaceEntries(run.entries)
		res.Installed = true
		res.Records = built.Records
		res.Keys = built.Keys
		res.Skipped = built.Skipped
	}

	elapsed := time.Since(began)
	res.DurationMS = elapsed.Milliseconds()
	p.metrics.RecordRefreshCycle(elapsed, run.pages, run.err)

	if run.err != nil && len(run.entries) == 0 {
		p.recordFailure(run.err, elapsed)
		logging.Error(p.logger, "catalog refresh failed", run.err,
			logging.FieldPages, run.pages,
			"kept_previous", keepCurrent,
			logging.FieldDurationMS, res.DurationMS,
		)
		return res
	}

	p.recordSuccess(start, elapsed, res, run.err)
	if res.Truncated {
		logging.Warn(p.logger, "catalog refreshed with truncated listing",
			logging.FieldCount, res.Records,
			logging.FieldKeys, res.Keys,
			logging.FieldPages, res.Pages,
			logging.FieldSkipped, res.Skipped,
			"error", res.Error,
			logging.FieldDurationMS, res.DurationMS,
		)
		return res
	}
	logging.Info(p.logger, "catalog refreshed",
		logging.FieldCount, res.Records,
		logging.FieldKeys, res.Keys,
		logging.FieldPages, res.Pages,
		logging.FieldSkipped, res.Skipped,
		logging.FieldDurationMS, res.DurationMS,
	)
	return res
}

type pageRun struct {
	entries []domaingames.RawEntry
	pages   int
	err     error
	capped  bool
}

// collect reads pages until one comes back empty. A fetch error ends the
// listing early; whatever was gathered before it is still returned.
func (p *Poller) collect(ctx context.Context) pageRun {
	var run pageRun
	if p.source == nil {
		run.err = providers.ErrProviderUnavailable
		return run
	}

	for page := 0; page < p.maxPages; page++ {
		entries, err := p.source.FetchPage(ctx, page)
		if err != nil {
			logging.Warn(p.logger, "page fetch failed, ending pagination",
				logging.FieldPage, page,
				"error", err,
			)
			run.err = err
			return run
		}
		if len(entries) == 0 {
			return run
		}
		logging.Debug(p.logger, "page fetched", logging.FieldPage, page, logging.FieldCount, len(entries))
		run.entries = append(run.entries, entries...)
		run.pages++
	}

	run.capped = true
	logging.Warn(p.logger, "page limit reached", logging.FieldPages, p.maxPages)
	return run
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, elapsed time.Duration, res Result, pageErr error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	if pageErr != nil {
		p.status.LastError = pageErr.Error()
	}
	p.status.LastSuccess = at
	p.status.LastDuration = elapsed
	p.status.Records = res.Records
	p.status.Pages = res.Pages
	p.status.Truncated = res.Truncated
}

func (p *Poller) recordFailure(err error, elapsed time.Duration) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastDuration = elapsed
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
