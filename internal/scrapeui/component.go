package scrapeui

import (
	"context"
	"errors"
	"fmt"
	"pricescraper/internal/components/telemetry"
	"pricescraper/internal/scrapeclient"
	"pricescraper/lib/calendar"
	"sync"
	"sync/atomic"
)

const (
	report_scrape          = "scrape"
	report_scrape_stale    = "scrape-stale"
	report_scrape_inflight = "scrape-inflight"
)

var ErrStopped = errors.New("component is not running")
var ErrAlreadyRunning = errors.New("component is already running")

// note: fault injection point
type Scraper interface {
	Scrape(ctx context.Context, req scrapeclient.Request) ([]scrapeclient.PriceRecord, error)
}

type Options struct {
	// Today is the initial value of both dates.
	Today calendar.Date
	// URLs is sent along with every scrape as the listing override.
	URLs []string
	// Tel defaults to slog.
	Tel telemetry.API
	// Observer is called on the event loop after every state change, it must
	// not call back into the component synchronously.
	Observer func(State)
}

// Component owns a State and applies every event to it on one goroutine, the
// one started by Run. Everything else only sends events.
type Component struct {
	scraper  Scraper
	urls     []string
	tel      telemetry.API
	observer func(State)

	events   chan Event
	done     chan struct{}
	running  atomic.Bool
	inflight sync.WaitGroup
	pending  atomic.Int64

	// state is only touched by the event loop
	state State

	mutex    sync.Mutex
	snapshot State
	changed  chan struct{}
}

func New(scraper Scraper, opts Options) *Component {
	tel := opts.Tel
	if tel == nil {
		tel = telemetry.NewSlogAPI(nil)
	}
	initial := NewState(opts.Today)
	return &Component{
		scraper:  scraper,
		urls:     opts.URLs,
		tel:      telemetry.NewScopedAPI("scrapeui", tel),
		observer: opts.Observer,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
		state:    initial,
		snapshot: initial,
		changed:  make(chan struct{}),
	}
}

// Run processes events until ctx is done. Outstanding scrapes see ctx
// cancelled and Run waits for them to return.
func (c *Component) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	for {
		select {
		case <-ctx.Done():
			close(c.done)
			c.inflight.Wait()
			return nil
		case ev := <-c.events:
			c.apply(ctx, ev)
		}
	}
}

func (c *Component) SelectArrivalDate(date calendar.Date) {
	c.dispatch(ArrivalSelected{Date: date})
}

func (c *Component) SelectDepartureDate(date calendar.Date) {
	c.dispatch(DepartureSelected{Date: date})
}

// StartScrape is the button press. It does not wait for the response and
// does not guard against a scrape already being in flight.
func (c *Component) StartScrape() {
	c.dispatch(ScrapeRequested{})
}

// State returns the latest published state.
func (c *Component) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.snapshot.clone()
}

// WaitFor blocks until cond holds for the published state.
func (c *Component) WaitFor(ctx context.Context, cond func(State) bool) (State, error) {
	for {
		c.mutex.Lock()
		current := c.snapshot.clone()
		changed := c.changed
		c.mutex.Unlock()

		if cond(current) {
			return current, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return current, ctx.Err()
		case <-c.done:
			return current, ErrStopped
		}
	}
}

// Settled reports whether at least one scrape was issued and the latest one
// has completed.
func Settled(s State) bool {
	return s.Seq > 0 && !s.Loading
}

func (c *Component) dispatch(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Component) apply(ctx context.Context, ev Event) {
	next, effect := Reduce(c.state, ev)
	c.state = next

	switch effect := effect.(type) {
	case IssueScrape:
		c.issue(ctx, effect)
	case ReportFailure:
		c.tel.ReportBroken(report_scrape, effect.Err, effect.Seq)
	case DiscardStale:
		c.tel.ReportDebug(report_scrape_stale, effect.Seq, effect.Latest)
		return
	}

	c.publish()
}

// publish runs the observer before waking WaitFor, so a waiter that sees a
// state knows it has already been rendered.
func (c *Component) publish() {
	published := c.state.clone()

	if c.observer != nil {
		c.observer(published.clone())
	}

	c.mutex.Lock()
	c.snapshot = published
	close(c.changed)
	c.changed = make(chan struct{})
	c.mutex.Unlock()
}

func (c *Component) issue(ctx context.Context, effect IssueScrape) {
	req := scrapeclient.Request{
		ArrivalDate:   effect.ArrivalDate,
		DepartureDate: effect.DepartureDate,
		URLs:          c.urls,
	}

	c.inflight.Add(1)
	c.tel.ReportCount(report_scrape_inflight, c.pending.Add(1))

	go func() {
		defer c.inflight.Done()

		// whatever happens below, exactly one completion goes back to the
		// loop so Loading is always cleared
		var result Event = ScrapeFailed{Seq: effect.Seq, Err: errors.New("scrape did not complete")}
		defer func() {
			if r := recover(); r != nil {
				result = ScrapeFailed{Seq: effect.Seq, Err: fmt.Errorf("scrape panicked: %v", r)}
			}
			c.pending.Add(-1)
			c.dispatch(result)
		}()

		records, err := c.scraper.Scrape(ctx, req)
		if err != nil {
			result = ScrapeFailed{Seq: effect.Seq, Err: err}
			return
		}
		result = ScrapeSucceeded{Seq: effect.Seq, Records: records}
	}()
}
