package scrapeui

import (
	"pricescraper/internal/scrapeclient"
	"pricescraper/lib/calendar"
)

// Event is something that happened to the component, either user input or
// the completion of a scrape.
type Event interface {
	isEvent()
}

type ArrivalSelected struct {
	Date calendar.Date
}

type DepartureSelected struct {
	Date calendar.Date
}

// ScrapeRequested is the button press.
type ScrapeRequested struct{}

type ScrapeSucceeded struct {
	Seq     uint64
	Records []scrapeclient.PriceRecord
}

type ScrapeFailed struct {
	Seq uint64
	Err error
}

func (ArrivalSelected) isEvent()   {}
func (DepartureSelected) isEvent() {}
func (ScrapeRequested) isEvent()   {}
func (ScrapeSucceeded) isEvent()   {}
func (ScrapeFailed) isEvent()      {}

// Effect is work the reducer asks the component to do, nil means nothing.
type Effect interface {
	isEffect()
}

// IssueScrape asks for one outbound request tagged with Seq.
type IssueScrape struct {
	Seq           uint64
	ArrivalDate   calendar.Date
	DepartureDate calendar.Date
}

// DiscardStale reports that a completion arrived for a scrape that is no
// longer the latest one and was ignored.
type DiscardStale struct {
	Seq    uint64
	Latest uint64
}

// ReportFailure carries the underlying error of the latest scrape to the
// diagnostics channel.
type ReportFailure struct {
	Seq uint64
	Err error
}

func (IssueScrape) isEffect()   {}
func (DiscardStale) isEffect()  {}
func (ReportFailure) isEffect() {}

// Reduce is the whole transition table of the component, it never performs IO.
func Reduce(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case ArrivalSelected:
		s.ArrivalDate = ev.Date
		return s, nil
	case DepartureSelected:
		s.DepartureDate = ev.Date
		return s, nil

	case ScrapeRequested:
		s.Seq++
		s.Loading = true
		s.ErrorMessage = ""
		s.Results = nil
		return s, IssueScrape{
			Seq:           s.Seq,
			ArrivalDate:   s.ArrivalDate,
			DepartureDate: s.DepartureDate,
		}

	case ScrapeSucceeded:
		if ev.Seq != s.Seq {
			return s, DiscardStale{Seq: ev.Seq, Latest: s.Seq}
		}
		s.Loading = false
		s.ErrorMessage = ""
		s.Results = ev.Records
		return s, nil

	case ScrapeFailed:
		if ev.Seq != s.Seq {
			return s, DiscardStale{Seq: ev.Seq, Latest: s.Seq}
		}
		s.Loading = false
		s.ErrorMessage = FailureMessage
		s.Results = nil
		return s, ReportFailure{Seq: ev.Seq, Err: ev.Err}
	}

	return s, nil
}
