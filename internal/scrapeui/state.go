package scrapeui

import (
	"pricescraper/internal/scrapeclient"
	"pricescraper/lib/calendar"
)

// FailureMessage is the only error text the user ever sees.
const FailureMessage = "Failed to fetch data. Please try again later."

const (
	LabelIdle    = "Start Scraping"
	LabelLoading = "Scraping..."
)

// State is everything the component renders from. It is a plain value,
// every transition produces a new one.
type State struct {
	ArrivalDate   calendar.Date
	DepartureDate calendar.Date
	Results       []scrapeclient.PriceRecord
	Loading       bool
	// ErrorMessage is empty when there is no error.
	ErrorMessage string
	// Seq is the sequence number of the latest issued scrape, 0 before the first.
	Seq uint64
}

// NewState starts with both dates on `today`.
func NewState(today calendar.Date) State {
	return State{
		ArrivalDate:   today,
		DepartureDate: today,
	}
}

func (s State) HasError() bool {
	return s.ErrorMessage != ""
}

func (s State) ButtonLabel() string {
	if s.Loading {
		return LabelLoading
	}
	return LabelIdle
}

func (s State) ButtonDisabled() bool {
	return s.Loading
}

// View is the visual state, exactly one applies at a time.
type View int

const (
	// ViewIdle shows only the inputs and the button, this includes a
	// successful scrape that returned no records.
	ViewIdle View = iota
	ViewLoading
	ViewError
	ViewSuccess
)

func (v View) String() string {
	switch v {
	case ViewIdle:
		return "idle"
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewSuccess:
		return "success"
	}
	return "unknown"
}

func (s State) View() View {
	switch {
	case s.Loading:
		return ViewLoading
	case s.HasError():
		return ViewError
	case len(s.Results) > 0:
		return ViewSuccess
	default:
		return ViewIdle
	}
}

// clone copies the results so a published State never aliases the
// component's own slice.
func (s State) clone() State {
	if s.Results != nil {
		s.Results = append([]scrapeclient.PriceRecord(nil), s.Results...)
	}
	return s
}
