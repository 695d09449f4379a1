package scrapeui

import (
	"errors"
	"pricescraper/internal/scrapeclient"
	"pricescraper/lib/calendar"
	"testing"

	"github.com/stretchr/testify/require"
)

var today = calendar.MustParse("2024-06-15")

var someRecords = []scrapeclient.PriceRecord{
	{URL: "http://a.test", Price: "$100"},
	{URL: "http://b.test", Price: "250"},
}

func TestNewStateDefaultsToToday(t *testing.T) {
	s := NewState(today)
	require.Equal(t, today, s.ArrivalDate)
	require.Equal(t, today, s.DepartureDate)
	require.False(t, s.Loading)
	require.False(t, s.HasError())
	require.Empty(t, s.Results)
	require.Equal(t, ViewIdle, s.View())
	require.Equal(t, LabelIdle, s.ButtonLabel())
	require.False(t, s.ButtonDisabled())
}

func TestSelectDatesWithoutValidation(t *testing.T) {
	s := NewState(today)

	s, effect := Reduce(s, ArrivalSelected{Date: calendar.MustParse("2024-07-10")})
	require.Nil(t, effect)
	s, effect = Reduce(s, DepartureSelected{Date: calendar.MustParse("2024-07-01")})
	require.Nil(t, effect)

	// departure before arrival is accepted as is
	require.Equal(t, calendar.MustParse("2024-07-10"), s.ArrivalDate)
	require.Equal(t, calendar.MustParse("2024-07-01"), s.DepartureDate)
}

func TestScrapeRequestedClearsPreviousOutcome(t *testing.T) {
	testCases := []struct {
		name  string
		prior State
	}{
		{name: "after success", prior: State{ArrivalDate: today, DepartureDate: today, Results: someRecords, Seq: 1}},
		{name: "after failure", prior: State{ArrivalDate: today, DepartureDate: today, ErrorMessage: FailureMessage, Seq: 3}},
		{name: "while loading", prior: State{ArrivalDate: today, DepartureDate: today, Loading: true, Seq: 4}},
		{name: "first press", prior: NewState(today)},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			s, effect := Reduce(test.prior, ScrapeRequested{})
			require.True(t, s.Loading)
			require.Empty(t, s.ErrorMessage)
			require.Empty(t, s.Results)
			require.Equal(t, test.prior.Seq+1, s.Seq)
			require.Equal(t, ViewLoading, s.View())
			require.Equal(t, LabelLoading, s.ButtonLabel())
			require.True(t, s.ButtonDisabled())

			require.Equal(t, IssueScrape{
				Seq:           s.Seq,
				ArrivalDate:   test.prior.ArrivalDate,
				DepartureDate: test.prior.DepartureDate,
			}, effect)
		})
	}
}

func TestScrapeCompletion(t *testing.T) {
	boom := errors.New("status 500")

	loading, _ := Reduce(NewState(today), ScrapeRequested{})

	succeeded, effect := Reduce(loading, ScrapeSucceeded{Seq: loading.Seq, Records: someRecords})
	require.Nil(t, effect)
	require.False(t, succeeded.Loading)
	require.Equal(t, someRecords, succeeded.Results)
	require.Equal(t, ViewSuccess, succeeded.View())

	empty, effect := Reduce(loading, ScrapeSucceeded{Seq: loading.Seq, Records: nil})
	require.Nil(t, effect)
	require.False(t, empty.Loading)
	require.False(t, empty.HasError())
	require.Equal(t, ViewIdle, empty.View())

	failed, effect := Reduce(loading, ScrapeFailed{Seq: loading.Seq, Err: boom})
	require.Equal(t, ReportFailure{Seq: loading.Seq, Err: boom}, effect)
	require.False(t, failed.Loading)
	require.Equal(t, FailureMessage, failed.ErrorMessage)
	require.Empty(t, failed.Results)
	require.Equal(t, ViewError, failed.View())
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	s := NewState(today)
	s, _ = Reduce(s, ScrapeRequested{})
	s, _ = Reduce(s, ScrapeRequested{})
	require.Equal(t, uint64(2), s.Seq)

	next, effect := Reduce(s, ScrapeSucceeded{Seq: 1, Records: someRecords})
	require.Equal(t, DiscardStale{Seq: 1, Latest: 2}, effect)
	require.Equal(t, s, next)

	next, effect = Reduce(s, ScrapeFailed{Seq: 1, Err: errors.New("late")})
	require.Equal(t, DiscardStale{Seq: 1, Latest: 2}, effect)
	require.Equal(t, s, next)
	require.True(t, next.Loading)

	final, effect := Reduce(s, ScrapeSucceeded{Seq: 2, Records: someRecords[:1]})
	require.Nil(t, effect)
	require.False(t, final.Loading)
	require.Equal(t, someRecords[:1], final.Results)
}

func TestErrorWinsOverResultsInView(t *testing.T) {
	s := State{ErrorMessage: FailureMessage, Results: someRecords}
	require.Equal(t, ViewError, s.View())

	s.Loading = true
	require.Equal(t, ViewLoading, s.View())
}

func TestViewString(t *testing.T) {
	require.Equal(t, "idle", ViewIdle.String())
	require.Equal(t, "loading", ViewLoading.String())
	require.Equal(t, "error", ViewError.String())
	require.Equal(t, "success", ViewSuccess.String())
	require.Equal(t, "unknown", View(42).String())
}
