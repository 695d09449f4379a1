package telemetry

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPIPrefixesIds(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("scrapeui", rec)

	scoped.ReportBroken("scrape", errors.New("boom"))
	scoped.ReportWarning("scrape-stale", 3)
	scoped.ReportCount("inflight", 2)

	broken := rec.Reports(KindBroken)
	require.Len(t, broken, 1)
	require.Equal(t, "scrapeui: scrape", broken[0].ID)
	require.EqualError(t, broken[0].Params[0].(error), "boom")

	require.Equal(t, "scrapeui: scrape-stale", rec.Reports(KindWarning)[0].ID)
	require.Equal(t, int64(2), rec.Reports(KindCount)[0].Count)
	require.Empty(t, rec.Reports(KindDebug))
}

func TestSlogAPIWritesErrorText(t *testing.T) {
	buff := &bytes.Buffer{}
	api := NewSlogAPI(slog.New(slog.NewTextHandler(buff, &slog.HandlerOptions{Level: slog.LevelDebug})))

	api.ReportBroken("scrape", errors.New("status 500"))
	api.ReportDebug("discarded", "seq", 4)

	out := buff.String()
	require.Contains(t, out, "broken component")
	require.Contains(t, out, "id=scrape")
	require.Contains(t, out, `params.0="status 500"`)
	require.Contains(t, out, "msg=discarded")
}
