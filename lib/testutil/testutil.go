package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Exchange is what a ScrapeService saw of one request.
type Exchange struct {
	Method      string
	ContentType string
	Body        map[string]any
}

// ScrapeService is a stand-in for the remote scrape service, it answers
// every request with the same status and body.
type ScrapeService struct {
	*httptest.Server
	exchanges chan Exchange
}

func NewScrapeService(t testing.TB, status int, response string) *ScrapeService {
	t.Helper()
	svc := &ScrapeService{exchanges: make(chan Exchange, 64)}
	svc.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchange := Exchange{
			Method:      r.Method,
			ContentType: r.Header.Get("Content-Type"),
		}
		raw, err := io.ReadAll(r.Body)
		if err == nil {
			_ = json.Unmarshal(raw, &exchange.Body)
		}
		select {
		case svc.exchanges <- exchange:
		default:
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(svc.Close)
	return svc
}

// Next returns the oldest request not yet returned, failing the test if
// none arrives within a few seconds.
func (s *ScrapeService) Next(t testing.TB) Exchange {
	t.Helper()
	select {
	case exchange := <-s.exchanges:
		return exchange
	case <-time.After(5 * time.Second):
		t.Fatal("scrape service received no request")
		return Exchange{}
	}
}
