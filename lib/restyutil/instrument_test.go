package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mutex    sync.Mutex
	messages map[string]string
}

func (m *memoryOutput) Write(id string, contents string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.messages == nil {
		m.messages = map[string]string{}
	}
	m.messages[id] = contents
}

func TestInstrumentClientWritesExchanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	out := &memoryOutput{}
	client := resty.New()
	InstrumentClient(client, nil, out)

	for i := 0; i < 2; i++ {
		_, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(`{"arrivalDate":"2024-01-01"}`).
			Post(srv.URL + "/scrape")
		require.NoError(t, err)
	}

	require.Len(t, out.messages, 2)
	first := out.messages["1"]
	require.Contains(t, first, "POST "+srv.URL+"/scrape")
	require.Contains(t, first, `{"arrivalDate":"2024-01-01"}`)
	require.Contains(t, first, "418")
	require.Contains(t, first, `{"ok":false}`)
	require.Contains(t, out.messages, "2")
}

func TestInstrumentClientWithoutOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, nil, nil)

	// nothing listens on this port so the error hook fires
	_, err := client.R().Get("http://127.0.0.1:1/unreachable")
	require.Error(t, err)
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exchanges")
	require.NoError(t, os.MkdirAll(dir, 0777))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.txt"), []byte("old"), 0600))

	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	out.Write("7", "hello")

	_, err = os.Stat(filepath.Join(dir, "stale.txt"))
	require.True(t, os.IsNotExist(err))

	contents, err := os.ReadFile(filepath.Join(dir, "7.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}
