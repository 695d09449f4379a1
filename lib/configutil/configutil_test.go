package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Endpoint string   `json:"endpoint"`
	Timeout  string   `json:"timeout"`
	URLs     []string `json:"urls"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func TestLocalName(t *testing.T) {
	require.Equal(t, filepath.Join("conf", "app.local.json5"), LocalName(filepath.Join("conf", "app.json5")))
	require.Equal(t, "app.local", LocalName("app"))
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "pricescraper.json5")

	writeFile(t, name, `{
		// comments are allowed
		endpoint: "http://a.test/scrape",
		timeout: "10s",
	}`)
	writeFile(t, filepath.Join(dir, "pricescraper.local.json5"), `{
		endpoint: "http://localhost:8080/scrape",
		urls: ["https://airbnb.test/rooms/1"],
	}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		Endpoint: "http://localhost:8080/scrape",
		Timeout:  "10s",
		URLs:     []string{"https://airbnb.test/rooms/1"},
	}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.json5")
	writeFile(t, name, `{ endpoint: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigWithDefaults(t *testing.T) {
	defaults := testConfig{Endpoint: "http://default.test/scrape", Timeout: "30s"}

	cfg, err := ReadConfigWithDefaults(filepath.Join(t.TempDir(), "missing.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	name := filepath.Join(t.TempDir(), "partial.json5")
	writeFile(t, name, `{ timeout: "5s" }`)
	cfg, err = ReadConfigWithDefaults(name, defaults)
	require.NoError(t, err)
	require.Equal(t, "http://default.test/scrape", cfg.Endpoint)
	require.Equal(t, "5s", cfg.Timeout)
}

func TestFindRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	writeFile(t, filepath.Join(root, "pricescraper.json5"), `{}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	found, err := FindRecursively("pricescraper.json5")
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(filepath.Join(root, "pricescraper.json5"))
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	require.Equal(t, expected, actual)

	_, err = FindRecursively("definitely-not-here-1b2c.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}
