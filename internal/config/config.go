package config

import (
	"fmt"
	"net/url"
	"pricescraper/internal/scrapeclient"
	"pricescraper/lib/configutil"
	"pricescraper/lib/telemetry"
	"time"
)

const DefaultName = "pricescraper.json5"

type Config struct {
	// Endpoint is the scrape service url.
	Endpoint string `json:"endpoint"`
	// Timeout is a duration string, empty waits forever.
	Timeout string `json:"timeout"`
	// Timezone decides what "today" is, empty means the local zone.
	Timezone string `json:"timezone"`
	// URLs overrides the listings scraped by the service.
	URLs             []string `json:"urls"`
	CloudflareBypass bool     `json:"cloudflare_bypass"`
	UserAgent        string   `json:"user_agent"`
	// DumpDir receives every http exchange as a text file when set.
	DumpDir   string           `json:"dump_dir"`
	Telemetry telemetry.Config `json:"telemetry"`
}

func Defaults() Config {
	return Config{
		Endpoint: scrapeclient.DefaultEndpoint,
	}
}

// Load reads path over the defaults, a missing file is fine.
func Load(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, Defaults())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return timeout, nil
}

func (c Config) Validate() error {
	endpoint, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: expected an http(s) url", c.Endpoint)
	}
	_, err = c.TimeoutDuration()
	if err != nil {
		return err
	}
	for _, listing := range c.URLs {
		if _, err := url.ParseRequestURI(listing); err != nil {
			return fmt.Errorf("invalid listing url %q: %w", listing, err)
		}
	}
	return nil
}

// ClientOptions maps the config onto scrape client options, the dump
// output is left for the caller to attach.
func (c Config) ClientOptions() (scrapeclient.Options, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return scrapeclient.Options{}, err
	}
	return scrapeclient.Options{
		Endpoint:         c.Endpoint,
		Timeout:          timeout,
		UserAgent:        c.UserAgent,
		CloudflareBypass: c.CloudflareBypass,
	}, nil
}
