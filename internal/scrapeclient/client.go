package scrapeclient

import (
	"context"
	"fmt"
	"net/url"
	"pricescraper/lib/restyutil"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const DefaultEndpoint = "http://realjoy-1-3.onrender.com/scrape"

// bodies longer than this are cut when kept on a StatusError
const maxErrorBody = 512

var tracer = otel.Tracer("pricescraper/scrapeclient")
var meter = otel.Meter("pricescraper/scrapeclient")
var requestCounter, _ = meter.Int64Counter(
	"scrape.requests",
	metric.WithDescription("scrape calls by outcome"),
)
var durationHistogram, _ = meter.Float64Histogram(
	"scrape.duration",
	metric.WithDescription("time spent waiting on the scrape service"),
	metric.WithUnit("s"),
)

type Options struct {
	// Endpoint defaults to DefaultEndpoint.
	Endpoint string
	// Timeout of zero waits forever.
	Timeout   time.Duration
	UserAgent string
	// CloudflareBypass wraps the transport for endpoints behind cloudflare's
	// bot check.
	CloudflareBypass bool
	// Output receives every request/response exchange, it may be nil.
	Output restyutil.InstrumentOutput
}

// Client calls the remote scrape service, exactly one attempt per call.
type Client struct {
	http     *resty.Client
	endpoint string
}

func NewClient(opts Options) (*Client, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid scrape endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid scrape endpoint %q: expected an http(s) url", endpoint)
	}

	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)
	restyutil.InstrumentClient(client, otel.Tracer("pricescraper/scrapeclient/http"), opts.Output)

	return &Client{
		http:     client,
		endpoint: endpoint,
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Scrape posts the date range and returns the records in the order the
// service sent them.
func (c *Client) Scrape(ctx context.Context, req Request) ([]PriceRecord, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	span.SetAttributes(
		attribute.String("scrape.arrival_date", req.ArrivalDate.String()),
		attribute.String("scrape.departure_date", req.DepartureDate.String()),
		attribute.Int("scrape.url_count", len(req.URLs)),
	)

	start := time.Now()
	records, err := c.scrape(ctx, req)
	outcome := outcomeOf(err)

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	requestCounter.Add(ctx, 1, attrs)
	durationHistogram.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	span.SetAttributes(attribute.Int("scrape.record_count", len(records)))
	return records, nil
}

func (c *Client) scrape(ctx context.Context, req Request) ([]PriceRecord, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(req).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("scrape request: %w", err)
	}

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		body := res.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, StatusError{
			Code:   res.StatusCode(),
			Status: res.Status(),
			Body:   body,
		}
	}

	return ParseRecords(res.Body())
}
