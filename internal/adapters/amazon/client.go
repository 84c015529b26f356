// Package amazon is a signed PA-API v5 GetItems client for the importer
package amazon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "boardstore/internal/platform/errors"
	"boardstore/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second

	// defaultRetryAfter is the backoff hint attached to throttle errors
	// when the remote does not send a Retry-After header
	defaultRetryAfter = 2 * time.Second
)

// DefaultResources covers the fields the catalog normalizes
var DefaultResources = []string{
	"ItemInfo.Title",
	"ItemInfo.ByLineInfo",
	"Images.Primary.Small",
	"Images.Primary.Medium",
	"Images.Primary.Large",
	"Images.Variants.Large",
	"Offers.Listings.Price",
	"Offers.Listings.SavingBasis",
	"Offers.Listings.Availability.Type",
	"Offers.Listings.Availability.Message",
	"CustomerReviews.Count",
	"CustomerReviews.StarRating",
}

// Config holds one marketplace's credentials and endpoint.
// Never log this struct or any of its fields.
type Config struct {
	AccessKey  string
	SecretKey  string
	PartnerTag string

	// Host is the signing host, e.g. webservices.amazon.com
	Host string
	// Region is the signing region, e.g. us-east-1
	Region string
	// Marketplace is the storefront domain, e.g. www.amazon.com
	Marketplace string

	// BaseURL overrides https://Host when set; tests point it at a stub
	BaseURL string

	Timeout time.Duration
}

// Client issues signed GetItems calls. Exactly one network attempt per
// call; retry and short-circuit policy belongs to the caller.
type Client struct {
	http *http.Client
	cfg  Config
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client with sane defaults
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.Host
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  *logger.Named("amazon"),
		now:  time.Now,
	}
}

// GetItems fetches one identifier and classifies every failure into the
// shared taxonomy. A syntactically valid response with zero items is a
// domain failure, not a transport one.
func (c *Client) GetItems(ctx context.Context, asin string, resources []string) (*Item, error) {
	if len(resources) == 0 {
		resources = DefaultResources
	}
	payload, err := json.Marshal(getItemsRequest{
		ItemIds:     []string{asin},
		Resources:   resources,
		PartnerTag:  c.cfg.PartnerTag,
		PartnerType: "Associates",
		Marketplace: c.cfg.Marketplace,
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInternal, "amazon marshal request failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+getItemsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInternal, "amazon new request failed")
	}
	req.Host = c.cfg.Host
	sign(req, c.cfg.AccessKey, c.cfg.SecretKey, c.cfg.Region, payload, c.now())

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		cerr := classifyTransport(err)
		c.log.Warn().
			Str("asin", asin).
			Dur("latency", lat).
			Uint16("error_code", uint16(perr.CodeOf(cerr))).
			Err(err).
			Msg("amazon transport error")
		return nil, cerr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNetwork, "amazon read response failed")
	}

	item, cerr := classifyResponse(resp.StatusCode, body, retryAfterHint(resp.Header))
	if cerr != nil {
		c.log.Warn().
			Str("asin", asin).
			Int("status", resp.StatusCode).
			Dur("latency", lat).
			Uint16("error_code", uint16(perr.CodeOf(cerr))).
			Msg("amazon getitems failed")
		return nil, cerr
	}
	c.log.Debug().
		Str("asin", asin).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("amazon getitems ok")
	return item, nil
}

// classifyTransport maps local send failures: deadline vs connection
func classifyTransport(err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return perr.Timeoutf("amazon getitems deadline exceeded")
	case errors.As(err, &ne) && ne.Timeout():
		return perr.Timeoutf("amazon getitems timed out")
	default:
		return perr.Networkf("amazon connection failed: %v", err)
	}
}

// retryAfterHint parses an integer-seconds Retry-After response header,
// falling back to defaultRetryAfter when absent or malformed
func retryAfterHint(h http.Header) time.Duration {
	if secs, err := strconv.Atoi(h.Get("Retry-After")); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultRetryAfter
}

// classifyResponse maps the remote's status and body onto the taxonomy.
// Throttle errors carry retryAfter so the caller can surface a backoff hint.
func classifyResponse(status int, body []byte, retryAfter time.Duration) (*Item, error) {
	var out getItemsResponse
	decodeErr := json.Unmarshal(body, &out)

	if status == http.StatusTooManyRequests {
		return nil, perr.WithRetryAfter(perr.Throttledf("amazon rate limited"), retryAfter)
	}
	if decodeErr == nil && len(out.Errors) > 0 {
		return nil, classifyRemote(out.Errors[0], retryAfter)
	}
	if status < 200 || status > 299 {
		return nil, perr.Remotef("amazon unexpected status %d", status)
	}
	if decodeErr != nil {
		return nil, perr.Remotef("amazon unparseable response: %v", decodeErr)
	}
	if out.ItemsResult == nil || len(out.ItemsResult.Items) == 0 {
		return nil, perr.ItemNotAccessiblef("amazon returned no items")
	}

	raw := out.ItemsResult.Items[0]
	var it Item
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, perr.Remotef("amazon item decode failed: %v", err)
	}
	it.Raw = raw
	return &it, nil
}

func classifyRemote(e remoteError, retryAfter time.Duration) error {
	switch {
	case e.Code == "TooManyRequests":
		return perr.WithRetryAfter(perr.Throttledf("amazon throttled: %s", e.Message), retryAfter)
	case strings.HasPrefix(e.Code, "InvalidParameter"):
		return perr.InvalidParamf("amazon rejected parameter: %s", e.Message)
	case e.Code == "ItemNotAccessible":
		return perr.ItemNotAccessiblef("amazon item not accessible: %s", e.Message)
	default:
		return perr.Remotef("amazon error %s: %s", e.Code, e.Message)
	}
}
