// Package pricefeed fetches current and previous session quotes from an
// HTTP JSON endpoint.
//
// The endpoint is a URL template containing a {symbol} parameter, each
// response is a JSON document from which prices are extracted with jsonpath
// expressions.
package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ErrUnavailable is returned when no quote at all could be fetched.
var ErrUnavailable = errors.New("price feed unavailable")

const (
	DefaultPricePath    = "$.price"
	DefaultPreviousPath = "$.previousClose"
)

// Quotes are the prices of one session.
type Quotes struct {
	Day      date.Date       `json:"day"`
	Current  snowball.Prices `json:"current"`
	Previous snowball.Prices `json:"previous,omitempty"`
}

// Config configures a Client. Zero values are defaults.
type Config struct {
	// URL is the quote endpoint, with a {symbol} path parameter.
	URL string
	// PricePath and PreviousPath are jsonpath expressions.
	PricePath    string
	PreviousPath string
	// RequestsPerSecond paces the requests, 5 by default.
	RequestsPerSecond float64
	// Timeout of each request, 10s by default.
	Timeout time.Duration
	// CacheDir enables the daily disk cache when not empty.
	CacheDir string
}

// Client fetches quotes.
type Client struct {
	http     *resty.Client
	limiter  *rate.Limiter
	url      string
	price    string
	previous string
}

// New returns a client for cfg.
func New(cfg Config) *Client {
	if cfg.PricePath == "" {
		cfg.PricePath = DefaultPricePath
	}
	if cfg.PreviousPath == "" {
		cfg.PreviousPath = DefaultPreviousPath
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Accept", "application/json")
	if cfg.CacheDir != "" {
		client.SetTransport(&diskCache{base: http.DefaultTransport, dir: cfg.CacheDir})
	}
	return &Client{
		http:     client,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		url:      cfg.URL,
		price:    cfg.PricePath,
		previous: cfg.PreviousPath,
	}
}

// Fetch gets the quotes of all symbols. Failing symbols are skipped and
// reported in the returned error together with the partial quotes. When
// nothing could be fetched the error wraps ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, symbols []string) (Quotes, error) {
	q := Quotes{Day: date.Today(), Current: make(snowball.Prices), Previous: make(snowball.Prices)}
	if c.url == "" {
		return q, fmt.Errorf("no quote url configured: %w", ErrUnavailable)
	}
	var errs error
	for _, symbol := range symbols {
		if err := c.limiter.Wait(ctx); err != nil {
			errs = errors.Join(errs, err)
			break
		}
		price, previous, err := c.quote(ctx, symbol)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("quote %q: %w", symbol, err))
			continue
		}
		q.Current[symbol] = price
		if previous > 0 {
			q.Previous[symbol] = previous
		}
	}
	if len(q.Current) == 0 && len(symbols) > 0 {
		return q, fmt.Errorf("%w: %w", ErrUnavailable, errs)
	}
	return q, errs
}

// quote fetches one symbol. previous is 0 when the response has none.
func (c *Client) quote(ctx context.Context, symbol string) (price, previous float64, err error) {
	var jobj any
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetResult(&jobj).
		ForceContentType("application/json").
		Get(c.url)
	if err != nil {
		return 0, 0, err
	}
	if resp.IsError() {
		return 0, 0, fmt.Errorf("cannot http GET %v: %v", resp.Request.URL, resp.Status())
	}
	price, err = extract(c.price, jobj)
	if err != nil {
		return 0, 0, err
	}
	if price <= 0 {
		return 0, 0, fmt.Errorf("non positive price %v", price)
	}
	previous, err = extract(c.previous, jobj)
	if err != nil {
		log.Printf("no previous session price for %q: %v", symbol, err)
		previous = 0
	}
	return price, previous, nil
}

// extract evaluates path on jobj and reads a number, possibly written as a
// string with a decimal comma.
func extract(path string, jobj any) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer, or
	// a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		s := strings.ReplaceAll(strings.ReplaceAll(v, ",", "."), " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid value %q at %q: %w", v, path, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("value at %q is not a number: %v", path, jval)
}
