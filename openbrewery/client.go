// Package openbrewery is a minimal client for the Open Brewery DB listing
// API. It knows just enough to page through the full data set; records come
// back as raw maps so the bronze layer can store them verbatim.
package openbrewery

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/brewkit/brewkit"
)

// DefaultBaseURL is the public listing endpoint.
const DefaultBaseURL = "https://api.openbrewerydb.org/v1/breweries"

// DefaultPerPage is the page size used when none is configured. 200 is the
// API's documented maximum.
const DefaultPerPage = 200

// Client fetches brewery records page by page.
type Client struct {
	baseURL string
	perPage int
	httpc   *http.Client
	log     brewkit.Logger
	stats   brewkit.Statter
}

// ClientOption is a functional option type for Client.
type ClientOption func(c *Client)

// OptClientPerPage sets the number of records requested per page.
func OptClientPerPage(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// OptClientHTTP sets the http.Client used for requests.
func OptClientHTTP(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = h
	}
}

// OptClientLogger sets the logger.
func OptClientLogger(l brewkit.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// OptClientStats sets the stats collector.
func OptClientStats(s brewkit.Statter) ClientOption {
	return func(c *Client) {
		c.stats = s
	}
}

// NewClient returns a Client for the given base URL with the options applied.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		perPage: DefaultPerPage,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     brewkit.NopLogger{},
		stats:   brewkit.NopStatter{},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage fetches a single page of breweries. Pages are 1-indexed.
func (c *Client) FetchPage(page int) ([]map[string]interface{}, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing base url '%s'", c.baseURL)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.perPage))
	u.RawQuery = q.Encode()

	resp, err := c.httpc.Get(u.String())
	if err != nil {
		return nil, errors.Wrapf(err, "fetching page %d", page)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching page %d: unexpected status %s", page, resp.Status)
	}

	var records []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, errors.Wrapf(err, "decoding page %d", page)
	}
	c.stats.Count("records-fetched", int64(len(records)), 1)
	c.log.Debugf("fetched %d records from page %d", len(records), page)
	return records, nil
}

// FetchAll pages through the entire API, stopping at the first empty page,
// and returns every record seen. Any fetch error aborts the run; retrying is
// the orchestrator's job.
func (c *Client) FetchAll() ([]map[string]interface{}, error) {
	var all []map[string]interface{}
	for page := 1; ; page++ {
		records, err := c.FetchPage(page)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			c.log.Printf("no more records at page %d, total fetched: %d", page, len(all))
			break
		}
		all = append(all, records...)
		c.stats.Count("pages-fetched", 1, 1)
	}
	return all, nil
}
