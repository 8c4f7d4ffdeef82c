package vehicles

import (
	"cmp"
	"context"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vehiclelookup/pkg/integrations"
	"github.com/matzehuels/vehiclelookup/pkg/observability"
)

// DefaultBaseURL is the production vehicle lookup endpoint.
const DefaultBaseURL = "https://new.api.nexusautotransport.com/api/vehicles"

// Client provides access to the vehicle lookup API.
//
// Each lookup issues exactly one GET request, unwraps the "data" field of the
// response envelope, reshapes and sorts it. Lookups keep no state between
// calls; the client is safe for concurrent use.
type Client struct {
	*integrations.Client
	logger *log.Logger
}

// NewClient creates a vehicle lookup client.
//
// Parameters:
//   - baseURL: API endpoint; "" selects [DefaultBaseURL]
//   - timeout: per-request timeout; 0 disables it
//   - logger: receives the original error of failed lookups; nil uses log.Default()
//
// Requests carry Accept and Content-Type headers set to application/json.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		Client: integrations.NewClient(baseURL, timeout, integrations.JSONHeaders()),
		logger: logger,
	}
}

// Years returns the available model years, most recent first.
//
// A response without a "data" field yields an empty slice. Any failure is
// logged and reported as [ErrFetchYears].
func (c *Client) Years(ctx context.Context) ([]int, error) {
	start := time.Now()
	years, err := c.fetchYears(ctx)
	observability.Lookup().OnLookupComplete(ctx, ResourceYears, len(years), time.Since(start), err)
	if err != nil {
		c.logger.Error("Error fetching years", "err", err)
		return nil, &FetchError{Resource: ResourceYears}
	}
	return years, nil
}

// Makes returns the make names available for year, sorted ascending.
//
// year is sent as-is; no range check is made. Entries without a name show up
// as "" after the named ones rather than being dropped. Any failure is
// logged and reported as [ErrFetchMakes].
func (c *Client) Makes(ctx context.Context, year int) ([]string, error) {
	start := time.Now()
	makes, err := c.fetchMakes(ctx, year)
	observability.Lookup().OnLookupComplete(ctx, ResourceMakes, len(makes), time.Since(start), err)
	if err != nil {
		c.logger.Error("Error fetching makes", "year", year, "err", err)
		return nil, &FetchError{Resource: ResourceMakes}
	}
	return makes, nil
}

// Models returns the model names for a year and make, sorted ascending.
//
// makeName is passed through verbatim and is expected to be a name returned by
// [Client.Makes]. Any failure is logged and reported as [ErrFetchModels].
func (c *Client) Models(ctx context.Context, year int, makeName string) ([]string, error) {
	start := time.Now()
	models, err := c.fetchModels(ctx, year, makeName)
	observability.Lookup().OnLookupComplete(ctx, ResourceModels, len(models), time.Since(start), err)
	if err != nil {
		c.logger.Error("Error fetching models", "year", year, "make", makeName, "err", err)
		return nil, &FetchError{Resource: ResourceModels}
	}
	return models, nil
}

func (c *Client) fetchYears(ctx context.Context) ([]int, error) {
	var body envelope[int]
	if err := c.Get(ctx, "/years", nil, &body); err != nil {
		return nil, err
	}
	years := body.items()
	slices.SortFunc(years, func(a, b int) int { return cmp.Compare(b, a) })
	return years, nil
}

func (c *Client) fetchMakes(ctx context.Context, year int) ([]string, error) {
	var body envelope[makeEntry]
	query := url.Values{"year": {strconv.Itoa(year)}}
	if err := c.Get(ctx, "/makes", query, &body); err != nil {
		return nil, err
	}
	return pluckSorted(body.items(), func(m makeEntry) *string { return m.Name }), nil
}

func (c *Client) fetchModels(ctx context.Context, year int, makeName string) ([]string, error) {
	var body envelope[modelEntry]
	query := url.Values{
		"year": {strconv.Itoa(year)},
		"make": {makeName},
	}
	if err := c.Get(ctx, "/models", query, &body); err != nil {
		return nil, err
	}
	return pluckSorted(body.items(), func(m modelEntry) *string { return m.Model }), nil
}

// pluckSorted sorts the present names ascending and appends entries without
// one as "" after them.
func pluckSorted[T any](entries []T, field func(T) *string) []string {
	out := make([]string, 0, len(entries))
	missing := 0
	for _, e := range entries {
		if name := field(e); name != nil {
			out = append(out, *name)
		} else {
			missing++
		}
	}
	slices.Sort(out)
	for range missing {
		out = append(out, "")
	}
	return out
}

// envelope is the {"data": [...]} wrapper used by every endpoint.
// A missing or null data field decodes to an empty list.
type envelope[T any] struct {
	Data []T `json:"data"`
}

func (e envelope[T]) items() []T {
	if e.Data == nil {
		return []T{}
	}
	return e.Data
}

// makeEntry also carries an "id", which nothing here uses.
type makeEntry struct {
	Name *string `json:"name"`
}

type modelEntry struct {
	Model *string `json:"model"`
}
