package evergreen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// DefaultGreetings is the fixed fallback list bound to cards when no
// provider is configured or the provider fails. Never empty.
var DefaultGreetings = []string{
	"Merry Christmas",
	"Happy Holidays",
	"Peace on Earth",
	"Joy to the World",
	"Warm Winter Wishes",
}

// GreetingProvider supplies the ordered list of short strings bound to
// card items. Called once at scene startup.
type GreetingProvider interface {
	Greetings(ctx context.Context) ([]string, error)
}

// FetchGreetings returns the provider's greeting list, falling back to
// DefaultGreetings when the provider is nil, returns an error, or returns
// an empty list. The result is never empty, and the fallback is the same
// literal list on every invocation, so scene construction never stalls on
// a broken provider.
func FetchGreetings(ctx context.Context, p GreetingProvider) []string {
	if p == nil {
		return DefaultGreetings
	}
	list, err := p.Greetings(ctx)
	if err != nil || len(list) == 0 {
		return DefaultGreetings
	}
	return list
}

// defaultGreetingTimeout bounds how long scene startup waits on the
// greeting service.
const defaultGreetingTimeout = 3 * time.Second

// HTTPGreetings fetches greetings from a URL returning a JSON array of
// strings.
type HTTPGreetings struct {
	// URL is the endpoint to GET.
	URL string
	// Client is the HTTP client to use; nil uses a client with the
	// default timeout.
	Client *http.Client
	// Timeout bounds the whole fetch. Zero selects 3 seconds.
	Timeout time.Duration
}

// Greetings performs the fetch. Any transport error, non-200 status,
// malformed body, or empty array is returned as an error so the caller's
// fallback path engages.
func (h *HTTPGreetings) Greetings(ctx context.Context) ([]string, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultGreetingTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("greeting request: %w", err)
	}

	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greeting fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("greeting fetch: unexpected status %d", resp.StatusCode)
	}

	var list []string
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("greeting decode: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("greeting fetch: empty list")
	}
	return list, nil
}

// Storage keys for the cached greeting list.
const (
	greetingsObject   = "greetings"
	greetingsProperty = "last"
)

// CachedGreetings wraps a provider with gdata-backed persistence: a
// successful upstream fetch is saved, and later upstream failures serve
// the saved list instead of erroring. A nil Data manager disables the
// cache and the wrapper becomes transparent.
type CachedGreetings struct {
	Upstream GreetingProvider
	Data     *gdata.Manager
}

// Greetings fetches from the upstream, updating the cache on success and
// reading it on failure. Cache I/O failures are swallowed; the worst
// outcome is behaving as if no cache existed.
func (c *CachedGreetings) Greetings(ctx context.Context) ([]string, error) {
	var upstreamErr error
	if c.Upstream != nil {
		list, err := c.Upstream.Greetings(ctx)
		if err == nil && len(list) > 0 {
			c.save(list)
			return list, nil
		}
		upstreamErr = err
		if upstreamErr == nil {
			// An empty list with no error still counts as a failed
			// fetch; a nil error here would read as success with no
			// data.
			upstreamErr = fmt.Errorf("greeting cache: upstream returned no greetings")
		}
	} else {
		upstreamErr = fmt.Errorf("greeting cache: no upstream")
	}

	if cached := c.load(); len(cached) > 0 {
		return cached, nil
	}
	return nil, upstreamErr
}

func (c *CachedGreetings) save(list []string) {
	if c.Data == nil {
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	// Best effort; a failed save just means a cold cache next run.
	_ = c.Data.SaveObjectProp(greetingsObject, greetingsProperty, data)
}

func (c *CachedGreetings) load() []string {
	if c.Data == nil || !c.Data.ObjectPropExists(greetingsObject, greetingsProperty) {
		return nil
	}
	data, err := c.Data.LoadObjectProp(greetingsObject, greetingsProperty)
	if err != nil {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	return list
}
