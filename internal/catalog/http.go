package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPDirectory fetches channels from a remote catalog API:
// GET {base}/api/channels?has_exercises=true&available=true
type HTTPDirectory struct {
	base string
	http *http.Client
}

func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPDirectory{
		base: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (d *HTTPDirectory) FetchChannels(ctx context.Context, f Filter) ([]RawChannel, error) {
	u := d.base + "/api/channels"
	q := url.Values{}
	if f.HasExercises {
		q.Set("has_exercises", "true")
	}
	if f.Available {
		q.Set("available", "true")
	}
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Source: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	res, err := d.http.Do(req)
	if err != nil {
		return nil, &FetchError{Source: u, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return nil, &FetchError{Source: u, Err: fmt.Errorf("unexpected status %s", res.Status)}
	}
	var out []RawChannel
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &FetchError{Source: u, Err: err}
	}
	return out, nil
}
