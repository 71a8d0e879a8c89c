package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const (
	NOMINATIM_URL = "https://nominatim.openstreetmap.org/search"

	// Nominatim's usage policy requires an identifying agent.
	userAgent = "sundial/1.0"
)

// ErrNotFound reports that the provider had no match for the name.
var ErrNotFound = errors.New("place not found")

// Lookup resolves the query to its best match.
func Lookup(q *Query) (Result, error) {
	var results []Result

	resp, err := http.DefaultClient.Do(&http.Request{
		Method: http.MethodGet,
		URL:    q.url(),
		Header: http.Header{"User-Agent": []string{userAgent}},
	})
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{}, fmt.Errorf("%w: %q", ErrNotFound, q.Name)
	}
	return results[0], nil
}

func (q *Query) url() *url.URL {
	addr, err := url.Parse(NOMINATIM_URL)
	if err != nil {
		// The base URL is a constant; this cannot happen.
		panic(err)
	}
	vals := make(url.Values)
	vals.Add("q", q.Name)
	vals.Add("format", "json")
	vals.Add("limit", "1")
	addr.RawQuery = vals.Encode()
	return addr
}
