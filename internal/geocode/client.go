// Package geocode provides a client for the Nominatim (OpenStreetMap)
// geocoding service, used to turn free-text trip endpoints and station
// city/state pairs into coordinates.
//
// Built in the shape of angelodlfrtr-valhalla-http-client-go's Client:
// a fasthttp.Client wrapping a base URL, with goccy/go-json for
// decoding the response body.
package geocode

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const (
	defaultEndpoint = "https://nominatim.openstreetmap.org"
	userAgent       = "fuel-route-optimizer/1.0"
	requestTimeout  = 10 * time.Second
)

// Client queries Nominatim's /search endpoint.
type Client struct {
	endpoint   string
	httpClient *fasthttp.Client
}

// NewClient returns a Client pointed at the public Nominatim instance.
func NewClient() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		httpClient: &fasthttp.Client{
			Name: "fuelroute-geocode-client",
		},
	}
}

// NewClientWithEndpoint overrides the base URL, for pointing at a
// self-hosted Nominatim mirror in tests or production.
func NewClientWithEndpoint(endpoint string) *Client {
	c := NewClient()
	c.endpoint = endpoint
	return c
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Coordinates resolves a free-text location query (e.g. "Chicago, IL")
// to a (lat, lon) pair. Returns an error if Nominatim returns no match.
func (c *Client) Coordinates(query string) (lat, lon float64, err error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint + "/search")
	req.URI().QueryArgs().Set("q", query)
	req.URI().QueryArgs().Set("format", "json")
	req.URI().QueryArgs().Set("limit", "1")
	req.URI().QueryArgs().Set("countrycodes", "us")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderUserAgent, userAgent)

	if err := c.httpClient.DoTimeout(req, resp, requestTimeout); err != nil {
		return 0, 0, fmt.Errorf("geocode request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return 0, 0, fmt.Errorf("geocode request returned status %d", resp.StatusCode())
	}

	var results []searchResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding match for %q", query)
	}

	lat, err = parseCoord(results[0].Lat)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lon, err = parseCoord(results[0].Lon)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	return lat, lon, nil
}

func parseCoord(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
