// Package routing provides a client for the OSRM (Open Source Routing
// Machine) driving-route API, replacing the teacher's internal A*
// transit router: this system delegates route-finding to an external
// collaborator and consumes its polyline and distance/duration summary.
package routing

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/paulmach/go.geojson"
	"github.com/valyala/fasthttp"

	"github.com/passbi/fuelroute/internal/models"
)

const (
	defaultEndpoint = "https://router.project-osrm.org"
	requestTimeout  = 30 * time.Second
)

// Client queries OSRM's /route/v1/driving endpoint.
type Client struct {
	endpoint   string
	httpClient *fasthttp.Client
}

// NewClient returns a Client pointed at the public OSRM demo server.
func NewClient() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		httpClient: &fasthttp.Client{
			Name: "fuelroute-routing-client",
		},
	}
}

// NewClientWithEndpoint overrides the base URL, for a self-hosted OSRM
// instance in production or a test double.
func NewClientWithEndpoint(endpoint string) *Client {
	c := NewClient()
	c.endpoint = endpoint
	return c
}

type osrmGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type osrmRoute struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Geometry osrmGeometry `json:"geometry"`
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// Route requests a driving route between two points and decodes its
// GeoJSON LineString geometry into a models.Polyline of (lat, lon)
// vertices, undoing OSRM's lon-first coordinate order.
func (c *Client) Route(startLat, startLon, endLat, endLon float64) (*models.Route, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	path := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f",
		c.endpoint, startLon, startLat, endLon, endLat)
	req.SetRequestURI(path)
	req.URI().QueryArgs().Set("overview", "full")
	req.URI().QueryArgs().Set("geometries", "geojson")
	req.URI().QueryArgs().Set("steps", "true")
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.httpClient.DoTimeout(req, resp, requestTimeout); err != nil {
		return nil, fmt.Errorf("routing request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("routing request returned status %d", resp.StatusCode())
	}

	var parsed osrmResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("no route found (code=%s)", parsed.Code)
	}

	route := parsed.Routes[0]
	polyline, err := decodeGeometry(route.Geometry)
	if err != nil {
		return nil, err
	}

	return &models.Route{
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
		Geometry:        polyline,
	}, nil
}

// decodeGeometry parses raw OSRM geometry via go.geojson, matching the
// decoding the rest of the retrieved corpus uses for GeoJSON payloads,
// rather than hand-rolling a LineString reader for this one response.
func decodeGeometry(g osrmGeometry) (models.Polyline, error) {
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode geometry: %w", err)
	}

	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geometry: %w", err)
	}
	if geom.Type != geojson.GeometryLineString {
		return nil, fmt.Errorf("unexpected geometry type %q", geom.Type)
	}

	polyline := make(models.Polyline, 0, len(geom.LineString))
	for _, coord := range geom.LineString {
		if len(coord) < 2 {
			continue
		}
		// GeoJSON coordinates are [lon, lat].
		polyline = append(polyline, models.Vertex{Lat: coord[1], Lon: coord[0]})
	}

	return polyline, nil
}
