package api

import (
	"fmt"
	"strconv"
	"strings"
)

func parseFloatParam(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// validationError is returned to the client as a 400 with its message
// verbatim, matching the exact wording RouteOptimizationRequestSerializer
// raises for each rule.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// validateOptimizeRequest applies the same rules as
// RouteOptimizationRequestSerializer: both locations required, each at
// least 3 characters after trimming, and not the same location
// case-insensitively.
func validateOptimizeRequest(req optimizeRequest) (start, end string, err error) {
	start = strings.TrimSpace(req.StartLocation)
	end = strings.TrimSpace(req.EndLocation)

	if len(start) < 3 {
		return "", "", validationErrorf("Start location must be at least 3 characters long.")
	}
	if len(end) < 3 {
		return "", "", validationErrorf("End location must be at least 3 characters long.")
	}
	if strings.EqualFold(start, end) {
		return "", "", validationErrorf("Start and end locations must be different.")
	}

	return start, end, nil
}

// nearQuery is the parsed, validated query for GET /api/v1/stations/near.
type nearQuery struct {
	Lat    float64
	Lon    float64
	Radius float64
}

const (
	defaultRadiusMiles = 10.0
	minRadiusMiles     = 1.0
	maxRadiusMiles     = 50.0
)

// validateNearQuery applies StationsNearRequestSerializer's rules: lat/lon
// required and range-checked, radius optional (default 10 miles) and
// rejected outside [1, 50].
func validateNearQuery(latStr, lonStr, radiusStr string) (nearQuery, error) {
	if latStr == "" || lonStr == "" {
		return nearQuery{}, validationErrorf("lat and lon are required.")
	}

	lat, err := parseFloatParam(latStr)
	if err != nil {
		return nearQuery{}, validationErrorf("Invalid lat, lon, or radius parameters.")
	}
	lon, err := parseFloatParam(lonStr)
	if err != nil {
		return nearQuery{}, validationErrorf("Invalid lat, lon, or radius parameters.")
	}
	if lat < -90 || lat > 90 {
		return nearQuery{}, validationErrorf("lat must be between -90 and 90.")
	}
	if lon < -180 || lon > 180 {
		return nearQuery{}, validationErrorf("lon must be between -180 and 180.")
	}

	radius := defaultRadiusMiles
	if radiusStr != "" {
		radius, err = parseFloatParam(radiusStr)
		if err != nil {
			return nearQuery{}, validationErrorf("Invalid lat, lon, or radius parameters.")
		}
		if radius < minRadiusMiles || radius > maxRadiusMiles {
			return nearQuery{}, validationErrorf("radius must be between %.0f and %.0f.", minRadiusMiles, maxRadiusMiles)
		}
	}

	return nearQuery{Lat: lat, Lon: lon, Radius: radius}, nil
}
