package optimizer

import "fmt"

// EmptyRouteError means the polyline had fewer than 2 vertices, or the
// total distance was non-positive.
type EmptyRouteError struct {
	Reason string
}

func (e *EmptyRouteError) Error() string {
	return fmt.Sprintf("empty route: %s", e.Reason)
}

// NoStationsOnRouteError means the corridor filter found nothing and the
// trip exceeds one tank of range.
type NoStationsOnRouteError struct{}

func (e *NoStationsOnRouteError) Error() string {
	return "No fuel stations found along route, cannot complete trip"
}

// StrandedError means the greedy selector reached a tank window with no
// reachable station.
type StrandedError struct {
	Mile float64
}

func (e *StrandedError) Error() string {
	return fmt.Sprintf("Stranded at mile %.1f. No stations in range.", e.Mile)
}
