package enums

import "fmt"

// RoutingStatus tracks a vendor's position on a routed lead.
type RoutingStatus string

const (
	RoutingStatusRouted       RoutingStatus = "routed"
	RoutingStatusInterested   RoutingStatus = "interested"
	RoutingStatusBidSubmitted RoutingStatus = "bid_submitted"
	RoutingStatusDeclined     RoutingStatus = "declined"
)

var validRoutingStatuses = []RoutingStatus{
	RoutingStatusRouted,
	RoutingStatusInterested,
	RoutingStatusBidSubmitted,
	RoutingStatusDeclined,
}

// String implements fmt.Stringer.
func (r RoutingStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoutingStatus.
func (r RoutingStatus) IsValid() bool {
	for _, candidate := range validRoutingStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// AllowsBidding reports whether a vendor holding this routing status may submit a bid.
func (r RoutingStatus) AllowsBidding() bool {
	return r == RoutingStatusRouted || r == RoutingStatusInterested || r == RoutingStatusBidSubmitted
}

// ParseRoutingStatus converts raw input into a RoutingStatus.
func ParseRoutingStatus(value string) (RoutingStatus, error) {
	for _, candidate := range validRoutingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid routing status %q", value)
}
