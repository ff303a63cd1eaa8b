package enums

import "fmt"

// BidStatus tracks the lifecycle of a vendor's bid on a project.
type BidStatus string

const (
	BidStatusSubmitted BidStatus = "submitted"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusDeclined  BidStatus = "declined"
	BidStatusWithdrawn BidStatus = "withdrawn"
)

var validBidStatuses = []BidStatus{
	BidStatusSubmitted,
	BidStatusAccepted,
	BidStatusDeclined,
	BidStatusWithdrawn,
}

// String implements fmt.Stringer.
func (b BidStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BidStatus.
func (b BidStatus) IsValid() bool {
	for _, candidate := range validBidStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBidStatus converts raw input into a BidStatus.
func ParseBidStatus(value string) (BidStatus, error) {
	for _, candidate := range validBidStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bid status %q", value)
}
