package enums

// ActivityAction tags an entry in a project's audit trail.
type ActivityAction string

const (
	ActivityProjectCreated ActivityAction = "project_created"
	ActivityPublished      ActivityAction = "published"
	ActivityRouted         ActivityAction = "routed"
	ActivityRoutingFailed  ActivityAction = "routing_failed"
	ActivityInterested     ActivityAction = "interested"
	ActivityBidSubmitted   ActivityAction = "bid_submitted"
	ActivityBidUpdated     ActivityAction = "bid_updated"
	ActivityVendorAssigned ActivityAction = "vendor_assigned"
	ActivityDeclined       ActivityAction = "declined"
	ActivityCompleted      ActivityAction = "completed"
	ActivityCancelled      ActivityAction = "cancelled"
	ActivityRerouted       ActivityAction = "rerouted"
)

// String implements fmt.Stringer.
func (a ActivityAction) String() string {
	return string(a)
}
