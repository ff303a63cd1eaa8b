package types

// ProjectDetails is the typed structured-extension record for intake data
// that does not fit the core project columns. Fields are explicitly
// enumerated so downstream matching and lifecycle code stays fully typed.
type ProjectDetails struct {
	PropertySizeSqFt       *int    `json:"property_size_sqft,omitempty"`
	EmployeeCount          *int    `json:"employee_count,omitempty"`
	OnSiteRequired         *bool   `json:"on_site_required,omitempty"`
	RecurringService       *bool   `json:"recurring_service,omitempty"`
	PreferredContactMethod *string `json:"preferred_contact_method,omitempty"`
	IntakeSource           *string `json:"intake_source,omitempty"`
}
