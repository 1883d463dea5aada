package entity

import "time"

// IssueType categorizes a reported civic issue.
type IssueType string

// Issue types accepted by the reporting form.
const (
	IssueTypeRoad        IssueType = "Road Infrastructure"
	IssueTypeWaste       IssueType = "Waste Management"
	IssueTypeEnvironment IssueType = "Environmental Issues"
	IssueTypeUtilities   IssueType = "Utilities & Infrastructure"
	IssueTypeSafety      IssueType = "Public Safety"
	IssueTypeOther       IssueType = "Other"
)

// IssueStatus tracks the triage state of a reported issue.
type IssueStatus string

// Issue lifecycle statuses.
const (
	IssueStatusReported   IssueStatus = "Reported"
	IssueStatusInProgress IssueStatus = "In Progress"
	IssueStatusResolved   IssueStatus = "Resolved"
	IssueStatusRejected   IssueStatus = "Rejected"
	IssueStatusPending    IssueStatus = "Pending"
)

// ValidIssueType reports whether t is one of the accepted categories.
func ValidIssueType(t IssueType) bool {
	switch t {
	case IssueTypeRoad, IssueTypeWaste, IssueTypeEnvironment, IssueTypeUtilities, IssueTypeSafety, IssueTypeOther:
		return true
	default:
		return false
	}
}

// Location is the geotag attached to an issue report.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// Issue is a citizen-submitted report of a civic problem.
type Issue struct {
	ID          string
	CitizenID   string
	IssueType   IssueType
	Title       string
	Description string
	Status      IssueStatus
	Location    Location
	MediaIDs    []string
	HandledBy   string // Admin id once an administrator takes the issue.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
