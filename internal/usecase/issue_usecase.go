package usecase

import (
	"context"
	"io"
	"time"
)

// IssueUpload is a single attachment streamed in with a report.
type IssueUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// LocationInput is the reporter-supplied position of the issue.
type LocationInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// CreateIssueInput carries everything needed to file a new report.
type CreateIssueInput struct {
	ReporterID  string
	Title       string
	Description string
	IssueType   string
	Location    LocationInput
	Uploads     []IssueUpload
}

// CreateIssueOutput echoes the persisted report.
type CreateIssueOutput struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	IssueType   string        `json:"issueType"`
	Status      string        `json:"status"`
	Location    LocationInput `json:"location"`
	MediaURLs   []string      `json:"media"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// IssueSummary is the flattened feed projection of a report.
type IssueSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	IssueType   string        `json:"issueType"`
	Status      string        `json:"status"`
	Location    LocationInput `json:"location"`
	ReportedBy  string        `json:"reportedBy"`
	ReportedAt  time.Time     `json:"reportedAt"`
	Image       string        `json:"image,omitempty"`
}

// IssueDetail is a single report with its full attachment list.
type IssueDetail struct {
	IssueSummary
	MediaURLs []string `json:"media"`
}

// IssueUsecase defines the civic report surface.
type IssueUsecase interface {
	CreateIssue(ctx context.Context, input *CreateIssueInput) (*CreateIssueOutput, error)
	ListIssues(ctx context.Context) ([]*IssueSummary, error)
	GetIssue(ctx context.Context, id string) (*IssueDetail, error)
}
