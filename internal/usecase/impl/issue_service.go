package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"civicreport/internal/domain/entity"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/repository"
	"civicreport/internal/domain/service"
	"civicreport/internal/usecase"

	"github.com/pkg/errors"
)

const (
	minTitleLen = 5
	maxTitleLen = 100

	anonymousReporter = "Anonymous"
)

// issueService implements the IssueUsecase interface.
type issueService struct {
	issues   repository.IssueRepository
	media    repository.MediaRepository
	accounts repository.AccountRepository
	storage  service.MediaStorage
	logger   *slog.Logger
}

// NewIssueService is the constructor for issueService.
func NewIssueService(
	issues repository.IssueRepository,
	media repository.MediaRepository,
	accounts repository.AccountRepository,
	storage service.MediaStorage,
	logger *slog.Logger,
) usecase.IssueUsecase {
	return &issueService{
		issues:   issues,
		media:    media,
		accounts: accounts,
		storage:  storage,
		logger:   logger,
	}
}

// CreateIssue validates and persists a new report, then stores its
// attachments and links them back onto the issue.
func (srv *issueService) CreateIssue(ctx context.Context, input *usecase.CreateIssueInput) (*usecase.CreateIssueOutput, error) {
	if err := validateIssueInput(input); err != nil {
		return nil, err
	}

	issueType := entity.IssueType(input.IssueType)
	if input.IssueType == "" {
		issueType = entity.IssueTypeRoad
	}
	if !entity.ValidIssueType(issueType) {
		return nil, domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("unknown issue type %q", input.IssueType))
	}

	if _, err := srv.issues.FindByTitle(ctx, input.Title); err == nil {
		return nil, domainerrors.ErrDuplicateIssueTitle
	} else if !errors.Is(err, repository.ErrIssueNotFound) {
		return nil, errors.Wrap(err, "failed to check for duplicate title")
	}

	issue := &entity.Issue{
		CitizenID:   input.ReporterID,
		IssueType:   issueType,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      entity.IssueStatusReported,
		Location: entity.Location{
			Latitude:  input.Location.Latitude,
			Longitude: input.Location.Longitude,
			Address:   strings.TrimSpace(input.Location.Address),
		},
	}

	if err := srv.issues.Create(ctx, issue); err != nil {
		// The unique title index closes the check-then-insert window.
		var conflict *repository.ConflictError
		if errors.As(err, &conflict) {
			return nil, domainerrors.ErrDuplicateIssueTitle
		}

		return nil, errors.Wrap(err, "failed to create issue")
	}

	mediaURLs, mediaIDs, err := srv.storeUploads(ctx, issue.ID, input.Uploads)
	if err != nil {
		srv.discardIssue(ctx, issue.ID)

		return nil, err
	}
	if len(mediaIDs) > 0 {
		if err := srv.issues.SetMediaIDs(ctx, issue.ID, mediaIDs); err != nil {
			srv.discardIssue(ctx, issue.ID)

			return nil, errors.Wrap(err, "failed to attach media to issue")
		}
	}

	srv.logger.Info("Issue reported",
		slog.String("issueID", issue.ID),
		slog.String("citizenID", issue.CitizenID),
		slog.Int("attachments", len(mediaIDs)))

	return &usecase.CreateIssueOutput{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		IssueType:   string(issue.IssueType),
		Status:      string(issue.Status),
		Location: usecase.LocationInput{
			Latitude:  issue.Location.Latitude,
			Longitude: issue.Location.Longitude,
			Address:   issue.Location.Address,
		},
		MediaURLs: mediaURLs,
		CreatedAt: issue.CreatedAt,
	}, nil
}

// ListIssues returns the feed projection of every report, newest first.
func (srv *issueService) ListIssues(ctx context.Context) ([]*usecase.IssueSummary, error) {
	issues, err := srv.issues.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list issues")
	}

	summaries := make([]*usecase.IssueSummary, 0, len(issues))
	for _, issue := range issues {
		summary := srv.summarize(ctx, issue)

		if len(issue.MediaIDs) > 0 {
			attachments, err := srv.media.FindByIDs(ctx, issue.MediaIDs[:1])
			if err != nil {
				srv.logger.Warn("Failed to resolve issue thumbnail",
					slog.String("issueID", issue.ID), slog.Any("error", err))
			} else if len(attachments) > 0 {
				summary.Image = attachments[0].URL
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetIssue returns one report with its full attachment list.
func (srv *issueService) GetIssue(ctx context.Context, id string) (*usecase.IssueDetail, error) {
	issue, err := srv.issues.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIssueNotFound) {
			return nil, domainerrors.ErrIssueNotFound
		}

		return nil, errors.Wrap(err, "failed to find issue")
	}

	detail := &usecase.IssueDetail{IssueSummary: *srv.summarize(ctx, issue)}

	attachments, err := srv.media.FindByIssueID(ctx, issue.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load issue media")
	}
	for _, m := range attachments {
		detail.MediaURLs = append(detail.MediaURLs, m.URL)
	}
	if len(detail.MediaURLs) > 0 {
		detail.Image = detail.MediaURLs[0]
	}

	return detail, nil
}

// discardIssue removes a report whose attachments failed to store, so a
// failed create leaves no partial state behind.
func (srv *issueService) discardIssue(ctx context.Context, issueID string) {
	if err := srv.issues.Delete(ctx, issueID); err != nil {
		srv.logger.Warn("Failed to remove incomplete issue",
			slog.String("issueID", issueID), slog.Any("error", err))
	}
}

func (srv *issueService) summarize(ctx context.Context, issue *entity.Issue) *usecase.IssueSummary {
	return &usecase.IssueSummary{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		IssueType:   string(issue.IssueType),
		Status:      string(issue.Status),
		Location: usecase.LocationInput{
			Latitude:  issue.Location.Latitude,
			Longitude: issue.Location.Longitude,
			Address:   issue.Location.Address,
		},
		ReportedBy: srv.reporterName(ctx, issue.CitizenID),
		ReportedAt: issue.CreatedAt,
	}
}

// reporterName resolves the display name of the reporting citizen. Missing
// accounts (deleted, or ephemeral ones that never hit the store) come back
// as Anonymous rather than failing the feed.
func (srv *issueService) reporterName(ctx context.Context, citizenID string) string {
	if citizenID == "" {
		return anonymousReporter
	}

	account, err := srv.accounts.FindByID(ctx, citizenID)
	if err != nil || account.FullName == "" {
		return anonymousReporter
	}

	return account.FullName
}

func (srv *issueService) storeUploads(ctx context.Context, issueID string, uploads []usecase.IssueUpload) ([]string, []string, error) {
	var urls, ids []string

	for _, upload := range uploads {
		url, err := srv.storage.Save(ctx, upload.Filename, upload.ContentType, upload.Body)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to store upload %q", upload.Filename)
		}

		record := &entity.Media{
			IssueID:  issueID,
			FileType: entity.MediaTypeFromMIME(upload.ContentType),
			URL:      url,
			Filename: upload.Filename,
		}
		if err := srv.media.Create(ctx, record); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to record upload %q", upload.Filename)
		}

		urls = append(urls, url)
		ids = append(ids, record.ID)
	}

	return urls, ids, nil
}

func validateIssueInput(input *usecase.CreateIssueInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Description) == "" || strings.TrimSpace(input.Location.Address) == "" {
		return domainerrors.ErrValidationFailed
	}
	if titleLen := utf8.RuneCountInString(title); titleLen < minTitleLen || titleLen > maxTitleLen {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("title must be between %d and %d characters", minTitleLen, maxTitleLen))
	}
	if input.Location.Latitude < -90 || input.Location.Latitude > 90 {
		return domainerrors.ErrValidationFailed.WithDetails("latitude must be between -90 and 90")
	}
	if input.Location.Longitude < -180 || input.Location.Longitude > 180 {
		return domainerrors.ErrValidationFailed.WithDetails("longitude must be between -180 and 180")
	}

	return nil
}
