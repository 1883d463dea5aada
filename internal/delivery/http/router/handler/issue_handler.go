package handler

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"civicreport/internal/delivery/http/middleware"
	"civicreport/internal/delivery/http/response"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxUploads caps the number of attachments accepted per report.
const maxUploads = 5

// uploadsField is the multipart field name carrying the attachments.
const uploadsField = "media"

// IssueHandler holds dependencies for issue-reporting handlers.
type IssueHandler struct {
	uc     usecase.IssueUsecase
	logger *slog.Logger
}

// NewIssueHandler is the constructor for IssueHandler, injected by Fx.
func NewIssueHandler(uc usecase.IssueUsecase, logger *slog.Logger) *IssueHandler {
	return &IssueHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateIssue files a new report from a multipart form. Attachments arrive
// in the "media" field, the location as a JSON-encoded form value.
func (h *IssueHandler) CreateIssue(c echo.Context) error {
	input := &usecase.CreateIssueInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		IssueType:   c.FormValue("issueType"),
	}
	if accountID, ok := c.Get(middleware.ContextKeyAccountID).(string); ok {
		input.ReporterID = accountID
	}

	if raw := c.FormValue("location"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Location); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid location payload")
		}
	}

	files, err := uploadedFiles(c)
	if err != nil {
		return errors.WithStack(err)
	}

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return errors.Wrap(err, "failed to open uploaded file")
		}
		defer file.Close()

		input.Uploads = append(input.Uploads, usecase.IssueUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get(echo.HeaderContentType),
			Body:        file,
		})
	}

	output, err := h.uc.CreateIssue(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Issue reported successfully")
}

// ListIssues returns the public feed of reported issues.
func (h *IssueHandler) ListIssues(c echo.Context) error {
	summaries, err := h.uc.ListIssues(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summaries, "")
}

// GetIssue returns one report with its attachments.
func (h *IssueHandler) GetIssue(c echo.Context) error {
	detail, err := h.uc.GetIssue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail, "")
}

func uploadedFiles(c echo.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Reports without attachments may arrive as plain form data.
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to parse multipart form")
	}

	files := form.File[uploadsField]
	if len(files) > maxUploads {
		return nil, domainerrors.ErrValidationFailed.WithDetails("at most 5 attachments are allowed")
	}

	return files, nil
}
