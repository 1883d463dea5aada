package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicreport/internal/domain/entity"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/repository"
	mockRepo "civicreport/internal/mocks/repository"
	mockService "civicreport/internal/mocks/service"
	"civicreport/internal/usecase"
)

type issueServiceFixture struct {
	issues   *mockRepo.MockIssueRepository
	media    *mockRepo.MockMediaRepository
	accounts *mockRepo.MockAccountRepository
	storage  *mockService.MockMediaStorage
	service  usecase.IssueUsecase
}

func newIssueServiceFixture(t *testing.T) *issueServiceFixture {
	f := &issueServiceFixture{
		issues:   mockRepo.NewMockIssueRepository(t),
		media:    mockRepo.NewMockMediaRepository(t),
		accounts: mockRepo.NewMockAccountRepository(t),
		storage:  mockService.NewMockMediaStorage(t),
	}
	f.service = NewIssueService(f.issues, f.media, f.accounts, f.storage, discardLogger())

	return f
}

func validCreateInput() *usecase.CreateIssueInput {
	return &usecase.CreateIssueInput{
		ReporterID:  "acc-1",
		Title:       "Broken streetlight on Main St",
		Description: "The light at the corner has been out for a week.",
		IssueType:   string(entity.IssueTypeUtilities),
		Location: usecase.LocationInput{
			Latitude:  25.0330,
			Longitude: 121.5654,
			Address:   "1 Main St",
		},
	}
}

func TestIssueService_CreateIssue_Success(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, "Broken streetlight on Main St").
		Return(nil, repository.ErrIssueNotFound)
	f.issues.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).
		Run(func(args mock.Arguments) {
			issue := args.Get(1).(*entity.Issue)
			issue.ID = "issue-1"
			issue.CreatedAt = time.Now().UTC()
		}).
		Return(nil)

	out, err := f.service.CreateIssue(ctx, validCreateInput())

	require.NoError(t, err)
	assert.Equal(t, "issue-1", out.ID)
	assert.Equal(t, string(entity.IssueStatusReported), out.Status)
	assert.Equal(t, string(entity.IssueTypeUtilities), out.IssueType)
	assert.Empty(t, out.MediaURLs)
}

func TestIssueService_CreateIssue_WithUploads(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrIssueNotFound)
	f.issues.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Issue).ID = "issue-1"
		}).
		Return(nil)
	f.storage.On("Save", ctx, "pothole.jpg", "image/jpeg", mock.Anything).
		Return("/media/abc-pothole.jpg", nil)
	f.media.On("Create", ctx, mock.AnythingOfType("*entity.Media")).
		Run(func(args mock.Arguments) {
			record := args.Get(1).(*entity.Media)
			record.ID = "media-1"
			assert.Equal(t, "issue-1", record.IssueID)
			assert.Equal(t, entity.MediaTypeImage, record.FileType)
		}).
		Return(nil)
	f.issues.On("SetMediaIDs", ctx, "issue-1", []string{"media-1"}).Return(nil)

	input := validCreateInput()
	input.Uploads = []usecase.IssueUpload{
		{Filename: "pothole.jpg", ContentType: "image/jpeg", Body: strings.NewReader("fake-bytes")},
	}

	out, err := f.service.CreateIssue(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, []string{"/media/abc-pothole.jpg"}, out.MediaURLs)
}

func TestIssueService_CreateIssue_ValidationFailures(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*usecase.CreateIssueInput)
	}{
		{"empty title", func(in *usecase.CreateIssueInput) { in.Title = "" }},
		{"title too short", func(in *usecase.CreateIssueInput) { in.Title = "Bad" }},
		// 4 characters but 12 bytes; the bounds count characters.
		{"multibyte title too short", func(in *usecase.CreateIssueInput) { in.Title = "路燈壞了" }},
		{"title too long", func(in *usecase.CreateIssueInput) { in.Title = strings.Repeat("x", 101) }},
		{"empty description", func(in *usecase.CreateIssueInput) { in.Description = " " }},
		{"empty address", func(in *usecase.CreateIssueInput) { in.Location.Address = "" }},
		{"latitude out of range", func(in *usecase.CreateIssueInput) { in.Location.Latitude = 91 }},
		{"longitude out of range", func(in *usecase.CreateIssueInput) { in.Location.Longitude = -181 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(input)

			_, err := f.service.CreateIssue(ctx, input)

			require.Error(t, err)
			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
		})
	}
}

func TestIssueService_CreateIssue_UnknownIssueType(t *testing.T) {
	f := newIssueServiceFixture(t)

	input := validCreateInput()
	input.IssueType = "Alien Invasion"

	_, err := f.service.CreateIssue(context.Background(), input)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestIssueService_CreateIssue_DefaultIssueType(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrIssueNotFound)
	f.issues.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).Return(nil)

	input := validCreateInput()
	input.IssueType = ""

	out, err := f.service.CreateIssue(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, string(entity.IssueTypeRoad), out.IssueType)
}

func TestIssueService_CreateIssue_MultibyteTitleAtMaxLength(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrIssueNotFound)
	f.issues.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).Return(nil)

	// 100 characters, 300 bytes; must pass the upper bound.
	input := validCreateInput()
	input.Title = strings.Repeat("燈", 100)

	_, err := f.service.CreateIssue(ctx, input)

	require.NoError(t, err)
}

func TestIssueService_CreateIssue_DuplicateTitle(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, "Broken streetlight on Main St").
		Return(&entity.Issue{ID: "issue-existing"}, nil)

	_, err := f.service.CreateIssue(ctx, validCreateInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIssueTitle))
}

func TestIssueService_CreateIssue_DuplicateTitleRace(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrIssueNotFound)
	f.issues.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).
		Return(&repository.ConflictError{Field: "title", Err: errors.New("E11000 duplicate key")})

	_, err := f.service.CreateIssue(ctx, validCreateInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIssueTitle))
}

func TestIssueService_CreateIssue_UploadFailureDiscardsIssue(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrIssueNotFound)
	f.issues.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Issue).ID = "issue-1"
		}).
		Return(nil)
	f.storage.On("Save", ctx, "pothole.jpg", "image/jpeg", mock.Anything).
		Return("", errors.New("bucket unreachable"))
	// The half-created report must not survive the failed upload.
	f.issues.On("Delete", ctx, "issue-1").Return(nil)

	input := validCreateInput()
	input.Uploads = []usecase.IssueUpload{
		{Filename: "pothole.jpg", ContentType: "image/jpeg", Body: strings.NewReader("fake-bytes")},
	}

	_, err := f.service.CreateIssue(ctx, input)

	require.Error(t, err)
}

func TestIssueService_CreateIssue_MediaLinkFailureDiscardsIssue(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByTitle", ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrIssueNotFound)
	f.issues.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Issue).ID = "issue-1"
		}).
		Return(nil)
	f.storage.On("Save", ctx, "pothole.jpg", "image/jpeg", mock.Anything).
		Return("/media/abc-pothole.jpg", nil)
	f.media.On("Create", ctx, mock.AnythingOfType("*entity.Media")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Media).ID = "media-1"
		}).
		Return(nil)
	f.issues.On("SetMediaIDs", ctx, "issue-1", []string{"media-1"}).
		Return(errors.New("write failed"))
	f.issues.On("Delete", ctx, "issue-1").Return(nil)

	input := validCreateInput()
	input.Uploads = []usecase.IssueUpload{
		{Filename: "pothole.jpg", ContentType: "image/jpeg", Body: strings.NewReader("fake-bytes")},
	}

	_, err := f.service.CreateIssue(ctx, input)

	require.Error(t, err)
}

func TestIssueService_ListIssues(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	issues := []*entity.Issue{
		{
			ID:        "issue-2",
			CitizenID: "acc-1",
			Title:     "Overflowing bins",
			IssueType: entity.IssueTypeWaste,
			Status:    entity.IssueStatusReported,
			MediaIDs:  []string{"media-1", "media-2"},
			CreatedAt: now,
		},
		{
			ID:        "issue-1",
			CitizenID: "acc-gone",
			Title:     "Broken streetlight",
			IssueType: entity.IssueTypeUtilities,
			Status:    entity.IssueStatusResolved,
			CreatedAt: now.Add(-time.Hour),
		},
	}
	f.issues.On("FindAll", ctx).Return(issues, nil)
	f.accounts.On("FindByID", ctx, "acc-1").
		Return(&entity.Account{ID: "acc-1", FullName: "Jane Citizen"}, nil)
	f.accounts.On("FindByID", ctx, "acc-gone").
		Return(nil, repository.ErrAccountNotFound)
	f.media.On("FindByIDs", ctx, []string{"media-1"}).
		Return([]*entity.Media{{ID: "media-1", URL: "/media/bins.jpg"}}, nil)

	summaries, err := f.service.ListIssues(ctx)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Jane Citizen", summaries[0].ReportedBy)
	assert.Equal(t, "/media/bins.jpg", summaries[0].Image)
	assert.Equal(t, "Anonymous", summaries[1].ReportedBy)
	assert.Empty(t, summaries[1].Image)
}

func TestIssueService_GetIssue(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	issue := &entity.Issue{
		ID:        "issue-1",
		CitizenID: "acc-1",
		Title:     "Broken streetlight",
		IssueType: entity.IssueTypeUtilities,
		Status:    entity.IssueStatusReported,
		MediaIDs:  []string{"media-1"},
	}
	f.issues.On("FindByID", ctx, "issue-1").Return(issue, nil)
	f.accounts.On("FindByID", ctx, "acc-1").
		Return(&entity.Account{ID: "acc-1", FullName: "Jane Citizen"}, nil)
	f.media.On("FindByIssueID", ctx, "issue-1").
		Return([]*entity.Media{{ID: "media-1", URL: "/media/light.jpg"}}, nil)

	detail, err := f.service.GetIssue(ctx, "issue-1")

	require.NoError(t, err)
	assert.Equal(t, "Jane Citizen", detail.ReportedBy)
	assert.Equal(t, []string{"/media/light.jpg"}, detail.MediaURLs)
	assert.Equal(t, "/media/light.jpg", detail.Image)
}

func TestIssueService_GetIssue_NotFound(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	f.issues.On("FindByID", ctx, "missing").Return(nil, repository.ErrIssueNotFound)

	_, err := f.service.GetIssue(ctx, "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrIssueNotFound))
}
