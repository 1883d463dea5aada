// Package repository provides testify mocks for the domain repository
// interfaces used by the usecase tests.
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"civicreport/internal/domain/entity"
)

// MockAccountRepository is a mock for the AccountRepository interface.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock whose expectations are asserted
// on test cleanup.
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockAccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Account
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Account)
	}

	return r0, ret.Error(1)
}

func (_m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	ret := _m.Called(ctx, email)

	var r0 *entity.Account
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Account)
	}

	return r0, ret.Error(1)
}

func (_m *MockAccountRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Account, error) {
	ret := _m.Called(ctx, externalID)

	var r0 *entity.Account
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Account)
	}

	return r0, ret.Error(1)
}

func (_m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	ret := _m.Called(ctx, account)

	return ret.Error(0)
}

func (_m *MockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	ret := _m.Called(ctx, account)

	return ret.Error(0)
}

// MockIssueRepository is a mock for the IssueRepository interface.
type MockIssueRepository struct {
	mock.Mock
}

// NewMockIssueRepository creates a mock whose expectations are asserted
// on test cleanup.
func NewMockIssueRepository(t *testing.T) *MockIssueRepository {
	m := &MockIssueRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockIssueRepository) FindByID(ctx context.Context, id string) (*entity.Issue, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Issue
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Issue)
	}

	return r0, ret.Error(1)
}

func (_m *MockIssueRepository) FindByTitle(ctx context.Context, title string) (*entity.Issue, error) {
	ret := _m.Called(ctx, title)

	var r0 *entity.Issue
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Issue)
	}

	return r0, ret.Error(1)
}

func (_m *MockIssueRepository) FindAll(ctx context.Context) ([]*entity.Issue, error) {
	ret := _m.Called(ctx)

	var r0 []*entity.Issue
	if v := ret.Get(0); v != nil {
		r0 = v.([]*entity.Issue)
	}

	return r0, ret.Error(1)
}

func (_m *MockIssueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	ret := _m.Called(ctx, issue)

	return ret.Error(0)
}

func (_m *MockIssueRepository) SetMediaIDs(ctx context.Context, issueID string, mediaIDs []string) error {
	ret := _m.Called(ctx, issueID, mediaIDs)

	return ret.Error(0)
}

func (_m *MockIssueRepository) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// MockMediaRepository is a mock for the MediaRepository interface.
type MockMediaRepository struct {
	mock.Mock
}

// NewMockMediaRepository creates a mock whose expectations are asserted
// on test cleanup.
func NewMockMediaRepository(t *testing.T) *MockMediaRepository {
	m := &MockMediaRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockMediaRepository) Create(ctx context.Context, media *entity.Media) error {
	ret := _m.Called(ctx, media)

	return ret.Error(0)
}

func (_m *MockMediaRepository) FindByIssueID(ctx context.Context, issueID string) ([]*entity.Media, error) {
	ret := _m.Called(ctx, issueID)

	var r0 []*entity.Media
	if v := ret.Get(0); v != nil {
		r0 = v.([]*entity.Media)
	}

	return r0, ret.Error(1)
}

func (_m *MockMediaRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Media, error) {
	ret := _m.Called(ctx, ids)

	var r0 []*entity.Media
	if v := ret.Get(0); v != nil {
		r0 = v.([]*entity.Media)
	}

	return r0, ret.Error(1)
}
