// Package usecase provides testify mocks for the usecase interfaces used by
// the HTTP delivery tests.
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"civicreport/internal/usecase"
)

// MockAuthUsecase is a mock for the AuthUsecase interface.
type MockAuthUsecase struct {
	mock.Mock
}

// NewMockAuthUsecase creates a mock whose expectations are asserted
// on test cleanup.
func NewMockAuthUsecase(t *testing.T) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockAuthUsecase) CivicExchange(ctx context.Context, input *usecase.CivicExchangeInput) (*usecase.CivicExchangeOutput, error) {
	ret := _m.Called(ctx, input)

	var r0 *usecase.CivicExchangeOutput
	if v := ret.Get(0); v != nil {
		r0 = v.(*usecase.CivicExchangeOutput)
	}

	return r0, ret.Error(1)
}

// MockIssueUsecase is a mock for the IssueUsecase interface.
type MockIssueUsecase struct {
	mock.Mock
}

// NewMockIssueUsecase creates a mock whose expectations are asserted
// on test cleanup.
func NewMockIssueUsecase(t *testing.T) *MockIssueUsecase {
	m := &MockIssueUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockIssueUsecase) CreateIssue(ctx context.Context, input *usecase.CreateIssueInput) (*usecase.CreateIssueOutput, error) {
	ret := _m.Called(ctx, input)

	var r0 *usecase.CreateIssueOutput
	if v := ret.Get(0); v != nil {
		r0 = v.(*usecase.CreateIssueOutput)
	}

	return r0, ret.Error(1)
}

func (_m *MockIssueUsecase) ListIssues(ctx context.Context) ([]*usecase.IssueSummary, error) {
	ret := _m.Called(ctx)

	var r0 []*usecase.IssueSummary
	if v := ret.Get(0); v != nil {
		r0 = v.([]*usecase.IssueSummary)
	}

	return r0, ret.Error(1)
}

func (_m *MockIssueUsecase) GetIssue(ctx context.Context, id string) (*usecase.IssueDetail, error) {
	ret := _m.Called(ctx, id)

	var r0 *usecase.IssueDetail
	if v := ret.Get(0); v != nil {
		r0 = v.(*usecase.IssueDetail)
	}

	return r0, ret.Error(1)
}
