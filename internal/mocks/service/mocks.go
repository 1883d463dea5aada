// Package service provides testify mocks for the domain service
// interfaces used by the usecase tests.
package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"civicreport/internal/domain/entity"
	domainservice "civicreport/internal/domain/service"
)

// MockCivicVerifier is a mock for the CivicVerifier interface.
type MockCivicVerifier struct {
	mock.Mock
}

// NewMockCivicVerifier creates a mock whose expectations are asserted
// on test cleanup.
func NewMockCivicVerifier(t *testing.T) *MockCivicVerifier {
	m := &MockCivicVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockCivicVerifier) Verify(ctx context.Context, rawToken string) (*entity.ExternalClaims, error) {
	ret := _m.Called(ctx, rawToken)

	var r0 *entity.ExternalClaims
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.ExternalClaims)
	}

	return r0, ret.Error(1)
}

// MockSessionTokenService is a mock for the SessionTokenService interface.
type MockSessionTokenService struct {
	mock.Mock
}

// NewMockSessionTokenService creates a mock whose expectations are asserted
// on test cleanup.
func NewMockSessionTokenService(t *testing.T) *MockSessionTokenService {
	m := &MockSessionTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockSessionTokenService) Issue(accountID, role string) (string, error) {
	ret := _m.Called(accountID, role)

	return ret.String(0), ret.Error(1)
}

func (_m *MockSessionTokenService) Validate(tokenString string) (*domainservice.SessionClaims, error) {
	ret := _m.Called(tokenString)

	var r0 *domainservice.SessionClaims
	if v := ret.Get(0); v != nil {
		r0 = v.(*domainservice.SessionClaims)
	}

	return r0, ret.Error(1)
}

// MockPasswordHasher is a mock for the PasswordHasher interface.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted
// on test cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)

	return ret.String(0), ret.Error(1)
}

func (_m *MockPasswordHasher) Check(password, hash string) bool {
	ret := _m.Called(password, hash)

	return ret.Bool(0)
}

// MockMediaStorage is a mock for the MediaStorage interface.
type MockMediaStorage struct {
	mock.Mock
}

// NewMockMediaStorage creates a mock whose expectations are asserted
// on test cleanup.
func NewMockMediaStorage(t *testing.T) *MockMediaStorage {
	m := &MockMediaStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockMediaStorage) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	ret := _m.Called(ctx, filename, contentType, body)

	return ret.String(0), ret.Error(1)
}

func (_m *MockMediaStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	ret := _m.Called(ctx, key)

	var r0 io.ReadCloser
	if v := ret.Get(0); v != nil {
		r0 = v.(io.ReadCloser)
	}

	return r0, ret.String(1), ret.Error(2)
}
