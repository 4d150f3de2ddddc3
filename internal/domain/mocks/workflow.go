// Package mocks provides testify doubles of the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
)

// MockWorkflow is a testify mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

var _ domain.Workflow = (*MockWorkflow)(nil)

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted
// when the test ends.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Test(t)

	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

// Compare provides a mock function.
func (_m *MockWorkflow) Compare(ctx context.Context, args domain.CompareArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// Search provides a mock function.
func (_m *MockWorkflow) Search(ctx context.Context, args domain.SearchArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// Schema provides a mock function.
func (_m *MockWorkflow) Schema(ctx context.Context, args domain.SchemaArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// Show provides a mock function.
func (_m *MockWorkflow) Show(ctx context.Context, args domain.ShowArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// Merge provides a mock function.
func (_m *MockWorkflow) Merge(ctx context.Context, args domain.MergeArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}
