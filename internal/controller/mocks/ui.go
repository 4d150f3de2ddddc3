// Package mocks provides testify doubles of the controller interfaces.
package mocks

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/controller"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// MockUI is a testify mock of controller.UI.
type MockUI struct {
	mock.Mock
}

var _ controller.UI = (*MockUI)(nil)

// NewMockUI creates a MockUI whose expectations are asserted when the test
// ends.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// DisplayComparison provides a mock function.
func (_m *MockUI) DisplayComparison(sign1, sign2 m.SignRef, comparison m.SignComparison) error {
	ret := _m.Called(sign1, sign2, comparison)

	return ret.Error(0)
}

// DisplayResults provides a mock function.
func (_m *MockUI) DisplayResults(rs m.ResultSet) error {
	ret := _m.Called(rs)

	return ret.Error(0)
}

// DisplaySchema provides a mock function.
func (_m *MockUI) DisplaySchema(name string, lines []m.OutlineLine) error {
	ret := _m.Called(name, lines)

	return ret.Error(0)
}

// DisplaySign provides a mock function.
func (_m *MockUI) DisplaySign(sign m.SignSummary) error {
	ret := _m.Called(sign)

	return ret.Error(0)
}

// DisplayMessage provides a mock function. The formatted message is recorded
// as the single argument.
func (_m *MockUI) DisplayMessage(format string, args ...any) {
	_m.Called(fmt.Sprintf(format, args...))
}
