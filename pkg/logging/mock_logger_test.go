package logging

import "github.com/stretchr/testify/mock"

// testMockLogger records calls for decorator and fan-out tests.
type testMockLogger struct {
	mock.Mock
}

func (m *testMockLogger) Info(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *testMockLogger) Warn(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *testMockLogger) Error(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *testMockLogger) Debug(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *testMockLogger) WithFields(fields ...Field) Logger {
	args := m.Called(fields)
	return args.Get(0).(Logger)
}

func (m *testMockLogger) Close() error {
	args := m.Called()
	return args.Error(0)
}
