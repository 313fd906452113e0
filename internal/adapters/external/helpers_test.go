package external

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"allweather.app/internal/mocks"
)

// setupLoggerMock accepts any log call with up to five fields.
func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	args := []interface{}{}
	for i := 0; i <= 5; i++ {
		mockLogger.EXPECT().Debug(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Info(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Warn(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Error(mock.Anything, args...).Maybe()
		args = append(args, mock.Anything)
	}
	return mockLogger
}
