package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_WithSharesBuffer(t *testing.T) {
	logger := testutil.NewMockLogger()
	child := logger.Named("editor").With(logging.Op("place"))

	child.Debug("edit committed", logging.Int("atoms", 3))

	assert.True(t, logger.HasMessage("debug", "edit committed"))
	op, ok := logger.Field("edit committed", "op")
	assert.True(t, ok)
	assert.Equal(t, "place", op)
	name, _ := logger.Field("edit committed", "logger")
	assert.Equal(t, "editor", name)
}
