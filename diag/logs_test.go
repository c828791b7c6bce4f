package diag

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestLogs(t *testing.T) {
	logs := NewLogs()
	logs.Info("#", errors.New("info"))
	logs.Warn("#/Name", errors.Wrapf(ErrMemberNotFound, "member %v", "Name"))
	logs.Error("#/Age", errors.Wrapf(ErrTypeMismatch, "int <- string"))

	assert.Equal(t, 3, logs.Len())
	assert.True(t, logs.HasErrors())
	assert.Len(t, logs.Warnings(), 1)
	assert.Len(t, logs.Errors(), 1)
	assert.True(t, logs.Contains(ErrTypeMismatch))
	assert.False(t, logs.Contains(ErrMaxDepth))
	assert.Len(t, logs.At("#/Name"), 1)
	assert.Contains(t, logs.String(), "[error] #/Age: int <- string: type mismatch")
}
