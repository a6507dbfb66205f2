package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSet_RoutesLeveledCalls(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Infof("placed %d calls", 2)
	Warnf("provider said %q", "no")
	Debugf("debug line")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "placed 2 calls", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, `provider said "no"`, entries[1].Message)
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	err := Init("development", "loud")
	require.Error(t, err)
}
