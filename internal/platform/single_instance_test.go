package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstanceLock(t *testing.T) {
	dir := t.TempDir()

	guard, err := AcquireSingleInstanceIn(dir, "fptclock")
	require.NoError(t, err)
	assert.FileExists(t, guard.Path())

	_, err = AcquireSingleInstanceIn(dir, "fptclock")
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstanceIn(dir, "fptclock")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Path())
}
