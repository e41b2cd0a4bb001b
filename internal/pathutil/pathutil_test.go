package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentSuffix(t *testing.T) {
	p := newPaths("test")

	assert.Equal(t, "config_test.yml", p.configFileName)
	assert.Equal(t, "ultradian_test.db", p.dbFileName)
	assert.Equal(t, "store_test", p.storeDirName)
	assert.Equal(t, "status_test.json", p.statusFileName)
	assert.Equal(t, "ultradian_test.log", p.logFileName)

	assert.Equal(t, "ultradian.db", newPaths("").dbFileName)
}

func TestComputePaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()

	t.Cleanup(xdg.Reload)

	p := newPaths("")
	require.NoError(t, p.computePaths())

	dataDir := filepath.Join(xdg.DataHome, "ultradian")

	assert.Equal(t, filepath.Join(xdg.ConfigHome, "ultradian", "config.yml"), p.configFilePath)
	assert.Equal(t, filepath.Join(dataDir, "ultradian.db"), p.dbFilePath)
	assert.Equal(t, filepath.Join(dataDir, "store"), p.storeDirPath)
	assert.Equal(t, filepath.Join(dataDir, "status.json"), p.statusFilePath)
	assert.Equal(t, filepath.Join(dataDir, "log", "ultradian.log"), p.logFilePath)
}
