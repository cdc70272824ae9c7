package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvConfigDir, "/etc/relink")
	t.Setenv(EnvStateDir, "/var/lib/relink")
	t.Setenv(EnvDataDir, "/usr/share/relink")

	p := New()

	assert.Equal(t, "/etc/relink", p.ConfigDir())
	assert.Equal(t, "/var/lib/relink", p.StateDir())
	assert.Equal(t, "/usr/share/relink", p.DataDir())
	assert.Equal(t, filepath.Join("/var/lib/relink", HistoryFile), p.HistoryPath())
}

func TestNew_XDGDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvDataDir, "")

	p := New()

	assert.Equal(t, AppDirName, filepath.Base(p.ConfigDir()))
	assert.Equal(t, AppDirName, filepath.Base(p.StateDir()))
	assert.Equal(t, AppDirName, filepath.Base(p.DataDir()))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/projects/tower.yaml", filepath.Join(home, "projects/tower.yaml")},
		{"~other/x", "~other/x"},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/work/tower.yaml", Resolve("/work", "tower.yaml"))
	assert.Equal(t, "/abs/tower.yaml", Resolve("/work", "/abs/tower.yaml"))
	assert.Equal(t, "", Resolve("/work", ""))
}
