package logfile

import (
	"errors"
	"io/fs"
	"os/exec"
	"testing"
	"time"

	relinkerrors "github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Tower_Central", "Tower"},
		{"Tower_North_Central", "Tower_North"},
		{"Annex", "Annex"},
		{"_Central", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.title))
		})
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)

	assert.Equal(t, "Tower_ReloadLinks_(2024-03-01 - 09-05-07).log", FileName("Tower_Central", at))
	assert.Equal(t, "Annex_ReloadLinks_(2024-03-01 - 09-05-07).log", FileName("Annex", at))
}

func TestDir(t *testing.T) {
	assert.Equal(t, "/logs", Dir("/logs", "/p/Tower_Central.rvt"))
	assert.Equal(t, "/p", Dir("", "/p/Tower_Central.rvt"))
}

func TestWrite(t *testing.T) {
	fsys := filesystem.NewMemory()
	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)

	path, err := Write(fsys, "/p/logs", "Tower_Central", at, "report body\n")
	require.NoError(t, err)
	assert.Equal(t, "/p/logs/Tower_ReloadLinks_(2024-03-01 - 09-05-07).log", path)

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report body\n", string(data))
}

type readOnlyFS struct {
	types.FS
}

func (readOnlyFS) WriteFile(string, []byte, fs.FileMode) error {
	return fs.ErrPermission
}

func TestWrite_Failure(t *testing.T) {
	fsys := readOnlyFS{FS: filesystem.NewMemory()}

	_, err := Write(fsys, "/p/logs", "Tower_Central", time.Now(), "x")
	require.Error(t, err)
	assert.True(t, relinkerrors.IsErrorCode(err, relinkerrors.ErrLogWrite))
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func testViewer(command string, goos string) (*Viewer, *[]*exec.Cmd) {
	var started []*exec.Cmd
	v := NewViewer(command)
	v.goos = goos
	v.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return nil
	}
	return v, &started
}

func TestViewer_Argv(t *testing.T) {
	tests := []struct {
		name    string
		command string
		goos    string
		want    []string
	}{
		{"configured with args", "code --wait", "linux", []string{"code", "--wait"}},
		{"blank command ignored", "   ", "linux", []string{"xdg-open"}},
		{"windows fallback", "", "windows", []string{"notepad.exe"}},
		{"mac fallback", "", "darwin", []string{"open"}},
		{"linux fallback", "", "linux", []string{"xdg-open"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := testViewer(tt.command, tt.goos)
			assert.Equal(t, tt.want, v.Argv())
		})
	}
}

func TestViewer_IgnoresTerminalEditors(t *testing.T) {
	t.Setenv("VISUAL", "vim")
	t.Setenv("EDITOR", "nano")

	v, started := testViewer("", "linux")
	require.NoError(t, v.Open("/p/Tower.log"))
	require.Len(t, *started, 1)
	assert.Equal(t, []string{"xdg-open", "/p/Tower.log"}, (*started)[0].Args)
}

func TestViewer_Open(t *testing.T) {
	v, started := testViewer("code --wait", "linux")

	require.NoError(t, v.Open("/p/Tower.log"))
	require.Len(t, *started, 1)
	assert.Equal(t, []string{"code", "--wait", "/p/Tower.log"}, (*started)[0].Args)
}

func TestViewer_OpenFailure(t *testing.T) {
	v, _ := testViewer("", "linux")
	v.start = func(*exec.Cmd) error { return errors.New("executable file not found") }

	err := v.Open("/p/Tower.log")
	require.Error(t, err)
	assert.True(t, relinkerrors.IsErrorCode(err, relinkerrors.ErrViewerLaunch))
}
