package logfile

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
)

// Viewer opens a written log in an external program without waiting for it.
type Viewer struct {
	// Command is the configured viewer, possibly with arguments.
	Command string

	goos  string
	start func(*exec.Cmd) error
}

// NewViewer creates a viewer for the configured command. An empty command
// falls back to the platform opener. $EDITOR is not consulted: the viewer
// runs detached from the terminal, so it has to be a GUI program.
func NewViewer(command string) *Viewer {
	return &Viewer{
		Command: command,
		goos:    runtime.GOOS,
		start:   (*exec.Cmd).Start,
	}
}

// Argv returns the program and leading arguments used to open a file.
func (v *Viewer) Argv() []string {
	if fields := strings.Fields(v.Command); len(fields) > 0 {
		return fields
	}
	switch v.goos {
	case "windows":
		return []string{"notepad.exe"}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// Open launches the viewer on path. The process is started and released;
// its exit status is never observed.
func (v *Viewer) Open(path string) error {
	argv := append(v.Argv(), path)
	logging.LogCommand(argv[0], argv[1:])

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := v.start(cmd); err != nil {
		return errors.Wrapf(err, errors.ErrViewerLaunch, "failed to launch %s", argv[0]).
			WithDetail("path", path)
	}
	if cmd.Process != nil {
		_ = cmd.Process.Release()
	}
	return nil
}
