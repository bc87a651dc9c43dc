package proc

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/process"
)

// findTarget tries the window-title route first, then falls back to scanning
// the process table for a known executable name.
func findTarget(t Target) (int32, error) {
	if pid, ok := findByWindowTitle(t.WindowTitles); ok {
		return pid, nil
	}

	return findByName(t.ProcessNames)
}

func findByName(names []string) (int32, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, fmt.Errorf("%w: list processes: %v", ErrAttachFailed, err)
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}

		for _, want := range names {
			if strings.EqualFold(name, want) {
				return p.Pid, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: no process named %s",
		ErrAttachFailed, strings.Join(names, " or "))
}

func pidExists(pid int32) bool {
	ok, err := process.PidExists(pid)
	return err == nil && ok
}
