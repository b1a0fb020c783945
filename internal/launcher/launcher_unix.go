//go:build !windows

package launcher

import (
	"os"
	"os/exec"
	"strings"
	"syscall"
)

func renderScript(executable string, args []string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Generated by chartview; removed on exit.\n")
	b.WriteString("exec ")
	b.WriteString(shellQuote(executable))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(shellQuote(a))
	}
	b.WriteByte('\n')
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func scriptCommand(path string) *exec.Cmd {
	return exec.Command("/bin/sh", path)
}

// detach puts the child in its own process group so it outlives terminal
// signals aimed at the GUI and can be killed as a unit.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminate(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGTERM); err != nil {
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return p.Signal(syscall.SIGTERM)
	}
	return nil
}
