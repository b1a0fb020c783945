//go:build windows

package launcher

import (
	"os"
	"os/exec"
	"strings"
	"syscall"
)

const createNewConsole = 0x00000010

func renderScript(executable string, args []string) string {
	var b strings.Builder
	b.WriteString("@echo off\r\n")
	b.WriteString("rem Generated by chartview; removed on exit.\r\n")
	b.WriteString(cmdQuote(executable))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(cmdQuote(a))
	}
	b.WriteString("\r\n")
	return b.String()
}

func cmdQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func scriptCommand(path string) *exec.Cmd {
	return exec.Command("cmd", "/c", path)
}

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewConsole}
}

func terminate(p *os.Process) error {
	return p.Kill()
}
