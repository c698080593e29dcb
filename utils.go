package main

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

func runCmd(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	return errors.Wrapf(cmd.Run(), "running %s", name)
}

func ClearTerminal() error {
	switch runtime.GOOS {
	case "windows":
		return runCmd("cmd", "/c", "cls")
	default:
		return runCmd("clear")
	}
}

func UserHomeDir() string {
	if runtime.GOOS == "windows" {
		home := os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		return home + "\\"
	}
	return os.Getenv("HOME") + "/"
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// isInteractive reports whether key controls and the live display can be used.
func isInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}
