// Package opener hands URLs and paths to the operating system's default
// handler.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type command struct {
	name string
	args []string
}

// Opener launches the platform's default handler without waiting for it.
type Opener struct {
	goos  string
	start func(name string, args ...string) error
}

func New() *Opener {
	return &Opener{goos: runtime.GOOS, start: startDetached}
}

// Open asks the system to open target. The launched process is not awaited.
func (o *Opener) Open(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("nothing to open")
	}

	cmd, err := commandFor(o.goos, target)
	if err != nil {
		return err
	}
	return o.start(cmd.name, cmd.args...)
}

func commandFor(goos, target string) (command, error) {
	switch goos {
	case "darwin":
		return command{name: "open", args: []string{target}}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return command{name: "xdg-open", args: []string{target}}, nil
	case "windows":
		return command{name: "cmd", args: []string{"/c", "start", "", target}}, nil
	default:
		return command{}, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
