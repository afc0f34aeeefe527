// Package opener launches files in the operator's default application.
package opener

import (
	"fmt"
	"os/exec"
	"strings"
)

// Opener opens a file in its default viewer.
type Opener interface {
	Open(path string) error
}

// Func adapts a function to Opener.
type Func func(path string) error

func (f Func) Open(path string) error { return f(path) }

// Nop never opens anything.
var Nop Opener = Func(func(string) error { return nil })

// Command runs Name with Args followed by the file path and waits for it.
type Command struct {
	Name string
	Args []string
}

func (c Command) Open(path string) error {
	args := append(append([]string(nil), c.Args...), path)
	out, err := exec.Command(c.Name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s %s: %w: %s", c.Name, path, err, msg)
		}
		return fmt.Errorf("%s %s: %w", c.Name, path, err)
	}
	return nil
}

// New returns the opener for the host operating system.
func New() Opener {
	return defaultCommand
}
