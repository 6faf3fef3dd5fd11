// Package action invokes the recorder binary and the system clipboard.
package action

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/whispr-io/whisprtray/internal/config"
)

// EnvBinary overrides the recorder binary path when set.
const EnvBinary = "WHISPR_BIN"

// DefaultBinary is the recorder binary name resolved from PATH.
const DefaultBinary = "whispr"

// Flags the recorder accepts.
const (
	FlagToggle       = "--toggle"
	FlagPasteLast    = "--paste-last"
	FlagShow         = "--show"
	FlagShowSettings = "--show-settings"
	FlagQuit         = "--quit"
)

// launcherConfig is the optional indicator.json override file.
type launcherConfig struct {
	Binary string `json:"binary"`
}

// ResolveBinary returns the recorder binary to invoke: the env
// override, then the launcher config file, then the default name.
func ResolveBinary() string {
	if bin := os.Getenv(EnvBinary); bin != "" {
		return bin
	}

	if path, err := config.LauncherFile(); err == nil {
		var cfg launcherConfig
		if err := config.LoadJSON(path, &cfg); err == nil && cfg.Binary != "" {
			return cfg.Binary
		}
	}

	return DefaultBinary
}

// FlagForAction maps an action name (as used by the send command) to
// the recorder flag.
func FlagForAction(name string) (string, error) {
	switch name {
	case "toggle":
		return FlagToggle, nil
	case "paste-last":
		return FlagPasteLast, nil
	case "show":
		return FlagShow, nil
	case "show-settings":
		return FlagShowSettings, nil
	case "quit":
		return FlagQuit, nil
	default:
		return "", fmt.Errorf("unknown action %q", name)
	}
}

// Runner invokes the recorder. Invocations are fire-and-forget: a
// failure is logged, never retried, and never surfaced to the user.
// The worst case is a no-op click.
type Runner struct {
	binary string
}

// NewRunner creates a runner for the resolved recorder binary.
func NewRunner() *Runner {
	return &Runner{binary: ResolveBinary()}
}

// Binary returns the resolved recorder binary.
func (r *Runner) Binary() string {
	return r.binary
}

// Invoke runs the recorder with a single flag.
func (r *Runner) Invoke(flag string) {
	cmd := exec.Command(r.binary, flag)
	if err := cmd.Start(); err != nil {
		log.Printf("[action] %s %s: %v", r.binary, flag, err)
		return
	}
	go func() {
		_ = cmd.Wait()
	}()
}

func (r *Runner) Toggle()       { r.Invoke(FlagToggle) }
func (r *Runner) PasteLast()    { r.Invoke(FlagPasteLast) }
func (r *Runner) Show()         { r.Invoke(FlagShow) }
func (r *Runner) ShowSettings() { r.Invoke(FlagShowSettings) }
func (r *Runner) Quit()         { r.Invoke(FlagQuit) }

// Copy places transcript text on the system clipboard.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
