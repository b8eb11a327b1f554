package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gzhole/web3threat/internal/threatmodel"
)

// CommandError is returned when the child process exits non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("`%s` failed with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\nstderr:\n" + s
	}
	return msg
}

// Exec runs the web3-threatmodel binary once per request. Calls are
// sequential and have no timeout beyond the caller's context.
type Exec struct {
	path   string
	logger *slog.Logger
}

// NewExec resolves appPath. A bare name is looked up in PATH first. Anything
// else must name an existing regular file and is made absolute, so a bare
// name found in the working directory still runs.
func NewExec(appPath string, logger *slog.Logger) (*Exec, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path, err := resolveApp(appPath)
	if err != nil {
		return nil, err
	}
	return &Exec{path: path, logger: logger}, nil
}

func resolveApp(appPath string) (string, error) {
	if appPath == "" {
		return "", goerr.Wrap(ErrAppNotFound, "empty app path")
	}

	if !strings.ContainsRune(appPath, filepath.Separator) && !strings.ContainsRune(appPath, '/') {
		if p, err := exec.LookPath(appPath); err == nil {
			return p, nil
		}
	}

	info, err := os.Stat(appPath)
	if err != nil || info.IsDir() {
		return "", goerr.Wrap(ErrAppNotFound, "app not found", goerr.V("path", appPath))
	}
	abs, err := filepath.Abs(appPath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve app path", goerr.V("path", appPath))
	}
	return abs, nil
}

// Path returns the resolved executable.
func (e *Exec) Path() string {
	return e.path
}

func (e *Exec) Profiles(ctx context.Context) ([]string, error) {
	out, err := e.run(ctx, "--list-profiles")
	if err != nil {
		return nil, err
	}
	return threatmodel.ParseListing(out), nil
}

func (e *Exec) Fetch(ctx context.Context, profile, section string) (string, error) {
	args := []string{"--profile", profile}
	if section != "" {
		args = append(args, "--section", section)
	}
	return e.run(ctx, args...)
}

func (e *Exec) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("running threat model app", "path", e.path, "args", args)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CommandError{
				Args:     append([]string{filepath.Base(e.path)}, args...),
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return "", goerr.Wrap(err, "failed to start threat model app", goerr.V("path", e.path))
	}
	return stdout.String(), nil
}
