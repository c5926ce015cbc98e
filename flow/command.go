package flow

import (
	"context"
	"io"
	"strings"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
	"go.uber.org/zap"
)

// ShellFunc starts a shell bound to ctx.
type ShellFunc func(ctx context.Context) (*gosh.Service, error)

// CommandLauncher presents a flow by running a host command with the flow
// descriptor as its argument; the trimmed standard output of a successful run
// is the flow result. Every launch runs in its own shell, closed when the
// launch context is done.
type CommandLauncher struct {
	shell    ShellFunc
	command  string
	detached bool
	logger   *zap.Logger
}

type runResult struct {
	output string
	code   int
	err    error
}

// Launch runs the command in the background.
func (l *CommandLauncher) Launch(ctx context.Context, launch *Launch, done ResultFunc) error {
	service, err := l.shell(ctx)
	if err != nil {
		return err
	}
	command := "VENU_FLOW_ID=" + quote(launch.ID) + " " + l.command + " " + quote(launch.Descriptor)
	result := make(chan runResult, 1)
	go func() {
		output, code, err := service.Run(ctx, command)
		result <- runResult{output: output, code: code, err: err}
	}()
	go func() {
		defer closeShell(service)
		var run runResult
		select {
		case run = <-result:
		case <-ctx.Done():
			l.logger.Debug("flow command abandoned", zap.String("id", launch.ID), zap.Error(ctx.Err()))
			return
		}
		if l.detached {
			return
		}
		if run.err != nil || run.code != 0 {
			l.logger.Warn("flow command failed", zap.String("id", launch.ID), zap.Int("code", run.code), zap.Error(run.err))
			done(nil)
			return
		}
		output := strings.TrimSpace(run.output)
		if output == "" {
			done(nil)
			return
		}
		done(&output)
	}()
	return nil
}

func closeShell(service *gosh.Service) {
	if closer, ok := any(service).(io.Closer); ok {
		_ = closer.Close()
	}
}

// quote wraps s in single quotes for a POSIX shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// CommandOption represents command launcher option
type CommandOption func(l *CommandLauncher)

// WithDetached ignores command output; results are expected through Deliver,
// keyed by the VENU_FLOW_ID passed to the command.
func WithDetached() CommandOption {
	return func(l *CommandLauncher) {
		l.detached = true
	}
}

// WithCommandLogger sets logger
func WithCommandLogger(logger *zap.Logger) CommandOption {
	return func(l *CommandLauncher) {
		l.logger = logger
	}
}

// WithShell sets the shell factory; a local gosh shell by default.
func WithShell(shell ShellFunc) CommandOption {
	return func(l *CommandLauncher) {
		l.shell = shell
	}
}

func localShell(ctx context.Context) (*gosh.Service, error) {
	return gosh.New(ctx, local.New())
}

// NewCommandLauncher creates a launcher running command in a gosh shell per launch.
func NewCommandLauncher(command string, options ...CommandOption) *CommandLauncher {
	ret := &CommandLauncher{shell: localShell, command: command, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
