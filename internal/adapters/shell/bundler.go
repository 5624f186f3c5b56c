// Package shell provides the subprocess bundler adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"github.com/conbuild/conbuild/internal/core/domain"
	"github.com/conbuild/conbuild/internal/core/ports"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler using os/exec.
type Bundler struct {
	logger ports.Logger
}

// NewBundler creates a new Bundler.
func NewBundler(logger ports.Logger) *Bundler {
	return &Bundler{logger: logger}
}

// Bundle runs the configured bundler command in workDir. The configuration is
// exposed to the process through CONBUILD_* environment variables and the
// attributes sequence is appended to the argument list: scalars verbatim,
// mappings as key=value pairs in their declared order.
//
// Stdout and stderr stream into the telemetry vertex attached to ctx when one
// is present, otherwise line-wise into the logger. The exit code of a failed
// run is attached to the returned error.
func (b *Bundler) Bundle(ctx context.Context, cfg *domain.BuildConfig, workDir string) error {
	if len(cfg.BundleCommand) == 0 {
		return zerr.New("no bundler command configured")
	}

	name := cfg.BundleCommand[0]
	args := append([]string{}, cfg.BundleCommand[1:]...)
	args = append(args, attributeArgs(cfg.Attributes)...)

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // command comes from the user's configuration
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"CONBUILD_TAG="+cfg.TagName,
		"CONBUILD_APP_TITLE="+cfg.AppTitle,
		"CONBUILD_OUTPUT_DIR="+cfg.OutputDir,
	)

	cmd.Stdout, cmd.Stderr = b.streams(ctx)

	b.logger.Info("running bundler: " + strings.Join(cfg.BundleCommand, " "))
	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "bundler execution failed"), "exit_code", exitCode)
	}
	return nil
}

// streams picks the output sinks: the telemetry vertex on the context when
// present, the logger otherwise.
func (b *Bundler) streams(ctx context.Context) (stdout, stderr io.Writer) {
	if v, ok := ports.VertexFromContext(ctx); ok {
		return v.Stdout(), v.Stderr()
	}
	return &logWriter{logger: b.logger, warn: false},
		&logWriter{logger: b.logger, warn: true}
}

func attributeArgs(attrs []domain.Attribute) []string {
	var args []string
	for _, attr := range attrs {
		if attr.IsScalar() {
			args = append(args, attr.Value)
			continue
		}
		keys := make([]string, 0, len(attr.Pairs))
		for k := range attr.Pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			args = append(args, k+"="+attr.Pairs[k])
		}
	}
	return args
}

// logWriter forwards process output to the logger one line at a time.
type logWriter struct {
	logger ports.Logger
	warn   bool
	buf    strings.Builder
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		text := w.buf.String()
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			break
		}
		w.emit(text[:idx])
		w.buf.Reset()
		w.buf.WriteString(text[idx+1:])
	}
	return len(p), nil
}

func (w *logWriter) emit(line string) {
	if line == "" {
		return
	}
	if w.warn {
		w.logger.Warn(line)
		return
	}
	w.logger.Info(line)
}
