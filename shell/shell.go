// Package shell is a convenience wrapper around subprocess execution: an
// immutable environment/working-directory carrier, command templating, and
// line-oriented streaming of subprocess output. It is pure I/O plumbing and
// shares no state with the injection engine.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// InputSource supplies the full stdin content for a command.
type InputSource func() string

// LineSink receives one trimmed line of subprocess output together with the
// process stdin writer, so interactive commands can be answered line by
// line. Sinks are invoked serially from the multiplexing loop.
type LineSink func(line string, stdin io.Writer)

// ExitError reports a nonzero exit status from a command run with Check.
type ExitError struct {
	Cmd  string
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("command failed with exit status %d: %s", e.Code, e.Cmd)
}

var _ error = ExitError{}

// Shell carries an environment and working directory for command execution.
// Shells are immutable: Env and Cd return derived copies.
type Shell struct {
	env map[string]string
	dir string
	log *zap.Logger
}

// An Option configures a new Shell.
type Option func(*Shell)

// WithEnv replaces the inherited process environment with the digested form
// of the given map.
func WithEnv(env EnvMap) Option {
	return func(s *Shell) {
		s.env = DigestEnv(env)
	}
}

// WithDir sets the working directory.
func WithDir(dir string) Option {
	return func(s *Shell) {
		s.dir = dir
	}
}

// WithLogger sets the logger used for debug-level command diagnostics. The
// default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.log = logger
		}
	}
}

// New creates a Shell inheriting the process environment and current
// working directory unless options say otherwise.
func New(opts ...Option) *Shell {
	s := &Shell{
		env: environMap(),
		log: zap.NewNop(),
	}

	if wd, err := os.Getwd(); err == nil {
		s.dir = wd
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func environMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

// Env returns a copy of the shell with the digested extra variables merged
// over the current environment.
func (s *Shell) Env(extra EnvMap) *Shell {
	merged := make(map[string]string, len(s.env)+len(extra))
	for k, v := range s.env {
		merged[k] = v
	}
	for k, v := range DigestEnv(extra) {
		merged[k] = v
	}
	return &Shell{env: merged, dir: s.dir, log: s.log}
}

// Cd returns a copy of the shell rooted at dir. The directory must exist.
func (s *Shell) Cd(dir string) (*Shell, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid directory %q: not a directory", dir)
	}
	return &Shell{env: s.env, dir: dir, log: s.log}, nil
}

// A RunOption adjusts a single Run or Interact call.
type RunOption func(*runConfig)

type runConfig struct {
	stdin  InputSource
	stdout LineSink
	stderr LineSink
	params EnvMap
	check  bool
}

// WithStdin supplies the command's stdin content.
func WithStdin(src InputSource) RunOption {
	return func(cfg *runConfig) { cfg.stdin = src }
}

// WithStdout registers a sink for stdout lines.
func WithStdout(sink LineSink) RunOption {
	return func(cfg *runConfig) { cfg.stdout = sink }
}

// WithStderr registers a sink for stderr lines.
func WithStderr(sink LineSink) RunOption {
	return func(cfg *runConfig) { cfg.stderr = sink }
}

// WithParam supplies a value for {name} interpolation in the command text.
// Parameters take precedence over same-named environment variables.
func WithParam(name string, value any) RunOption {
	return func(cfg *runConfig) {
		if cfg.params == nil {
			cfg.params = make(EnvMap)
		}
		cfg.params[name] = value
	}
}

// Check makes a nonzero exit status an ExitError.
func Check() RunOption {
	return func(cfg *runConfig) { cfg.check = true }
}

// Run executes cmd through `sh -c` after {name} interpolation from the
// environment and call parameters. Registered line sinks are fed from a
// multiplexing loop that interleaves stdout and stderr line by line as they
// arrive. The exit status is returned even on failure; scan and wait errors
// are combined into the returned error.
func (s *Shell) Run(ctx context.Context, cmd string, opts ...RunOption) (int, error) {
	cfg := applyRunOptions(opts)
	rendered := s.interpolate(cmd, cfg.params)

	proc := exec.CommandContext(ctx, "/bin/sh", "-c", rendered)
	proc.Env = s.environ()
	proc.Dir = s.dir

	s.log.Debug("running command",
		zap.String("cmd", rendered),
		zap.String("dir", s.dir))

	var stdin io.WriteCloser
	var err error
	if cfg.stdin != nil || cfg.stdout != nil || cfg.stderr != nil {
		if stdin, err = proc.StdinPipe(); err != nil {
			return -1, err
		}
	}

	type pump struct {
		reader io.ReadCloser
		sink   LineSink
	}

	pumps := make([]pump, 0, 2)
	if cfg.stdout != nil {
		r, err := proc.StdoutPipe()
		if err != nil {
			return -1, err
		}
		pumps = append(pumps, pump{reader: r, sink: cfg.stdout})
	}
	if cfg.stderr != nil {
		r, err := proc.StderrPipe()
		if err != nil {
			return -1, err
		}
		pumps = append(pumps, pump{reader: r, sink: cfg.stderr})
	}

	if err := proc.Start(); err != nil {
		return -1, err
	}

	if cfg.stdin != nil {
		if _, err := io.WriteString(stdin, cfg.stdin()); err != nil {
			return -1, multierr.Append(err, proc.Wait())
		}
	}

	// Without sinks there is no interactive writer, so stdin can close as
	// soon as its content is written.
	if stdin != nil && len(pumps) == 0 {
		if err := stdin.Close(); err != nil {
			return -1, multierr.Append(err, proc.Wait())
		}
	}

	var scanErrs error
	if len(pumps) > 0 {
		type outLine struct {
			text string
			sink LineSink
		}

		lines := make(chan outLine)
		errs := make(chan error, len(pumps))

		var wg sync.WaitGroup
		for _, p := range pumps {
			wg.Add(1)
			go func(p pump) {
				defer wg.Done()
				scanner := bufio.NewScanner(p.reader)
				scanner.Buffer(make([]byte, 64*1024), 1024*1024)
				for scanner.Scan() {
					lines <- outLine{text: strings.TrimSpace(scanner.Text()), sink: p.sink}
				}
				if err := scanner.Err(); err != nil {
					errs <- err
				}
			}(p)
		}

		go func() {
			wg.Wait()
			close(lines)
			close(errs)
		}()

		for line := range lines {
			line.sink(line.text, stdin)
		}
		for err := range errs {
			scanErrs = multierr.Append(scanErrs, err)
		}

		if stdin != nil {
			if err := stdin.Close(); err != nil {
				scanErrs = multierr.Append(scanErrs, err)
			}
		}
	}

	code, err := s.wait(proc, rendered, cfg.check)
	s.log.Debug("command exited",
		zap.String("cmd", rendered),
		zap.Int("status", code))

	return code, multierr.Append(scanErrs, err)
}

// Interact executes cmd attached to the caller's stdin, stdout, and stderr.
func (s *Shell) Interact(ctx context.Context, cmd string, opts ...RunOption) (int, error) {
	cfg := applyRunOptions(opts)
	rendered := s.interpolate(cmd, cfg.params)

	proc := exec.CommandContext(ctx, "/bin/sh", "-c", rendered)
	proc.Env = s.environ()
	proc.Dir = s.dir
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr

	s.log.Debug("running interactive command", zap.String("cmd", rendered))

	if err := proc.Start(); err != nil {
		return -1, err
	}

	return s.wait(proc, rendered, cfg.check)
}

// Output runs cmd, capturing and trimming its stdout.
func (s *Shell) Output(ctx context.Context, cmd string, opts ...RunOption) (string, error) {
	cfg := applyRunOptions(opts)
	rendered := s.interpolate(cmd, cfg.params)

	proc := exec.CommandContext(ctx, "/bin/sh", "-c", rendered)
	proc.Env = s.environ()
	proc.Dir = s.dir

	out, err := proc.Output()
	if err != nil {
		return "", fmt.Errorf("command failed: %s: %w", rendered, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Output runs cmd under a default shell, capturing and trimming its stdout.
func Output(ctx context.Context, cmd string) (string, error) {
	return New().Output(ctx, cmd)
}

func applyRunOptions(opts []RunOption) runConfig {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// wait reaps the process and maps its exit status. A nonzero status is only
// an error under Check; any other wait failure always is.
func (s *Shell) wait(proc *exec.Cmd, rendered string, check bool) (int, error) {
	err := proc.Wait()
	code := proc.ProcessState.ExitCode()

	if _, ok := err.(*exec.ExitError); ok {
		if check {
			return code, &ExitError{Cmd: rendered, Code: code}
		}
		return code, nil
	}
	if err != nil {
		return code, err
	}
	if check && code != 0 {
		return code, &ExitError{Cmd: rendered, Code: code}
	}

	return code, nil
}

// interpolate renders {name} placeholders from call parameters and the
// shell environment, parameters first.
func (s *Shell) interpolate(cmd string, params EnvMap) string {
	values := make(map[string]string, len(s.env)+len(params))
	for k, v := range s.env {
		values[k] = v
	}
	for k, v := range DigestParams(params) {
		values[k] = v
	}

	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(cmd)
}

// environ flattens the shell environment into KEY=VALUE form, sorted for
// reproducible process invocation.
func (s *Shell) environ() []string {
	keys := make([]string, 0, len(s.env))
	for k := range s.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+s.env[k])
	}
	return env
}
