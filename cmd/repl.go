package cmd

import (
	"fmt"
	"github.com/chzyer/readline"
	"github.com/cottand/dnf/internal/metrics"
	"github.com/cottand/dnf/parser"
	"github.com/cottand/dnf/types"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"io"
	"os"
	"strings"
)

const replHelp = `statements are type expressions or class declarations, separated by ';'
  :classes  list the classes defined so far
  :stats    print normalization counters
  :help     show this message
  :quit     exit (so does ctrl-D)`

func newReplCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:          "repl",
		Short:        "Normalize type expressions interactively",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, cfg)
		},
	}
}

func runRepl(cmd *cobra.Command, cfg *Config) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	rlConfig := &readline.Config{
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye!",
		HistorySearchFold: true,
		Stdin:             io.NopCloser(cmd.InOrStdin()),
		Stdout:            cmd.OutOrStdout(),
		Stderr:            cmd.ErrOrStderr(),
	}
	if interactive {
		rlConfig.Prompt = "dnf> "
		rlConfig.HistoryFile = cfg.HistoryFile
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "dnf: type normalizer, :help for help")
	}
	l, err := readline.NewEx(rlConfig)
	if err != nil {
		return errors.Wrap(err, "could not start line editor")
	}
	defer l.Close()

	r := newRepl(printer{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), classes: true})
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := r.eval(line); quit {
			return nil
		}
	}
}

// repl keeps the state of an interactive session: classes declared in a
// line stay visible to the following ones
type repl struct {
	ctx         *types.TypeCtx
	metrics     *metrics.Normalization
	interpreter *parser.Interpreter
	out         printer
	lines       int
}

func newRepl(out printer) *repl {
	ctx := types.NewTypeCtx()
	m := metrics.New()
	ctx.UseMetrics(m)
	return &repl{
		ctx:         ctx,
		metrics:     m,
		interpreter: parser.NewInterpreter(ctx),
		out:         out,
	}
}

// eval runs a single line, and reports whether the session should end
func (r *repl) eval(line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case ":quit", ":q":
		return true
	case ":help", ":h":
		_, _ = fmt.Fprintln(r.out.out, replHelp)
		return false
	case ":classes":
		for _, class := range r.ctx.Classes() {
			_, _ = classColor.Fprintln(r.out.out, parser.Result{Class: class})
		}
		return false
	case ":stats":
		if err := r.out.stats(r.metrics); err != nil {
			_, _ = errorColor.Fprintln(r.out.errOut, err)
		}
		return false
	}

	r.lines++
	results, errs := r.interpreter.Run(fmt.Sprintf("<%d>", r.lines), line)
	r.out.results(results)
	r.out.errors(errs)
	return false
}
