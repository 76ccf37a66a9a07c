package cmd

import (
	"fmt"
	"github.com/cottand/dnf/internal/log"
	"github.com/cottand/dnf/internal/metrics"
	"github.com/cottand/dnf/parser"
	"github.com/cottand/dnf/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"os"
)

func newNormalizeCmd() *cobra.Command {
	var (
		classes []string
		file    string
		stats   bool
	)
	cmd := &cobra.Command{
		Use:   "normalize [expr]...",
		Short: "Print the normal form of type expressions",
		Long: `Print the normal form of type expressions, one per line.

Every argument is a sequence of statements separated by ';'. A statement
is either a type expression like 'int & ~Literal[1] | str' or a class
declaration like 'final class B(A)'.`,
		Example: `  dnf normalize 'Literal[True] | Literal[False]'
  dnf normalize --class 'class A' --class 'class B(A)' 'A | B'`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]source, 0, len(classes)+len(args)+1)
			for i, class := range classes {
				sources = append(sources, source{name: fmt.Sprintf("--class[%d]", i), src: class})
			}
			if file != "" {
				content, err := os.ReadFile(file)
				if err != nil {
					return errors.Wrapf(err, "could not read %s", file)
				}
				sources = append(sources, source{name: file, src: string(content)})
			}
			for i, arg := range args {
				sources = append(sources, source{name: fmt.Sprintf("arg[%d]", i), src: arg})
			}
			if len(sources) == 0 {
				return errors.New("nothing to normalize: pass expressions as arguments or use --file")
			}
			out := printer{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			return runNormalize(out, sources, stats)
		},
	}
	cmd.Flags().StringArrayVarP(&classes, "class", "c", nil, "declare a class before normalizing, e.g. 'class B(A)' (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read statements from a file, before the arguments")
	cmd.Flags().BoolVar(&stats, "stats", false, "print normalization counters to stderr")
	return cmd
}

type source struct {
	name string
	src  string
}

func runNormalize(out printer, sources []source, stats bool) error {
	ctx := types.NewTypeCtx()
	m := metrics.New()
	ctx.UseMetrics(m)
	interpreter := parser.NewInterpreter(ctx)
	logger := log.DefaultLogger.With("section", "cli")

	failed := 0
	for _, s := range sources {
		results, errs := interpreter.Run(s.name, s.src)
		out.results(results)
		out.errors(errs)
		failed += len(errs.Errors())
		logger.Debug("normalized source", "source", s.name, "results", len(results), "errors", len(errs.Errors()))
	}
	if stats {
		if err := out.stats(m); err != nil {
			return errors.Wrap(err, "could not gather stats")
		}
	}
	if failed > 0 {
		return errors.Errorf("%d statements failed", failed)
	}
	return nil
}
