// Command malphasc is the thin CLI driver that wires the lexer, parser,
// and lowering pass together: source text in, textual LLVM IR out.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/irgen"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/lower"
	"github.com/malphas-lang/malphas-lang/internal/parser"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&easy.Formatter{
		LogFormat: "%lvl%: %msg%\n",
	})
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		moduleName string
		outPath    string
		verbose    bool
		lint       bool
	)

	root := &cobra.Command{
		Use:   "malphasc [file]",
		Short: "Ahead-of-time compiler for the malphas language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			name := moduleName
			if name == "" {
				name = cfg.ModuleName
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if lint {
				return runLint(cmd, string(source))
			}

			ir, err := compile(string(source), name, constantsFromConfig(cfg))
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), ir)
				return nil
			}
			return os.WriteFile(outPath, []byte(ir), 0o644)
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.Flags().StringVar(&moduleName, "module", "", "override the emitted module's name")
	root.Flags().StringVarP(&outPath, "out", "o", "", "write IR to this file instead of stdout")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().BoolVar(&lint, "lint", false, "report every lexical and syntactic error instead of compiling")

	return root
}

// compile runs the full source-to-IR pipeline, formatting the first
// diagnostic it encounters into a human-readable error on failure.
func compile(source, moduleName string, constants map[string]irgen.Constant) (string, error) {
	log.WithField("module", moduleName).Debug("parsing")

	file, err := parser.ParseFile(source)
	if err != nil {
		return "", formatPipelineError(err)
	}

	log.Debug("lowering to IR")
	module, err := lower.New(file, moduleName, constants)
	if err != nil {
		return "", formatPipelineError(err)
	}

	return module.String(), nil
}

// constantsFromConfig converts the YAML-sourced named constants (always
// read as float64, per original_source's own `"pi"` seed) into the value
// shape internal/lower consults.
func constantsFromConfig(cfg config) map[string]irgen.Constant {
	if len(cfg.Constants) == 0 {
		return nil
	}
	constants := make(map[string]irgen.Constant, len(cfg.Constants))
	for name, v := range cfg.Constants {
		constants[name] = irgen.ConstFloatValue(types.F64, v)
	}
	return constants
}

// runLint reports every lexical and syntactic error CollectErrors can
// find in one pass, instead of compile's fail-fast first-error behavior —
// the lint/diagnostics mode SPEC_FULL.md §3 describes for tooling (e.g.
// an editor integration) that wants the full picture of a broken file.
func runLint(cmd *cobra.Command, source string) error {
	var found []error
	if err := lexer.CollectErrors(source); err != nil {
		found = append(found, flattenErrors(err)...)
	}
	if err := parser.CollectErrors(source); err != nil {
		found = append(found, flattenErrors(err)...)
	}
	if len(found) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no issues found")
		return nil
	}
	for _, e := range found {
		fmt.Fprintln(cmd.ErrOrStderr(), formatPipelineError(e))
	}
	return fmt.Errorf("%d issue(s) found", len(found))
}

func flattenErrors(err error) []error {
	if merr, ok := err.(*multierror.Error); ok {
		return merr.Errors
	}
	return []error{err}
}

// toDiagnostic is implemented by parser.Error and lower.Error so the
// driver can render either stage's failures uniformly.
type toDiagnostic interface {
	ToDiagnostic() diag.Diagnostic
}

func formatPipelineError(err error) error {
	d, ok := err.(toDiagnostic)
	if !ok {
		return err
	}
	diagnostic := d.ToDiagnostic()
	return fmt.Errorf("%s[%s] %s (at %d:%d)",
		diagnostic.Stage, diagnostic.Code, diagnostic.Message,
		diagnostic.Span.Start, diagnostic.Span.End)
}
