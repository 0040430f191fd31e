package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/phase0/internal/boundary"
	"github.com/papapumpkin/phase0/internal/config"
	"github.com/papapumpkin/phase0/internal/imports"
	"github.com/papapumpkin/phase0/internal/ui"
	"github.com/papapumpkin/phase0/internal/watch"
)

var boundariesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check imports against the boundary rules",
	Long: "Evaluates every import edge against the boundary rules. Edges come from a file " +
		"(--edges path, or - for stdin) with one \"from to\" pair per line, or by default " +
		"from scanning the Go sources under --root.",
	Args: cobra.NoArgs,
	RunE: runBoundariesCheck,
}

func init() {
	addBoundariesCheckFlags(boundariesCheckCmd)
	boundariesCmd.AddCommand(boundariesCheckCmd)
}

// addBoundariesCheckFlags registers CLI flags for the check subcommand.
func addBoundariesCheckFlags(cmd *cobra.Command) {
	cmd.Flags().String("edges", "", "edge list file, - for stdin (default: scan Go imports)")
	cmd.Flags().String("root", ".", "source tree root for scanning and watching")
	cmd.Flags().Bool("watch", false, "rerun the check whenever sources or the config change")
}

// errViolations is returned when a check reports findings.
var errViolations = errors.New("boundary violations found")

// checkRun holds the inputs of one evaluation run.
type checkRun struct {
	cfg     config.Config
	printer *ui.Printer
	root    string
	edges   string
	stdin   io.Reader
}

// once loads a fresh policy snapshot, gathers edges and reports findings.
func (r *checkRun) once(ctx context.Context) ([]boundary.Finding, error) {
	pol, err := boundary.Load(r.cfg.BoundariesFile)
	if err != nil {
		return nil, err
	}
	classifier, err := boundary.NewCachedClassifier(pol, r.cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	edges, err := r.collectEdges(ctx)
	if err != nil {
		return nil, err
	}
	r.printer.Debug(fmt.Sprintf("%d edge(s), policy %s", len(edges), r.cfg.BoundariesFile))

	findings := boundary.NewChecker(pol, classifier).CheckAll(edges)
	for _, f := range findings {
		r.printer.Finding(f)
	}
	r.printer.CheckSummary(len(edges), findings)
	return findings, nil
}

func (r *checkRun) collectEdges(ctx context.Context) ([]boundary.Edge, error) {
	switch r.edges {
	case "":
		mod, err := imports.ModulePath(r.root)
		if err != nil {
			return nil, err
		}
		return imports.ScanGo(ctx, r.root, mod)
	case "-":
		return imports.ReadEdges(r.stdin)
	default:
		f, err := os.Open(r.edges)
		if err != nil {
			return nil, fmt.Errorf("opening edge list: %w", err)
		}
		defer f.Close()
		return imports.ReadEdges(f)
	}
}

func runBoundariesCheck(cmd *cobra.Command, args []string) error {
	cfg, printer, err := loadConfig()
	if err != nil {
		return err
	}

	run := &checkRun{cfg: cfg, printer: printer, stdin: cmd.InOrStdin()}
	run.root, _ = cmd.Flags().GetString("root")
	run.edges, _ = cmd.Flags().GetString("edges")
	watchMode, _ := cmd.Flags().GetBool("watch")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !watchMode {
		findings, err := run.once(ctx)
		if err != nil {
			return err
		}
		if len(findings) > 0 {
			return errViolations
		}
		return nil
	}

	if run.edges == "-" {
		return errors.New("--watch cannot read edges from stdin")
	}
	return watchChecks(ctx, run)
}

// watchChecks reruns the check after each debounced change until interrupted.
// Every rerun loads a new policy; config errors are reported and the watch
// continues so the file can be fixed in place.
func watchChecks(ctx context.Context, run *checkRun) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath, err := filepath.Abs(run.cfg.BoundariesFile)
	if err != nil {
		return err
	}
	extra := []string{cfgPath}
	if run.edges != "" {
		edgesPath, err := filepath.Abs(run.edges)
		if err != nil {
			return err
		}
		extra = append(extra, edgesPath)
	}

	root, err := filepath.Abs(run.root)
	if err != nil {
		return err
	}
	w, err := watch.New(root, watch.HasExt([]string{".go"}, extra...))
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	w.Start()
	defer w.Stop()
	for _, p := range extra {
		if err := w.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}

	if _, err := run.once(ctx); err != nil {
		run.printer.Error(err.Error())
	}
	run.printer.Info("watching for changes (ctrl-c to stop)")

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			run.printer.Debug(fmt.Sprintf("%d file(s) changed", len(change.Files)))
			if _, err := run.once(ctx); err != nil {
				run.printer.Error(err.Error())
			}
		}
	}
}
