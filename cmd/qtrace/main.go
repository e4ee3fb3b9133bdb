package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/qtrace/internal/analysis"
	"github.com/san-kum/qtrace/internal/circuit"
	"github.com/san-kum/qtrace/internal/config"
	"github.com/san-kum/qtrace/internal/latex"
	"github.com/san-kum/qtrace/internal/pauli"
	"github.com/san-kum/qtrace/internal/qasm"
	"github.com/san-kum/qtrace/internal/session"
	"github.com/san-kum/qtrace/internal/sim"
	"github.com/san-kum/qtrace/internal/storage"
	"github.com/san-kum/qtrace/internal/tui"
	"github.com/san-kum/qtrace/internal/viz"
)

var (
	dataDir    string
	configFile string
	injections []string
	outPath    string
	verbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

func main() {
	rootCmd := &cobra.Command{
		Use:   "qtrace",
		Short: "interactive Pauli error propagation tracer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [circuit]",
		Short: "propagate injected errors through a circuit",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCircuit,
	}
	runCmd.Flags().StringSliceVar(&injections, "inject", nil, "error injections as qubit:label (repeatable)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [circuit]",
		Short: "propagate every single-qubit error",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepCircuit,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded timeline",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a recorded timeline to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded timeline to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportQASMCmd := &cobra.Command{
		Use:   "export-qasm [circuit]",
		Short: "write a circuit as OpenQASM 2.0",
		Args:  cobra.ExactArgs(1),
		RunE:  exportQASM,
	}
	exportQASMCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportLatexCmd := &cobra.Command{
		Use:   "export-latex [circuit]",
		Short: "write a circuit as a qcircuit LaTeX document",
		Args:  cobra.ExactArgs(1),
		RunE:  exportLatex,
	}
	exportLatexCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	importCmd := &cobra.Command{
		Use:   "import [path]",
		Short: "load a circuit file and show its layout",
		Args:  cobra.ExactArgs(1),
		RunE:  importCircuit,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in circuits",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-14s %s\n", name, config.PresetDescription(name))
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, runCmd, sweepCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportQASMCmd,
		exportLatexCmd, importCmd, presetsCmd)

	cobra.OnInitialize(func() {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCircuit resolves a circuit argument: a preset name, an OpenQASM
// file or a JSON circuit file.
func loadCircuit(ref string) (*circuit.Circuit, error) {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".qasm":
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, err
		}
		return qasm.Import(string(data))
	case ".json":
		return circuit.LoadFile(ref)
	}
	c, err := config.GetPreset(ref)
	if err != nil {
		return nil, fmt.Errorf("unknown circuit %q (presets: %s)",
			ref, strings.Join(config.ListPresets(), ", "))
	}
	return c, nil
}

func runCircuit(cmd *cobra.Command, args []string) error {
	circuitRef := config.DefaultCircuit
	if len(args) > 0 {
		circuitRef = args[0]
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) == 0 && cfg.Circuit != "" {
			circuitRef = cfg.Circuit
		}
		if !cmd.Flags().Changed("inject") {
			for _, inj := range cfg.Inject {
				injections = append(injections, fmt.Sprintf("%d:%s", inj.Qubit, inj.Label))
			}
		}
		if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
			dataDir = cfg.DataDir
		}
	}

	c, err := loadCircuit(circuitRef)
	if err != nil {
		return err
	}

	s, err := sim.New(c)
	if err != nil {
		return err
	}

	sess := session.New(s, c, session.NopRenderer{}, logger)
	sess.RecordErrorHistory(false)

	for _, raw := range injections {
		inj, err := config.ParseInjection(raw)
		if err != nil {
			return err
		}
		op, err := pauli.ParsePauli(inj.Label)
		if err != nil {
			return err
		}
		sess.Selected = op
		sess.InjectError(inj.Qubit)
		sess.RecordErrorHistory(true)
	}

	start := time.Now()
	for {
		ok, err := s.StepForward()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		sess.CurrentTime = s.CurrentTime()
		sess.RecordErrorHistory(false)
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	name := circuitName(c, circuitRef)
	runID, err := st.Save(name, c.Qubits, c.Depth(), injections, sess.Entries())
	if err != nil {
		return err
	}

	summary := analysis.Summarize(sess.Entries())
	fmt.Printf("propagated %s in %v\n", name, elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final pattern: %s\n", s.ErrorPattern().Format())
	fmt.Printf("final weight: %d\n", summary.FinalWeight)
	fmt.Printf("max weight: %d\n", summary.MaxWeight)
	fmt.Printf("qubits touched: %d\n", summary.QubitsTouched)
	fmt.Printf("phase flips: %d\n", summary.PhaseFlips)

	return nil
}

func sweepCircuit(cmd *cobra.Command, args []string) error {
	circuitRef := config.DefaultCircuit
	if len(args) > 0 {
		circuitRef = args[0]
	}
	c, err := loadCircuit(circuitRef)
	if err != nil {
		return err
	}

	results, err := sim.Sweep(context.Background(), c)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUBIT\tINJECTED\tFINAL\tWEIGHT")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n",
			r.Qubit, r.Injected, r.Final.Format(), r.Final.Weight())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := analysis.SummarizeSweep(results)
	fmt.Printf("\n%d of %d errors spread beyond one qubit, max weight %d\n",
		st.Spreading, st.Total, st.MaxWeight)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCIRCUIT\tTIME\tQUBITS\tDEPTH\tFINAL\tWEIGHT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\n",
			run.ID,
			run.Circuit,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Qubits,
			run.Depth,
			run.FinalPattern,
			run.FinalWeight,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	entries, err := st.LoadTimeline(runID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no timeline to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("circuit: %s (%d qubits, depth %d)\n\n", meta.Circuit, meta.Qubits, meta.Depth)

	fmt.Println(viz.WeightChart(analysis.WeightSeries(entries), 70, 10))
	fmt.Println()
	fmt.Print(viz.TimelineTable(entries))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	entries, err := st.LoadTimeline(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta.Circuit, meta.Qubits, meta.Depth, meta.Injections, entries)
}

func exportRunCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	entries, err := st.LoadTimeline(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, entries)
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	entries, err := st.LoadTimeline(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.ExportJSONStdout(meta.Circuit, meta.Qubits, meta.Depth, meta.Injections, entries)
	}
	return storage.ExportJSON(outPath, meta.Circuit, meta.Qubits, meta.Depth, meta.Injections, entries)
}

func exportQASM(cmd *cobra.Command, args []string) error {
	c, err := loadCircuit(args[0])
	if err != nil {
		return err
	}
	return writeOut(qasm.Export(c))
}

func exportLatex(cmd *cobra.Command, args []string) error {
	c, err := loadCircuit(args[0])
	if err != nil {
		return err
	}
	return writeOut(latex.Export(c))
}

func importCircuit(cmd *cobra.Command, args []string) error {
	c, err := loadCircuit(args[0])
	if err != nil {
		return err
	}

	name := circuitName(c, args[0])
	fmt.Printf("circuit: %s\n", name)
	fmt.Printf("qubits: %d\n", c.Qubits)
	fmt.Printf("depth: %d\n\n", c.Depth())

	pattern, err := pauli.NewString(c.Qubits)
	if err != nil {
		return err
	}
	fmt.Print(viz.Diagram(c, pattern, -1))
	return nil
}

func writeOut(content string) error {
	if outPath == "" {
		fmt.Print(content)
		return nil
	}
	return os.WriteFile(outPath, []byte(content), 0644)
}

func circuitName(c *circuit.Circuit, ref string) string {
	if c.Name != "" {
		return c.Name
	}
	base := filepath.Base(ref)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
