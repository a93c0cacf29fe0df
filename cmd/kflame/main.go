package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/kflame/internal/analysis"
	"github.com/san-kum/kflame/internal/config"
	"github.com/san-kum/kflame/internal/field"
	"github.com/san-kum/kflame/internal/initcond"
	"github.com/san-kum/kflame/internal/sim"
	"github.com/san-kum/kflame/internal/spectral"
	"github.com/san-kum/kflame/internal/storage"
	"github.com/san-kum/kflame/internal/viz"
)

var (
	dataDir    string
	nModes     int
	domainK    float64
	dt         float64
	steps      int
	eps        float64
	aCoeff     float64
	form       string
	seed       int64
	amp        float64
	points     int
	preset     string
	configFile string
	noSave     bool
	plotWidth  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kflame",
		Short: "spectral Kuramoto-Sivashinsky simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kflame", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a trajectory",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named configurations",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tN\tK\tDT\tSTEPS\tEPS\tFORM")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%d\t%g\t%s\n",
					name, c.N, c.K, c.Dt, c.Steps, c.Eps, c.Form)
			}
			w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the final profile and energy history of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 14, "plot height")
	plotCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "spatial sample points")

	heatmapCmd := &cobra.Command{
		Use:   "heatmap [run_id]",
		Short: "render the space-time field of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  heatmapRun,
	}
	heatmapCmd.Flags().IntVar(&plotWidth, "width", 120, "heatmap width")
	heatmapCmd.Flags().IntVar(&plotHeight, "height", 40, "heatmap height")
	heatmapCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "spatial sample points")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "modal energy breakdown of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&plotWidth, "width", 48, "bar width")
	analyzeCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "spatial sample points")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "integrate with a live view of the evolving profile",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, heatmapCmd, analyzeCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&nModes, "n", config.DefaultN, "truncation order")
	cmd.Flags().Float64Var(&domainK, "k", config.DefaultK, "domain scale (length = 2*pi*k)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&eps, "eps", config.DefaultEps, "fourth-derivative scaling")
	cmd.Flags().Float64Var(&aCoeff, "a", config.DefaultA, "nonlinearity coefficient")
	cmd.Flags().StringVar(&form, "form", "derivative", "nonlinearity form (derivative|integral)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for the initial condition")
	cmd.Flags().Float64Var(&amp, "amp", config.DefaultAmp, "initial condition amplitude")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "spatial sample points")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	cmd.Flags().StringVar(&configFile, "config", "", "yaml config file")
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.N = nModes
	}
	if flags.Changed("k") {
		cfg.K = domainK
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("eps") {
		cfg.Eps = eps
	}
	if flags.Changed("a") {
		cfg.A = aCoeff
	}
	if flags.Changed("form") {
		cfg.Form = form
	}
	if flags.Changed("amp") {
		cfg.Amp = amp
	}
	if flags.Changed("points") {
		cfg.SpatialPoints = points
	}
	cfg.Seed = seed
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	simulator, err := sim.New(simCfg)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	c0 := initcond.Random(cfg.N, cfg.Amp, rng)

	start := time.Now()
	result, err := simulator.Run(context.Background(), c0)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	final := result.Modes[len(result.Modes)-1]
	fmt.Printf("integrated %d steps (N=%d, dt=%g) in %v\n",
		result.StepsTaken, cfg.N, cfg.Dt, elapsed.Round(time.Millisecond))
	fmt.Printf("final energy: %.6g\n", analysis.TotalEnergy(final))

	if noSave {
		return nil
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	id, err := store.Save(cfg, result)
	if err != nil {
		return err
	}
	grid := field.SampleGrid(result.Modes, cfg.K, cfg.SpatialPoints)
	if err := store.SaveField(id, grid); err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tN\tK\tDT\tSTEPS\tFORM")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%d\t%s\n",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N, run.K, run.Dt, run.Steps, run.Form)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.LoadMeta(args[0])
	if err != nil {
		return err
	}
	result, err := store.LoadModes(args[0])
	if err != nil {
		return err
	}
	if len(result.Modes) == 0 {
		return fmt.Errorf("run %s has no trajectory", args[0])
	}

	final := result.Modes[len(result.Modes)-1]
	u := field.Reconstruct(final, meta.K)
	xs := field.Points(meta.K, points)
	values := make([]float64, len(xs))
	for i, x := range xs {
		values[i] = u(x)
	}

	fmt.Println(viz.TitleStyle.Render("final profile u(x)"))
	fmt.Println(viz.Profile(values, plotWidth, plotHeight, fmt.Sprintf("t=%.2f", result.Times[len(result.Times)-1])))
	fmt.Println()
	fmt.Println(viz.EnergySeries(analysis.EnergySeries(result.Modes), plotWidth, plotHeight/2))
	return nil
}

func heatmapRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.LoadMeta(args[0])
	if err != nil {
		return err
	}
	result, err := store.LoadModes(args[0])
	if err != nil {
		return err
	}

	grid := field.SampleGrid(result.Modes, meta.K, points)
	fmt.Println(viz.TitleStyle.Render(fmt.Sprintf("space-time field, %s", args[0])))
	fmt.Print(viz.Heatmap(grid, plotWidth, plotHeight, true))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.LoadMeta(args[0])
	if err != nil {
		return err
	}
	result, err := store.LoadModes(args[0])
	if err != nil {
		return err
	}
	if len(result.Modes) == 0 {
		return fmt.Errorf("run %s has no trajectory", args[0])
	}

	final := result.Modes[len(result.Modes)-1]
	fmt.Println(viz.TitleStyle.Render("modal energy at final step"))
	fmt.Print(viz.ModeBars(analysis.ModeEnergy(final), plotWidth))

	u := field.Reconstruct(final, meta.K)
	xs := field.Points(meta.K, points)
	samples := make([]float64, len(xs))
	for i, x := range xs {
		samples[i] = u(x)
	}
	ps := analysis.SpatialSpectrum(samples)
	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	fmt.Printf("\ndominant spatial frequency bin: %d (power %.4g)\n", peak, ps[peak])
	return nil
}

type exportData struct {
	storage.RunMetadata
	Times []float64   `json:"times"`
	Re    [][]float64 `json:"re"`
	Im    [][]float64 `json:"im"`
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.LoadMeta(args[0])
	if err != nil {
		return err
	}
	result, err := store.LoadModes(args[0])
	if err != nil {
		return err
	}

	data := exportData{
		RunMetadata: meta,
		Times:       result.Times,
		Re:          make([][]float64, len(result.Modes)),
		Im:          make([][]float64, len(result.Modes)),
	}
	for i, c := range result.Modes {
		re := make([]float64, len(c))
		im := make([]float64, len(c))
		for m, v := range c {
			re[m] = real(v)
			im[m] = imag(v)
		}
		data.Re[i] = re
		data.Im[i] = im
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	simulator, err := sim.New(simCfg)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	c0 := initcond.Random(cfg.N, cfg.Amp, rng)

	frames := make(chan viz.Frame, 1)
	errs := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer close(frames)
		xs := field.Points(cfg.K, cfg.SpatialPoints)
		lastFrame := time.Time{}
		err := simulator.RunWithCallback(ctx, c0, func(step int, t float64, c spectral.ModeVector) bool {
			// Cap the frame rate; the integrator is much faster than the
			// terminal.
			if time.Since(lastFrame) < time.Second/30 && step != cfg.Steps-1 {
				return true
			}
			lastFrame = time.Now()

			u := field.Reconstruct(c, cfg.K)
			values := make([]float64, len(xs))
			for i, x := range xs {
				values[i] = u(x)
			}
			select {
			case frames <- viz.Frame{
				Step:   step,
				Total:  cfg.Steps,
				Time:   t,
				Values: values,
				Energy: analysis.TotalEnergy(c),
			}:
			case <-ctx.Done():
				return false
			default:
			}
			return true
		})
		errs <- err
	}()

	model := viz.NewLiveModel(frames, errs)
	_, err = tea.NewProgram(model).Run()
	return err
}
