package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/domain"
	"github.com/rostrace/rostrace/internal/plot"
	"github.com/rostrace/rostrace/internal/record"
	"github.com/rostrace/rostrace/internal/render"
	"github.com/rostrace/rostrace/internal/repository/architecture"
)

var (
	targetSpec string
	xAxis      string
	colorBy    string
	maxLegends int
	allLegends bool
	lstripS    float64
	rstripS    float64

	metricName string
	callbacks  []string
)

var schedulingCmd = &cobra.Command{
	Use:   "scheduling",
	Short: "Render a callback scheduling chart",
	RunE:  runScheduling,
}

var timeseriesCmd = &cobra.Command{
	Use:   "timeseries",
	Short: "Render a metric time-series chart",
	RunE:  runTimeseries,
}

func init() {
	for _, c := range []*cobra.Command{schedulingCmd, timeseriesCmd} {
		c.Flags().StringVar(&xAxis, "xaxis", "system_time", "X axis type (system_time, index, sim_time)")
		c.Flags().StringVar(&colorBy, "color-by", "callback", "Coloring rule (callback, callback_group, node)")
		c.Flags().IntVar(&maxLegends, "max-legends", 20, "Legend entry threshold")
		c.Flags().BoolVar(&allLegends, "all-legends", false, "Emit every legend entry")
		c.Flags().Float64Var(&lstripS, "lstrip", 0, "Seconds to clip from the start of the trace")
		c.Flags().Float64Var(&rstripS, "rstrip", 0, "Seconds to clip from the end of the trace")
	}

	schedulingCmd.Flags().StringVar(&targetSpec, "target", "application",
		"Chart target: application, node:NAME, path:NAME or group:NAME")

	timeseriesCmd.Flags().StringVar(&metricName, "metric", "latency", "Metric to plot (latency, period, frequency)")
	timeseriesCmd.Flags().StringSliceVar(&callbacks, "callback", nil, "Callback unique name to plot (repeatable)")
	_ = timeseriesCmd.MarkFlagRequired("callback")
}

func runScheduling(cmd *cobra.Command, args []string) error {
	app, src, err := loadInputs()
	if err != nil {
		return err
	}

	target, err := resolveTarget(app, targetSpec)
	if err != nil {
		return err
	}

	p, err := plot.NewSchedulingPlot(cliLogger(), target)
	if err != nil {
		return err
	}
	chart, err := p.Generate(src, cliOptions())
	if err != nil {
		return err
	}
	logVerbose("generated scheduling chart with %d callbacks", len(chart.Items))

	renderer := render.NewHTMLRenderer("Callback Scheduling")
	render.PageLegend(renderer, chart.Legend)
	doc, err := renderer.RenderScheduling(chart)
	if err != nil {
		return err
	}

	return writeOutput(doc)
}

func runTimeseries(cmd *cobra.Command, args []string) error {
	app, src, err := loadInputs()
	if err != nil {
		return err
	}

	metric := record.Metric(metricName)
	if !metric.Valid() {
		return fmt.Errorf("unknown metric %q, supported: %s",
			metricName, strings.Join(record.SupportedMetrics(), ", "))
	}

	entities := make([]domain.Entity, 0, len(callbacks))
	for _, name := range callbacks {
		cb := findCallback(app, name)
		if cb == nil {
			return fmt.Errorf("callback %q not found in architecture", name)
		}
		entities = append(entities, cb)
	}

	p, err := plot.NewTimeSeriesPlot(cliLogger(), entities)
	if err != nil {
		return err
	}
	chart, err := p.Generate(src, metric, cliOptions())
	if err != nil {
		return err
	}
	logVerbose("generated %s chart with %d entities", metric, len(chart.Items))

	renderer := render.NewHTMLRenderer(fmt.Sprintf("%s Time Series", metric))
	render.PageLegend(renderer, chart.Legend)
	doc, err := renderer.RenderTimeSeries(chart)
	if err != nil {
		return err
	}

	return writeOutput(doc)
}

func loadInputs() (*domain.Application, *record.MemorySource, error) {
	app, err := architecture.LoadFile(archPath)
	if err != nil {
		return nil, nil, err
	}
	logVerbose("loaded architecture: %d nodes, %d paths", len(app.Nodes), len(app.Paths))

	src, err := record.LoadDump(recordsPath)
	if err != nil {
		return nil, nil, err
	}

	return app, src, nil
}

func cliOptions() plot.Options {
	return plot.Options{
		XAxisType:      plot.XAxisType(xAxis),
		ColoringRule:   plot.ColoringRule(colorBy),
		MaxLegends:     maxLegends,
		ShowAllLegends: allLegends,
		LStripS:        lstripS,
		RStripS:        rstripS,
	}
}

func cliLogger() *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}

// resolveTarget maps a target spec like node:/talker onto the graph
func resolveTarget(app *domain.Application, spec string) (any, error) {
	if spec == "application" || spec == "" {
		return app, nil
	}

	kind, name, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("invalid target %q, expected application, node:NAME, path:NAME or group:NAME", spec)
	}

	switch kind {
	case "node":
		if n := app.FindNode(name); n != nil {
			return n, nil
		}
		return nil, fmt.Errorf("node %q not found in architecture", name)
	case "path":
		if p := app.FindPath(name); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("path %q not found in architecture", name)
	case "group":
		if g := app.FindCallbackGroup(name); g != nil {
			return g, nil
		}
		return nil, fmt.Errorf("callback group %q not found in architecture", name)
	default:
		return nil, fmt.Errorf("unknown target kind %q", kind)
	}
}

func findCallback(app *domain.Application, uniqueName string) *domain.Callback {
	for _, n := range app.Nodes {
		for _, cb := range n.Callbacks() {
			if cb.UniqueName() == uniqueName {
				return cb
			}
		}
	}
	return nil
}

func writeOutput(doc []byte) error {
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", outPath, len(doc))
	return nil
}
