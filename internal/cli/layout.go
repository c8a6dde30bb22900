package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/buildinfo"
	"github.com/openaims/sectorflow/pkg/classify"
	"github.com/openaims/sectorflow/pkg/engine"
	"github.com/openaims/sectorflow/pkg/errors"
	"github.com/openaims/sectorflow/pkg/layout"
)

// layoutCommand creates the layout command for computing allocation layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		mode    string
		width   float64
		height  float64
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [allocations.json]",
		Short: "Compute a flow or radial layout from an allocation file",
		Long: `Compute a flow or radial layout from an allocation file.

The layout command takes a JSON file containing a flat list of sector
allocations ({"code", "name", "percentage"} objects) and computes the full
hierarchical layout: tree, geometry, and colors. The output is a layout.json
document that downstream renderers consume.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], layoutParams{
				output:  output,
				mode:    mode,
				width:   width,
				height:  height,
				noCache: noCache,
				refresh: refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "layout mode: flow (default), radial")
	cmd.Flags().Float64Var(&width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "canvas height (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

type layoutParams struct {
	output  string
	mode    string
	width   float64
	height  float64
	noCache bool
	refresh bool
}

// runLayout loads the allocations, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, p layoutParams) error {
	allocs, err := loadAllocations(input)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	modeStr := p.mode
	if modeStr == "" {
		modeStr = cfg.Layout.Mode
	}
	mode, err := engine.ParseMode(modeStr)
	if err != nil {
		return err
	}

	canvas := cfg.Canvas()
	if p.width > 0 {
		canvas.Width = p.width
	}
	if p.height > 0 {
		canvas.Height = p.height
	}

	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", mode))
	spinner.Start()

	result, cacheHit, err := runner.Layout(ctx, engine.Options{
		Allocations: allocs,
		Lookup:      classify.MustDefault(),
		Mode:        mode,
		Canvas:      canvas,
		Refresh:     p.refresh,
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := engine.RenderJSON(result,
		engine.WithJSONIndent(),
		engine.WithJSONGenerator(appName+" "+buildinfo.Version))
	if err != nil {
		return fmt.Errorf("serialize layout: %w", err)
	}

	if p.output == "-" {
		fmt.Println(string(data))
		return nil
	}

	outputPath := p.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Summary.NodeCount, result.Summary.LinkCount, cacheHit)
	printDetail("total value %.4g · depth %d", result.Summary.TotalValue, result.Summary.MaxDepth)
	printNewline()
	printNextStep("Browse", appName+" browse "+outputPath)

	return nil
}

// loadAllocations reads and validates an allocation file.
func loadAllocations(path string) ([]allocation.Leaf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "allocation file not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	allocs, err := allocation.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return allocs, nil
}

// canvasLabel formats a canvas for display.
func canvasLabel(c layout.Canvas) string {
	return fmt.Sprintf("%g×%g", c.Width, c.Height)
}
