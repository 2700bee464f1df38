package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
	"github.com/Reasonofmoon/darlkom-banana/pkg/pipeline"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/compose"
)

// frameFlags holds the flags shared by every rendering command.
type frameFlags struct {
	output   string
	format   string
	width    int
	height   int
	ratio    float64
	aspect   string
	seed     uint64
	swatches int
	palette  string
}

func (f *frameFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fl.StringVarP(&f.format, "format", "f", "", "output format(s): png (default), jpeg, gif, tiff, bmp (comma-separated)")
	fl.IntVar(&f.width, "width", 0, "logical frame width")
	fl.IntVar(&f.height, "height", 0, "logical frame height")
	fl.Float64Var(&f.ratio, "ratio", 0, "device pixel ratio")
	fl.StringVar(&f.aspect, "aspect", "", "fit a W:H frame inside width x height")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed for reproducible output (0 = random)")
	fl.IntVar(&f.swatches, "swatches", 0, "report this many dominant colors of the result")
	fl.StringVar(&f.palette, "palette-method", "", "swatch extraction: dominant (default), kmeans")
}

// options layers pipeline defaults, config values and changed flags.
func (c *CLI) options(cmd *cobra.Command, f *frameFlags, mode string) (pipeline.Options, error) {
	opts := pipeline.Options{Mode: mode, Logger: c.Logger}
	c.Config.Frame(mode).Apply(&opts)

	fl := cmd.Flags()
	if fl.Changed("width") {
		opts.Width = f.width
	}
	if fl.Changed("height") {
		opts.Height = f.height
	}
	if fl.Changed("ratio") {
		opts.Ratio = f.ratio
	}
	if fl.Changed("aspect") {
		a, err := ParseAspect(f.aspect)
		if err != nil {
			return opts, err
		}
		opts.Aspect = a
	}
	if fl.Changed("seed") {
		opts.Seed = f.seed
	}
	if fl.Changed("swatches") {
		opts.Swatches = f.swatches
	}
	if fl.Changed("palette-method") {
		opts.PaletteMethod = f.palette
	}
	switch {
	case f.format != "":
		opts.Formats = parseFormats(f.format)
	case f.output != "" && filepath.Ext(f.output) != "":
		format, err := pipeline.FormatFromPath(f.output)
		if err != nil {
			return opts, err
		}
		opts.Formats = []string{format}
	}
	return opts, opts.Validate()
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f frameFlags
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render one descriptor at full fidelity",
		Long: `Render one descriptor at full fidelity.

The descriptor's pattern kind is classified from its layout and material
attributes, or from its name and report text when those are missing.
Texture tags select post-processing: grain for grain/paper, scanlines for
glitch/digital.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, pipeline.ModeRender)
			if err != nil {
				return err
			}
			return c.runSingle(cmd.Context(), args[0], opts, f.output)
		},
	}
	f.register(cmd)
	return cmd
}

// thumbnailCommand creates the thumbnail command.
func (c *CLI) thumbnailCommand() *cobra.Command {
	var f frameFlags
	cmd := &cobra.Command{
		Use:   "thumbnail <id>",
		Short: "Render a small labeled preview of one descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, pipeline.ModeThumbnail)
			if err != nil {
				return err
			}
			return c.runSingle(cmd.Context(), args[0], opts, f.output)
		},
	}
	f.register(cmd)
	return cmd
}

// hybridCommand creates the hybrid command.
func (c *CLI) hybridCommand() *cobra.Command {
	var (
		f                            frameFlags
		structure, palette, material string
	)
	cmd := &cobra.Command{
		Use:   "hybrid",
		Short: "Blend up to three descriptors by role",
		Long: `Blend up to three descriptors by role.

--structure picks the pattern, --palette the colors and --material the
texture and stroke weight. Missing roles fall back to the first given one
in that order. With exactly two roles the two patterns are layered instead,
the first at low opacity and the second screen-blended over it.`,
		Example: `  darlkom hybrid --structure DNA_004 --palette DNA_017 --material DNA_031
  darlkom hybrid --structure DNA_004 --palette DNA_017 -o layered.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, pipeline.ModeHybrid)
			if err != nil {
				return err
			}
			return c.runHybrid(cmd.Context(), [3]string{structure, palette, material}, opts, f.output)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&structure, "structure", "", "descriptor id for the structure role")
	cmd.Flags().StringVar(&palette, "palette", "", "descriptor id for the palette role")
	cmd.Flags().StringVar(&material, "material", "", "descriptor id for the material role")
	return cmd
}

func (c *CLI) runSingle(ctx context.Context, id string, opts pipeline.Options, output string) error {
	if err := errors.ValidateDescriptorID(id); err != nil {
		return err
	}
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	lib, err := c.loadLibrary(ctx, runner)
	if err != nil {
		return err
	}
	d, err := lib.Find(id)
	if err != nil {
		return err
	}
	return c.execute(ctx, runner, pipeline.Input{Descriptor: &d}, opts, output, defaultName(opts.Mode, d.ID))
}

func (c *CLI) runHybrid(ctx context.Context, ids [3]string, opts pipeline.Options, output string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	lib, err := c.loadLibrary(ctx, runner)
	if err != nil {
		return err
	}
	var slots [3]*dna.Descriptor
	var names []string
	for i, id := range ids {
		if id == "" {
			continue
		}
		d, err := lib.Find(id)
		if err != nil {
			return err
		}
		slots[i] = &d
		names = append(names, d.ID)
	}
	roles := compose.Roles{Structure: slots[0], Palette: slots[1], Material: slots[2]}
	if roles.Count() == 0 {
		return errors.New(errors.ErrCodeInvalidHybrid, "at least one of --structure, --palette, --material is required")
	}
	return c.execute(ctx, runner, pipeline.Input{Roles: roles}, opts, output, defaultName(opts.Mode, names...))
}

// execute runs the pipeline and writes every artifact.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, in pipeline.Input, opts pipeline.Options, output, fallback string) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Mode))
	spinner.Start()
	res, err := runner.Execute(ctx, in, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, output, fallback)
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", strings.Join(res.Plan.KindNames(), " + "))
	for _, p := range paths {
		printFile(p)
	}
	w, h := opts.Size()
	printStats(fmt.Sprintf("%dx%d", w, h), fmt.Sprintf("@%gx", opts.Ratio), res.CacheHit)
	if len(res.Swatches) > 0 {
		printSwatches(res.Swatches)
	}
	return nil
}

// writeArtifacts writes each format to disk and returns the paths written.
// A single format goes to output as given; several formats share output's
// base name with per-format extensions.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) ([]string, error) {
	base := output
	if base == "" {
		base = fallback
	}
	single := len(formats) == 1 && output != "" && filepath.Ext(output) != ""
	if !single {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s artifact produced", f)
		}
		path := base
		if !single {
			path = base + pipeline.Ext(f)
		}
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// defaultName builds an output base name from the mode and descriptor ids.
func defaultName(mode string, ids ...string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, errors.SafeFileName(id))
	}
	return mode + "_" + strings.Join(parts, "-")
}
