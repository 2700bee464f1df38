package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
	"github.com/Reasonofmoon/darlkom-banana/pkg/pipeline"
)

// galleryOpts holds the flags of the gallery command.
type galleryOpts struct {
	dir    string
	role   string
	search string
	force  bool
}

// galleryCommand creates the gallery command.
func (c *CLI) galleryCommand() *cobra.Command {
	var (
		f     frameFlags
		gopts galleryOpts
	)
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Render a thumbnail for every descriptor in the library",
		Long: `Render a thumbnail for every descriptor in the library.

Each thumbnail is written to <dir>/dna_<id>.png. Files that already exist
are skipped unless --force is given, so an interrupted gallery resumes
where it stopped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f, pipeline.ModeThumbnail)
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatPNG}
			return c.runGallery(cmd.Context(), gopts, opts)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&gopts.dir, "dir", "d", "gallery", "output directory")
	fl.StringVar(&gopts.role, "role", dna.RoleAll, "only descriptors whose role bucket contains this")
	fl.StringVarP(&gopts.search, "search", "s", "", "only descriptors whose entry contains this text")
	fl.BoolVar(&gopts.force, "force", false, "overwrite existing thumbnails")
	fl.IntVar(&f.width, "width", 0, "logical thumbnail width")
	fl.IntVar(&f.height, "height", 0, "logical thumbnail height")
	fl.Float64Var(&f.ratio, "ratio", 0, "device pixel ratio")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed for reproducible output (0 = random)")
	return cmd
}

// galleryResult counts what a gallery run did.
type galleryResult struct {
	written, skipped, failed int
}

func (c *CLI) runGallery(ctx context.Context, o galleryOpts, opts pipeline.Options) error {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", o.dir)
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
	selected := selectDescriptors(lib, o.role, o.search)
	if len(selected) == 0 {
		printWarning("No descriptors match")
		return nil
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering gallery...")
	spinner.Start()
	res, err := renderGallery(ctx, runner, selected, o, opts, func(i int, id string) {
		spinner.Update(fmt.Sprintf("Rendering %d/%d %s", i+1, len(selected), id))
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Gallery of %d descriptors", len(selected)))

	printSuccess("Wrote %d thumbnails to %s", res.written, o.dir)
	if res.skipped > 0 {
		printDetail("%d already present", res.skipped)
	}
	if res.failed > 0 {
		printWarning("%d failed (see log)", res.failed)
	}
	return nil
}

// renderGallery renders each descriptor in turn, calling onItem before
// each. A failed descriptor is logged and counted; cancellation stops the run.
func renderGallery(ctx context.Context, runner *pipeline.Runner, ds []dna.Descriptor, o galleryOpts, opts pipeline.Options, onItem func(i int, id string)) (galleryResult, error) {
	var res galleryResult
	for i := range ds {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		d := &ds[i]
		if onItem != nil {
			onItem(i, d.ID)
		}
		path := filepath.Join(o.dir, "dna_"+errors.SafeFileName(d.ID)+".png")
		if !o.force {
			if _, err := os.Stat(path); err == nil {
				res.skipped++
				continue
			}
		}

		out, err := runner.Execute(ctx, pipeline.Input{Descriptor: d}, opts)
		if err == nil {
			err = os.WriteFile(path, out.Artifacts[pipeline.FormatPNG], 0o644)
		}
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			runner.Logger.Warn("thumbnail failed", "id", d.ID, "err", err)
			res.failed++
			continue
		}
		runner.Logger.Debug("thumbnail written", "id", d.ID, "path", path)
		res.written++
	}
	return res, nil
}

// selectDescriptors applies the role filter and search term.
func selectDescriptors(lib *dna.Library, role, search string) []dna.Descriptor {
	ds := lib.Filter(role)
	if search == "" {
		return ds
	}
	keep := make(map[string]bool)
	for _, d := range lib.Search(search) {
		keep[d.ID] = true
	}
	out := ds[:0]
	for _, d := range ds {
		if keep[d.ID] {
			out = append(out, d)
		}
	}
	return out
}
