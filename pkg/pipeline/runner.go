package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Reasonofmoon/darlkom-banana/pkg/cache"
	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
	"github.com/Reasonofmoon/darlkom-banana/pkg/observability"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/analyze"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/compose"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/surface"
)

// Runner executes pipeline runs with artifact caching.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// runs. Each run draws on its own surface.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// LoadLibrary reads a descriptor library from path.
func (r *Runner) LoadLibrary(ctx context.Context, path string) (*dna.Library, error) {
	start := time.Now()
	lib, err := dna.LoadFile(path)
	n := 0
	if lib != nil {
		n = lib.Len()
	}
	observability.Render().OnLibraryLoaded(ctx, path, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded library", "path", path, "descriptors", n, "duration", time.Since(start))
	return lib, nil
}

// Execute resolves, draws, measures and encodes one run.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	plan, err := Plan(in, opts.Mode)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:        uuid.NewString(),
		Plan:      plan,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	logger := opts.Logger.With("run", res.ID[:8], "mode", opts.Mode)
	kinds := plan.KindNames()

	keys := r.artifactKeys(plan, opts)
	if keys != nil && !opts.KeepFrame && opts.Swatches == 0 && r.lookup(ctx, keys, res) {
		res.CacheHit = true
		logger.Debug("artifacts from cache", "kinds", kinds)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Mode, inputIDs(in))
	start := time.Now()
	frame, err := draw(plan, opts)
	res.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Mode, kinds, res.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	res.Stats.Frame = analyze.Stats(frame)
	logger.Info("rendered", "kinds", kinds, "width", res.Stats.Frame.Width, "height", res.Stats.Frame.Height, "duration", res.Stats.RenderTime)
	if opts.Swatches > 0 {
		method, _ := analyze.ParseMethod(opts.PaletteMethod)
		res.Swatches = analyze.Palette(frame, opts.Swatches, method)
	}
	if opts.KeepFrame {
		res.Frame = frame
	}

	encodeStart := time.Now()
	for _, f := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := time.Now()
		data, err := Encode(frame, f)
		if err != nil {
			return nil, err
		}
		observability.Export().OnEncode(ctx, f, len(data), time.Since(t))
		res.Artifacts[f] = data
		if keys != nil {
			if err := r.Cache.Set(ctx, keys[f], data, cache.TTLArtifact); err != nil {
				logger.Warn("cache write failed", "format", f, "err", err)
			}
		}
	}
	res.Stats.EncodeTime = time.Since(encodeStart)
	logger.Debug("encoded", "formats", opts.Formats, "duration", res.Stats.EncodeTime)
	return res, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func draw(plan compose.Plan, opts Options) (*image.RGBA, error) {
	w, h := opts.Size()
	s := surface.New(w, h, opts.Ratio)
	defer s.Close()
	if err := compose.Execute(s, plan, compose.WithSeed(opts.Seed)); err != nil {
		return nil, err
	}
	frame := s.Frame()
	if frame == nil || frame.Bounds().Empty() {
		return nil, errors.New(errors.ErrCodeInternal, "render produced no frame")
	}
	return frame, nil
}

// artifactKeys returns the cache key of every requested format, or nil
// when the run is not reproducible.
func (r *Runner) artifactKeys(plan compose.Plan, opts Options) map[string]string {
	if opts.Seed == 0 {
		return nil
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return nil
	}
	h := cache.Hash(data)
	w, ht := opts.Size()
	keys := make(map[string]string, len(opts.Formats))
	for _, f := range opts.Formats {
		keys[f] = cache.ArtifactKey(h, cache.ArtifactKeyOpts{
			Mode:   opts.Mode,
			Width:  w,
			Height: ht,
			Ratio:  opts.Ratio,
			Format: f,
			Seed:   opts.Seed,
		})
	}
	return keys
}

// lookup fills res from the cache if every format is present.
func (r *Runner) lookup(ctx context.Context, keys map[string]string, res *Result) bool {
	found := make(map[string][]byte, len(keys))
	for f, k := range keys {
		data, hit, err := r.Cache.Get(ctx, k)
		if err != nil || !hit {
			return false
		}
		found[f] = data
	}
	res.Artifacts = found
	return true
}

func inputIDs(in Input) []string {
	if in.Descriptor != nil {
		return []string{in.Descriptor.ID}
	}
	var ids []string
	for _, d := range []*dna.Descriptor{in.Roles.Structure, in.Roles.Palette, in.Roles.Material} {
		if d != nil {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
