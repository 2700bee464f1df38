// Package compose orchestrates renders: it resolves a [Plan] from one or
// more descriptors and executes it on a surface.
//
// Every render clears the whole canvas first, so nothing accumulates on a
// reused surface. A render that fails before drawing, for a missing
// surface or a hybrid request with no roles, leaves the surface's frame
// untouched.
package compose

import (
	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
	"github.com/Reasonofmoon/darlkom-banana/pkg/fonts"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/pattern"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/postfx"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/surface"
)

// labelAlpha is the opacity of the thumbnail label.
const labelAlpha = 0.8

type config struct {
	seed uint64
}

// Option configures a render.
type Option func(*config)

// WithSeed makes randomized programs reproducible. Zero means unseeded.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// RenderThumbnail draws the thumbnail of d on s.
func RenderThumbnail(s *surface.Surface, d dna.Descriptor, opts ...Option) error {
	return Execute(s, PlanThumbnail(d), opts...)
}

// Render draws d at full fidelity on s.
func Render(s *surface.Surface, d dna.Descriptor, opts ...Option) error {
	return Execute(s, PlanSingle(d), opts...)
}

// RenderHybrid draws a hybrid of the assigned roles on s.
func RenderHybrid(s *surface.Surface, roles Roles, opts ...Option) error {
	if !s.Ready() {
		return errors.New(errors.ErrCodeInvalidTarget, "surface is missing or closed")
	}
	plan, err := PlanHybrid(roles)
	if err != nil {
		return err
	}
	return Execute(s, plan, opts...)
}

// Execute runs plan on s at the surface's current logical size.
func Execute(s *surface.Surface, plan Plan, opts ...Option) error {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}

	if !s.Ready() {
		return errors.New(errors.ErrCodeInvalidTarget, "surface is missing or closed")
	}
	w, h := s.Size()
	c, err := s.Prepare(w, h)
	if err != nil {
		return err
	}
	defer c.Release()

	c.Clear(plan.Colors.Primary)
	rng := render.NewRand(cfg.seed)
	params := pattern.Params{
		Width:       c.Width(),
		Height:      c.Height(),
		Colors:      plan.Colors,
		Tier:        plan.Tier,
		StrokeScale: plan.StrokeScale,
		Whitespace:  plan.Whitespace,
		Rand:        rng,
	}

	for _, l := range plan.Layers {
		lp := params
		blended := plan.Layered() || l.Opacity < 1
		if pattern.FrameTransform(l.Kind) {
			// Perturbs what is already drawn; a fresh layer has nothing.
			lp.Opacity = l.Opacity
			blended = false
		}
		if blended {
			c.BeginLayer(l.Blend, l.Opacity)
		}
		if err := pattern.Draw(c, l.Kind, lp); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "draw %s", l.Kind)
		}
		if blended {
			c.EndLayer()
		}
	}

	if plan.Tier == render.TierFull {
		if err := postfx.Apply(c, plan.Effects, rng); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "post-process")
		}
	}

	if plan.Label != "" {
		c.SetColor(plan.Colors.Secondary)
		c.SetAlpha(labelAlpha)
		if err := c.Text(plan.Label, 10, c.Height()-10, fonts.LabelSize); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "draw label")
		}
		c.SetAlpha(1)
	}

	c.Commit()
	return nil
}
