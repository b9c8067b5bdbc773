// SPDX-License-Identifier: MIT
package pairq

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pairsum/evaluator"
)

// configValidate checks Config struct tags.
var configValidate = validator.New()

// Config is the declarative form of a quantity's settings, e.g.
//
//	rmin: 0
//	rmax: 5
//	evaluator: optimized
//	full_sum: false
//	type_masks:
//	  - {a: Na, b: Cl, mask: false}
type Config struct {
	Rmin      float64        `yaml:"rmin" validate:"gte=0"`
	Rmax      float64        `yaml:"rmax" validate:"gte=0,gtefield=Rmin"`
	Evaluator string         `yaml:"evaluator"`
	FullSum   bool           `yaml:"full_sum"`
	MaskAll   *bool          `yaml:"mask_all_pairs,omitempty"`
	PairMasks []PairMaskRule `yaml:"pair_masks,omitempty" validate:"dive"`
	TypeMasks []TypeMaskRule `yaml:"type_masks,omitempty" validate:"dive"`
}

// PairMaskRule is one SetPairMask call. -1 stands for all sites.
type PairMaskRule struct {
	I    int  `yaml:"i" validate:"gte=-1"`
	J    int  `yaml:"j" validate:"gte=-1"`
	Mask bool `yaml:"mask"`
}

// TypeMaskRule is one SetTypeMask call.
type TypeMaskRule struct {
	A    string `yaml:"a" validate:"required"`
	B    string `yaml:"b" validate:"required"`
	Mask bool   `yaml:"mask"`
}

// DefaultConfig returns the settings of a new quantity.
func DefaultConfig() Config {
	return Config{
		Rmin:      DefaultRmin,
		Rmax:      DefaultRmax,
		Evaluator: strings.ToLower(evaluator.KindBasic.String()),
	}
}

// LoadConfig decodes YAML from r on top of DefaultConfig and validates it.
// Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, pairqErrorf(opParseConfig, fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseConfig is LoadConfig over a byte slice.
func ParseConfig(data []byte) (Config, error) {
	return LoadConfig(bytes.NewReader(data))
}

// Validate checks bounds, the evaluator name and mask rules.
func (c Config) Validate() error {
	if math.IsInf(c.Rmin, 0) || math.IsNaN(c.Rmin) || math.IsInf(c.Rmax, 0) || math.IsNaN(c.Rmax) {
		return pairqErrorf(opConfigValidate, fmt.Errorf("rmin=%g rmax=%g: %w", c.Rmin, c.Rmax, ErrBadWindow))
	}
	if err := configValidate.Struct(c); err != nil {
		return pairqErrorf(opConfigValidate, fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}
	if c.Evaluator != "" {
		if _, err := evaluator.ParseKind(c.Evaluator); err != nil {
			return pairqErrorf(opConfigValidate, fmt.Errorf("%w: %w", ErrInvalidArgument, err))
		}
	}
	return nil
}

// Apply validates c and pushes it into b: window, evaluator, summation
// mode, then masks in the order mask_all_pairs, pair_masks, type_masks.
// An evaluator rejected by the dry run leaves the window already applied.
func (c Config) Apply(b *Base) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := b.SetRmax(c.Rmax); err != nil {
		return pairqErrorf(opConfigApply, err)
	}
	if err := b.SetRmin(c.Rmin); err != nil {
		return pairqErrorf(opConfigApply, err)
	}
	if c.Evaluator != "" {
		kind, err := evaluator.ParseKind(c.Evaluator)
		if err != nil {
			return pairqErrorf(opConfigApply, fmt.Errorf("%w: %w", ErrInvalidArgument, err))
		}
		if err := b.SetEvaluator(kind); err != nil {
			return pairqErrorf(opConfigApply, err)
		}
	}
	b.UseFullSum(c.FullSum)
	if c.MaskAll != nil {
		b.MaskAllPairs(*c.MaskAll)
	}
	for _, r := range c.PairMasks {
		b.SetPairMask(r.I, r.J, r.Mask)
	}
	for _, r := range c.TypeMasks {
		b.SetTypeMask(r.A, r.B, r.Mask)
	}
	return nil
}

// Config returns the window, evaluator and summation mode of b. Mask
// rules are not part of the snapshot.
func (b *Base) Config() Config {
	return Config{
		Rmin:      b.rmin,
		Rmax:      b.rmax,
		Evaluator: strings.ToLower(b.ev.Kind().String()),
		FullSum:   b.ev.FullSum(),
	}
}
