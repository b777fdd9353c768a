// Package config loads railfill run files.
//
// A run file is TOML with two tables. [frame] describes the railing frame,
// either as a closed ring of vertices or as explicit frame rods.
// [generation] mirrors [generate.Params]; keys left out keep their defaults.
//
//	[frame]
//	vertices = [[0, 0], [200, 0], [200, 100], [0, 100]]
//	weight_per_meter = 1.2
//
//	[generation]
//	strategy = "directional"
//	seed = 42
//	max_evaluation_duration = "60s"
//
//	[generation.placement]
//	num_rods = 12
//	num_layers = 2
//
//	[generation.evaluator]
//	kind = "quality"
//
// The same shape is accepted as JSON by the HTTP server.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/railing"
)

// DefaultFrameWeight is the frame rod weight (kg/m) used when a run file
// does not set one.
const DefaultFrameWeight = 1.0

// File is a decoded run file.
type File struct {
	Frame      Frame           `toml:"frame" json:"frame"`
	Generation generate.Params `toml:"generation" json:"generation"`
}

// Frame describes the railing frame. Exactly one of Vertices and Rods must
// be set.
type Frame struct {
	Vertices       [][2]float64 `toml:"vertices" json:"vertices,omitempty"`
	Rods           []FrameRod   `toml:"rods" json:"rods,omitempty"`
	WeightPerMeter float64      `toml:"weight_per_meter" json:"weight_per_meter,omitempty"`
}

// FrameRod is one explicit frame rod. A zero weight takes the frame's.
type FrameRod struct {
	Start          [2]float64 `toml:"start" json:"start"`
	End            [2]float64 `toml:"end" json:"end"`
	WeightPerMeter float64    `toml:"weight_per_meter" json:"weight_per_meter,omitempty"`
}

// Default returns a run file with default generation parameters and no
// frame.
func Default() *File {
	return &File{
		Frame:      Frame{WeightPerMeter: DefaultFrameWeight},
		Generation: generate.DefaultParams(),
	}
}

// Load reads and decodes the run file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "run file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read run file")
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return Parse(data)
}

// Parse decodes TOML run file content. Unknown keys are an error so typos
// do not silently fall back to defaults.
func Parse(data []byte) (*File, error) {
	f := Default()
	md, err := toml.Decode(string(data), f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode run file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys in run file: %s", strings.Join(keys, ", "))
	}
	return f, nil
}

// ParseJSON decodes JSON run file content with the same defaults as
// [Parse].
func ParseJSON(data []byte) (*File, error) {
	f := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode run file")
	}
	return f, nil
}

// Validate checks the frame description and generation parameters.
func (f *File) Validate() error {
	_, err := f.Frame.Build()
	return errors.Join(err, f.Generation.Validate())
}

// Build constructs the railing frame.
func (fr Frame) Build() (*railing.Frame, error) {
	weight := fr.WeightPerMeter
	if weight == 0 {
		weight = DefaultFrameWeight
	}
	switch {
	case len(fr.Vertices) > 0 && len(fr.Rods) > 0:
		return nil, errors.New(errors.ErrCodeInvalidFrame, "frame sets both vertices and rods")
	case len(fr.Vertices) > 0:
		pts := make([]r2.Vec, len(fr.Vertices))
		for i, v := range fr.Vertices {
			pts[i] = vec(v)
		}
		return railing.FrameFromVertices(pts, weight)
	case len(fr.Rods) > 0:
		rods := make([]railing.Rod, len(fr.Rods))
		for i, r := range fr.Rods {
			w := r.WeightPerMeter
			if w == 0 {
				w = weight
			}
			rods[i] = railing.Rod{Start: vec(r.Start), End: vec(r.End), WeightPerMeter: w, Layer: railing.FrameLayer}
		}
		return railing.NewFrame(rods)
	}
	return nil, errors.New(errors.ErrCodeInvalidFrame, "frame needs vertices or rods")
}

func vec(p [2]float64) r2.Vec { return r2.Vec{X: p[0], Y: p[1]} }
