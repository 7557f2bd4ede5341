// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"os"
	"strings"

	"cogentcore.org/scenesync/base/parallel"
	"github.com/pelletier/go-toml/v2"
)

// ZUpCorrection selects how [Scene.Import] corrects Z-up producer data.
type ZUpCorrection int32

const (
	// ZUpFlipYZ swaps the Y and Z axes.
	ZUpFlipYZ ZUpCorrection = iota

	// ZUpRotateX rotates -90 degrees about the X axis.
	ZUpRotateX
)

// ImportSettings configure the [Scene.Import] normalization pass.
type ImportSettings struct {

	// MeshSplitUnit is the maximum vertex count per mesh split,
	// for consumers with bounded vertex buffers.
	MeshSplitUnit int32 `default:"65000"`

	// MeshMaxBoneInfluence caps bone influences per vertex.
	MeshMaxBoneInfluence int32 `default:"4"`

	// ZUpCorrection selects the Z-up correction strategy.
	ZUpCorrection ZUpCorrection
}

// Defaults sets standard import limits.
func (is *ImportSettings) Defaults() {
	is.MeshSplitUnit = 65000
	is.MeshMaxBoneInfluence = 4
	is.ZUpCorrection = ZUpFlipYZ
}

// OpenImportSettings loads ImportSettings from a TOML file, applying
// defaults for any field the file omits.
func OpenImportSettings(filename string) (*ImportSettings, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("scene: import settings: %w", err)
	}
	is := &ImportSettings{}
	is.Defaults()
	if err := toml.Unmarshal(b, is); err != nil {
		return nil, fmt.Errorf("scene: import settings: %w", err)
	}
	return is, nil
}

// SanitizeHierarchyPath normalizes a hierarchical path for lookup:
// backslashes become slashes, a leading slash is ensured, and trailing
// slashes are dropped. Empty paths stay empty.
func SanitizeHierarchyPath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if p[0] != '/' {
		p = "/" + p
	}
	for len(p) > 1 && p[len(p)-1] == '/' {
		p = p[:len(p)-1]
	}
	return p
}

// Import normalizes the scene from the producer's coordinate convention to
// the canonical one (LeftHanded, scale 1), deriving a converter pipeline
// from the scene's own settings: a scale correction when the unit scale is
// not 1, an X flip for right-handed producers, and a Z-up correction in
// the strategy cfg selects. Every entity is processed in parallel: paths
// are sanitized, meshes get their bone paths sanitized, splitting forced
// on with cfg's limits, a refine pass, and recomputed bounds. Animation
// clips get the same path sanitization and converter pipeline per channel,
// in parallel within each clip.
//
// Afterward the settings are reset to canonical, so a second Import is a
// no-op: no converters derive from canonical settings.
func (sc *Scene) Import(cfg *ImportSettings) {
	if cfg == nil {
		cfg = &ImportSettings{}
		cfg.Defaults()
	}

	var converters []EntityConverter
	if sf := sc.Settings.ScaleFactor; sf != 1 && sf > 0 {
		converters = append(converters, NewScaleConverter(1/sf))
	}
	if sc.Settings.Handedness.IsRight() {
		converters = append(converters, &FlipXConverter{})
	}
	if sc.Settings.Handedness.IsZUp() {
		switch cfg.ZUpCorrection {
		case ZUpFlipYZ:
			converters = append(converters, &FlipYZConverter{})
		case ZUpRotateX:
			converters = append(converters, NewRotateXConverter())
		}
	}

	parallel.Run(len(sc.Entities), opGrain, func(i int) {
		e := sc.Entities[i]
		eb := e.AsEntityBase()
		eb.Path = SanitizeHierarchyPath(eb.Path)
		eb.Reference = SanitizeHierarchyPath(eb.Reference)

		ms, isMesh := e.(*Mesh)
		if isMesh {
			for _, bn := range ms.Bones {
				bn.Path = SanitizeHierarchyPath(bn.Path)
			}
			ms.RefineSettings.Flags |= RefineSplit
			ms.RefineSettings.SplitUnit = cfg.MeshSplitUnit
			ms.RefineSettings.MaxBoneInfluence = cfg.MeshMaxBoneInfluence
			ms.Refine()
		}

		for _, cv := range converters {
			cv.ConvertEntity(e)
		}
		if isMesh {
			ms.UpdateBounds()
		}
	})

	for _, a := range sc.Assets {
		clip, ok := a.(*AnimationClip)
		if !ok {
			continue
		}
		parallel.Run(len(clip.Animations), opGrain, func(i int) {
			an := clip.Animations[i]
			an.Path = SanitizeHierarchyPath(an.Path)
			for _, cv := range converters {
				cv.ConvertAnimation(an)
			}
		})
	}

	sc.Settings.Handedness = LeftHanded
	sc.Settings.ScaleFactor = 1
}
