// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements the scene snapshot container used to synchronize
// 3D state between a content-authoring tool and a consuming runtime.
// A [Scene] holds settings, assets, entities and constraints, and owns the
// tree-wide algorithms: integrity-checked serialization, cloning, the
// base-relative Strip/Merge delta transforms, Diff and Lerp between
// snapshots, hierarchy construction from path-encoded names, flattening
// for non-hierarchical consumers, and the Import pipeline that normalizes
// producer coordinate conventions.
//
// All per-entity operations are free of side effects beyond their receiver,
// which lets the scene-level algorithms fan out across entities in parallel
// without locks.
package scene

import (
	"cogentcore.org/scenesync/base/parallel"
	"github.com/jinzhu/copier"
)

// Parallel grain sizes: per-entity operations are cheap-to-moderate, so
// chunks keep scheduling overhead in check. Purely a scheduling knob.
const (
	opGrain        = 10
	hierarchyGrain = 32
)

// Constraint is an opaque constraint record carried alongside entities.
// The container transports it without interpreting the payload.
type Constraint struct {

	// Path is the hierarchical path of the constrained entity.
	Path string

	// Data is the collaborator-defined constraint payload.
	Data []byte
}

// Scene is a full snapshot: settings, a shared-ownership asset collection,
// an exclusively-owned entity collection, and opaque constraints.
// Entity parent links index into this scene's Entities and never cross
// scene instances.
type Scene struct {

	// Settings is the producer's coordinate convention, reset to
	// canonical by [Scene.Import].
	Settings SceneSettings

	// Assets may be shared with other scenes; scene operations never
	// mutate them (Import mutates animation clips, which by contract are
	// produced per scene).
	Assets []Asset

	// Entities is the ordered entity collection. Order is positional
	// identity for the alignment-sensitive operations (Strip, Merge,
	// Diff, Lerp).
	Entities []Entity

	// Constraints are opaque records passed through serialization.
	Constraints []Constraint

	// sortOrder is the path-sorted entity index built by BuildHierarchy,
	// kept between calls to avoid reallocation. Transient scratch only.
	sortOrder []int
}

// NewScene returns an empty Scene with canonical settings and the
// given name.
func NewScene(name string) *Scene {
	sc := &Scene{}
	sc.Settings.Defaults()
	sc.Settings.Name = name
	return sc
}

// Clear resets the scene to empty, releasing all owned collections.
// Settings return to canonical defaults.
func (sc *Scene) Clear() {
	sc.Settings = SceneSettings{}
	sc.Settings.Defaults()
	sc.Assets = nil
	sc.Entities = nil
	sc.Constraints = nil
	sc.sortOrder = nil
}

// Hash returns the scene validation hash: the 64-bit wraparound sum of
// every asset hash and every entity hash. It is independent of collection
// order.
func (sc *Scene) Hash() uint64 {
	var ret uint64
	for _, a := range sc.Assets {
		ret += a.Hash()
	}
	for _, e := range sc.Entities {
		ret += e.Hash()
	}
	return ret
}

// FindEntity returns the first entity with the given path, or nil.
func (sc *Scene) FindEntity(path string) Entity {
	for _, e := range sc.Entities {
		if e.AsEntityBase().Path == path {
			return e
		}
	}
	return nil
}

// Clone returns a structurally independent scene: settings and constraints
// are copied, assets are shared (per the shared-ownership contract), and
// entities are deep-cloned in parallel, preserving positions. If detach is
// true each entity clone drops its parent linkage and instance reference,
// so a cloned sub-scene is self-contained.
func (sc *Scene) Clone(detach bool) *Scene {
	dst := &Scene{Settings: sc.Settings}
	dst.Assets = make([]Asset, len(sc.Assets))
	copy(dst.Assets, sc.Assets)
	if len(sc.Constraints) > 0 {
		_ = copier.CopyWithOption(&dst.Constraints, &sc.Constraints, copier.Option{DeepCopy: true})
	}
	dst.Entities = make([]Entity, len(sc.Entities))
	parallel.Run(len(sc.Entities), opGrain, func(i int) {
		dst.Entities[i] = sc.Entities[i].Clone(detach)
	})
	return dst
}
