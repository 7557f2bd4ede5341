// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"

	"cogentcore.org/scenesync/base/parallel"
)

// Strip removes per-entity data identical to base, leaving a delta scene
// that can be transmitted cheaply and rebuilt with [Scene.Merge] against
// the same base. Only equal-length, positionally aligned entity
// collections are comparable: on a length mismatch the call is a no-op,
// preserving the caller's state rather than operating on scenes that have
// diverged. Within an aligned pair, entities are stripped only when their
// ids match.
func (sc *Scene) Strip(base *Scene) {
	n := len(sc.Entities)
	if n != len(base.Entities) {
		return
	}
	parallel.Run(n, opGrain, func(i int) {
		cur, b := sc.Entities[i], base.Entities[i]
		if cur.AsEntityBase().ID == b.AsEntityBase().ID {
			cur.Strip(b)
		}
	})
}

// Merge is the inverse of [Scene.Strip]: for each aligned pair with
// matching ids, fields removed by Strip are restored from base,
// reconstructing a full entity from a partial one. The same equal-length
// no-op guard applies.
func (sc *Scene) Merge(base *Scene) {
	n := len(sc.Entities)
	if n != len(base.Entities) {
		return
	}
	parallel.Run(n, opGrain, func(i int) {
		cur, b := sc.Entities[i], base.Entities[i]
		if cur.AsEntityBase().ID == b.AsEntityBase().ID {
			cur.Merge(b)
		}
	})
}

// Diff populates sc as a delta scene between two full snapshots: settings
// from s1, and per aligned index a fresh entity holding the field-level
// delta of s2 against s1. A length mismatch is a no-op. An identity
// mismatch at an aligned index means the scenes are not diff-able at that
// slot; it is logged as an internal-consistency violation and the slot
// holds an unmodified clone of s1's entity, so the delta stays fully
// populated and nothing is corrupted.
func (sc *Scene) Diff(s1, s2 *Scene) {
	n := len(s1.Entities)
	if n != len(s2.Entities) {
		return
	}
	sc.Settings = s1.Settings
	sc.Entities = make([]Entity, n)
	parallel.Run(n, opGrain, func(i int) {
		e1, e2 := s1.Entities[i], s2.Entities[i]
		id1, id2 := e1.AsEntityBase().ID, e2.AsEntityBase().ID
		if id1 != id2 {
			slog.Error("scene: diff entity identity mismatch, holding first snapshot's entity",
				"index", i, "id1", id1, "id2", id2)
			sc.Entities[i] = e1.Clone(false)
			return
		}
		d := e1.Clone(false)
		d.Diff(e1, e2)
		sc.Entities[i] = d
	})
}

// Lerp populates sc as the interpolation of two full snapshots at fraction
// t (0 = s1, 1 = s2; values outside [0,1] extrapolate at the caller's
// risk). Geometry entities whose topology varies frame to frame (the
// [CacheConstantTopology] bit unset) cannot be meaningfully interpolated
// vertex-wise, so the output holds s1's entity verbatim. A length mismatch
// is a no-op; pairs whose ids disagree leave their slot nil.
func (sc *Scene) Lerp(s1, s2 *Scene, t float32) {
	n := len(s1.Entities)
	if n != len(s2.Entities) {
		return
	}
	sc.Settings = s1.Settings
	sc.Entities = make([]Entity, n)
	parallel.Run(n, opGrain, func(i int) {
		e1, e2 := s1.Entities[i], s2.Entities[i]
		eb1 := e1.AsEntityBase()
		if eb1.ID != e2.AsEntityBase().ID {
			return
		}
		if e1.IsGeometry() && eb1.Cache&CacheConstantTopology == 0 {
			sc.Entities[i] = e1
			return
		}
		l := e1.Clone(false)
		l.Lerp(e1, e2, t)
		sc.Entities[i] = l
	})
}
