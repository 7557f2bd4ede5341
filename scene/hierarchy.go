// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/scenesync/base/parallel"
	"github.com/go-gl/mathgl/mgl32"
)

// BuildHierarchy reconstructs parent links and transform matrices from the
// entities' path-encoded names. Parents are resolved by binary search over
// a path-sorted index (O(log n) per entity), local matrices are composed
// from each entity's transform fields, and global matrices are composed up
// the parent chain (O(depth) per entity).
//
// The work runs in two parallel passes with a barrier between them: global
// composition reads ancestor parent links and local matrices, so it must
// not start until the first pass has finished for every entity.
func (sc *Scene) BuildHierarchy() {
	n := len(sc.Entities)
	order := sc.sortOrder[:0]
	for i := 0; i < n; i++ {
		order = append(order, i)
	}
	slices.SortFunc(order, func(a, b int) int {
		return strings.Compare(sc.Entities[a].AsEntityBase().Path, sc.Entities[b].AsEntityBase().Path)
	})
	sc.sortOrder = order

	find := func(path string) int {
		if path == "" {
			return -1
		}
		i, ok := slices.BinarySearchFunc(order, path, func(ei int, p string) int {
			return strings.Compare(sc.Entities[ei].AsEntityBase().Path, p)
		})
		if !ok {
			return -1
		}
		return order[i]
	}

	parallel.RunBlocked(n, hierarchyGrain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			eb := sc.Entities[i].AsEntityBase()
			eb.Parent = find(eb.ParentPath())
			eb.Local = eb.Matrix()
		}
	})
	parallel.RunBlocked(n, hierarchyGrain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			eb := sc.Entities[i].AsEntityBase()
			eb.Global = sc.globalMatrix(eb)
		}
	})
}

// globalMatrix composes eb's local matrix with all ancestor locals,
// root first.
func (sc *Scene) globalMatrix(eb *EntityBase) mgl32.Mat4 {
	if eb.Parent < 0 {
		return eb.Local
	}
	return sc.globalMatrix(sc.Entities[eb.Parent].AsEntityBase()).Mul4(eb.Local)
}

// FlattenHierarchy collapses the entities into a flat, uniquely named set
// for non-hierarchical consumers. Pure grouping [Transform] nodes are
// dropped. Each remaining entity keeps its short display name; on a name
// collision a hexadecimal suffix is probed sequentially (0, 1, 2, ...)
// until a free slot is found. The collection is rebuilt in sorted name
// order with single-level "/name" paths, so the result is deterministic
// for a given input.
func (sc *Scene) FlattenHierarchy() {
	named := make(map[string]Entity, len(sc.Entities))
	for _, e := range sc.Entities {
		if e.Type() == EntityTransform {
			continue
		}
		name := e.AsEntityBase().Name()
		if _, taken := named[name]; !taken {
			named[name] = e
			continue
		}
		for i := 0; ; i++ {
			probe := name + strconv.FormatInt(int64(i), 16)
			if _, taken := named[probe]; !taken {
				named[probe] = e
				break
			}
		}
	}

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	slices.Sort(names)

	ents := make([]Entity, 0, len(named))
	for _, name := range names {
		e := named[name]
		e.AsEntityBase().Path = "/" + name
		ents = append(ents, e)
	}
	sc.Entities = ents
}
