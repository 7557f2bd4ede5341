// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHierarchy(t *testing.T) {
	a := NewTransform("/A")
	a.Position = mgl32.Vec3{1, 0, 0}
	b := NewTransform("/A/B")
	b.Position = mgl32.Vec3{0, 2, 0}
	c := NewTransform("/A/B/C")
	c.Position = mgl32.Vec3{0, 0, 3}

	sc := NewScene("h")
	// deliberately out of path order; lookup uses a sorted index
	sc.Entities = []Entity{c, a, b}
	sc.BuildHierarchy()

	assert.Equal(t, -1, a.Parent)
	assert.Same(t, a, sc.Entities[b.Parent].(*Transform))
	assert.Same(t, b, sc.Entities[c.Parent].(*Transform))

	assert.Equal(t, a.Matrix(), a.Local)
	want := a.Matrix().Mul4(b.Matrix()).Mul4(c.Matrix())
	assert.Equal(t, want, c.Global)

	// translations compose: C sits at (1, 2, 3) in world space
	pos := c.Global.Col(3)
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, pos)
}

func TestBuildHierarchyOrphan(t *testing.T) {
	lone := NewTransform("/Missing/Child")
	sc := NewScene("h")
	sc.Entities = []Entity{lone}
	sc.BuildHierarchy()

	// no entity at /Missing: the child is treated as a root
	assert.Equal(t, -1, lone.Parent)
	assert.Equal(t, lone.Local, lone.Global)
}

func TestBuildHierarchyRebuild(t *testing.T) {
	sc := testScene()
	sc.BuildHierarchy()
	cam := sc.Entities[1].AsEntityBase()
	require.NotEqual(t, -1, cam.Parent)

	// renaming and rebuilding recomputes links wholesale
	cam.Path = "/Elsewhere"
	sc.BuildHierarchy()
	assert.Equal(t, -1, cam.Parent)
}

func TestFlattenHierarchy(t *testing.T) {
	sc := NewScene("f")
	group := NewTransform("/G")
	m1 := testMesh("/G/Box", 1)
	m2 := testMesh("/H/Box", 2)
	cam := NewCamera("/G/Eye")
	cam.ID = 3
	sc.Entities = []Entity{group, m1, m2, cam}

	sc.FlattenHierarchy()

	paths := make([]string, len(sc.Entities))
	for i, e := range sc.Entities {
		paths[i] = e.AsEntityBase().Path
	}
	// grouping transforms dropped; collision resolved with a hex suffix;
	// result in sorted name order
	assert.Equal(t, []string{"/Box", "/Box0", "/Eye"}, paths)
	assert.Equal(t, int32(1), sc.FindEntity("/Box").AsEntityBase().ID)
	assert.Equal(t, int32(2), sc.FindEntity("/Box0").AsEntityBase().ID)
}

func TestFlattenHierarchyDeterministic(t *testing.T) {
	build := func() *Scene {
		sc := NewScene("f")
		for i := int32(0); i < 20; i++ {
			m := testMesh("/G/Box", i)
			m.Path = "/G" + string(rune('A'+i%3)) + "/Box"
			sc.Entities = append(sc.Entities, m)
		}
		sc.FlattenHierarchy()
		return sc
	}
	s1, s2 := build(), build()
	require.Len(t, s2.Entities, len(s1.Entities))
	for i := range s1.Entities {
		assert.Equal(t, s1.Entities[i].AsEntityBase().Path, s2.Entities[i].AsEntityBase().Path)
		assert.Equal(t, s1.Entities[i].AsEntityBase().ID, s2.Entities[i].AsEntityBase().ID)
	}
}

func TestFlattenManyCollisions(t *testing.T) {
	sc := NewScene("f")
	for i := int32(0); i < 18; i++ {
		sc.Entities = append(sc.Entities, testMesh("/N/Box", i))
	}
	sc.FlattenHierarchy()
	require.Len(t, sc.Entities, 18)
	// suffixes are hexadecimal: the 18th duplicate probes past 0-f to 10
	assert.NotNil(t, sc.FindEntity("/Box"))
	assert.NotNil(t, sc.FindEntity("/Boxf"))
	assert.NotNil(t, sc.FindEntity("/Box10"))
}
