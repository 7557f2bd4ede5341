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

func TestStripMergeInverse(t *testing.T) {
	base := testScene()
	cur := base.Clone(false)

	// change a few things relative to the base
	cam := cur.Entities[1].(*Camera)
	cam.Position = mgl32.Vec3{5, 5, 5}
	cam.FOV = 60
	ms := cur.Entities[3].(*Mesh)
	ms.Points[0] = mgl32.Vec3{0.5, 0, 0}
	want := cur.Clone(false)

	cur.Strip(base)

	// unchanged entities lost their duplicated data
	lt := cur.Entities[2].(*Light)
	assert.NotZero(t, lt.Stripped&StrippedPosition)
	assert.NotZero(t, lt.Stripped&StrippedParams)
	assert.Zero(t, lt.Intensity)

	// changed fields survived
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, cam.Position)
	assert.Equal(t, float32(60), cam.FOV)
	require.NotNil(t, ms.Points)
	assert.Nil(t, ms.Normals, "unchanged mesh arrays are stripped to nil")

	cur.Merge(base)
	assert.Equal(t, want.Entities, cur.Entities)
}

func TestStripAlignmentGuard(t *testing.T) {
	sc := testScene()   // 5 entities
	base := testScene() // extend to 6
	base.Entities = append(base.Entities, NewTransform("/Extra"))

	before := snapshot(t, sc)
	sc.Strip(base)
	assert.Equal(t, before, snapshot(t, sc), "length mismatch must be a pure no-op")
	sc.Merge(base)
	assert.Equal(t, before, snapshot(t, sc))
}

func TestStripIDMismatch(t *testing.T) {
	sc := testScene()
	base := testScene()
	base.Entities[1].AsEntityBase().ID = 99

	sc.Strip(base)
	// aligned slots with matching ids stripped, the mismatched one untouched
	assert.Zero(t, sc.Entities[1].AsEntityBase().Stripped)
	assert.NotZero(t, sc.Entities[2].AsEntityBase().Stripped)
}

func TestDiffMerge(t *testing.T) {
	s1 := testScene()
	s2 := s1.Clone(false)
	s2.Entities[4].(*Points).Points[1] = mgl32.Vec3{7, 8, 9}
	s2.Entities[0].AsEntityBase().Position = mgl32.Vec3{1, 0, 0}

	var d Scene
	d.Diff(s1, s2)
	require.Len(t, d.Entities, len(s1.Entities))
	assert.Equal(t, s1.Settings, d.Settings)

	// unchanged entity became a fully stripped shell
	cam := d.Entities[1].(*Camera)
	assert.Zero(t, cam.FOV)
	assert.NotZero(t, cam.Stripped&StrippedParams)

	// merging the delta onto s1 reproduces s2
	d.Merge(s1)
	assert.Equal(t, s2.Entities, d.Entities)
}

func TestDiffIdentityMismatch(t *testing.T) {
	s1 := testScene()
	s2 := testScene()
	s2.Entities[2].AsEntityBase().ID = 42

	var d Scene
	d.Diff(s1, s2)
	require.Len(t, d.Entities, len(s1.Entities))

	// mismatched slot holds an unmodified clone of s1's entity
	assert.Equal(t, s1.Entities[2], d.Entities[2])
	assert.NotSame(t, s1.Entities[2], d.Entities[2])
}

func TestDiffAlignmentGuard(t *testing.T) {
	s1 := testScene()
	s2 := testScene()
	s2.Entities = s2.Entities[:4]

	d := NewScene("keepme")
	d.Diff(s1, s2)
	assert.Empty(t, d.Entities)
	assert.Equal(t, "keepme", d.Settings.Name)
}

func TestLerpBoundaries(t *testing.T) {
	s1 := testScene()
	s2 := s1.Clone(false)
	eb2 := s2.Entities[1].AsEntityBase()
	eb2.Position = mgl32.Vec3{10, 20, 30}
	s2.Entities[3].(*Mesh).Points[2] = mgl32.Vec3{3, 3, 0}

	var at0 Scene
	at0.Lerp(s1, s2, 0)
	require.Len(t, at0.Entities, len(s1.Entities))
	assert.Equal(t, s1.Entities[1].AsEntityBase().Position, at0.Entities[1].AsEntityBase().Position)
	assert.Equal(t, s1.Entities[3].(*Mesh).Points, at0.Entities[3].(*Mesh).Points)

	var at1 Scene
	at1.Lerp(s1, s2, 1)
	p := at1.Entities[1].AsEntityBase().Position
	for i := 0; i < 3; i++ {
		assert.InDelta(t, eb2.Position[i], p[i], 1e-5)
	}
	assert.InDelta(t, 3, at1.Entities[3].(*Mesh).Points[2][0], 1e-5)
}

func TestLerpMidpoint(t *testing.T) {
	s1 := testScene()
	s2 := s1.Clone(false)
	s2.Entities[1].AsEntityBase().Position = mgl32.Vec3{2, 0, -12} // from {0, 1, -10}

	var mid Scene
	mid.Lerp(s1, s2, 0.5)
	p := mid.Entities[1].AsEntityBase().Position
	assert.InDelta(t, 1, p[0], 1e-5)
	assert.InDelta(t, 0.5, p[1], 1e-5)
	assert.InDelta(t, -11, p[2], 1e-5)
}

func TestLerpNonConstantTopologyHolds(t *testing.T) {
	s1 := testScene()
	s2 := s1.Clone(false)
	s1.Entities[3].AsEntityBase().Cache &^= CacheConstantTopology
	s2.Entities[3].AsEntityBase().Cache &^= CacheConstantTopology
	s2.Entities[3].(*Mesh).Points[0] = mgl32.Vec3{100, 100, 100}

	var out Scene
	out.Lerp(s1, s2, 0.75)
	// varying topology: hold s1's entity verbatim, regardless of t
	assert.Same(t, s1.Entities[3], out.Entities[3])
	// constant-topology points entity still interpolates
	assert.NotSame(t, s1.Entities[4], out.Entities[4])
}

func TestLerpAlignmentGuard(t *testing.T) {
	s1 := testScene()
	s2 := testScene()
	s2.Entities = append(s2.Entities, NewTransform("/Extra"))

	out := NewScene("held")
	out.Lerp(s1, s2, 0.5)
	assert.Empty(t, out.Entities)
	assert.Equal(t, "held", out.Settings.Name)
}
