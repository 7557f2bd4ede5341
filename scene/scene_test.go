// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMesh returns a small two-triangle quad mesh.
func testMesh(path string, id int32) *Mesh {
	ms := NewMesh(path)
	ms.ID = id
	ms.Points = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	ms.Normals = []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	ms.UV = []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	ms.Indices = []int32{0, 1, 2, 0, 2, 3}
	ms.Cache |= CacheConstantTopology
	return ms
}

// testScene builds a small scene exercising every asset and entity kind.
func testScene() *Scene {
	sc := NewScene("test")

	root := NewTransform("/Root")
	root.ID = 1
	cam := NewCamera("/Root/Camera")
	cam.ID = 2
	cam.Position = mgl32.Vec3{0, 1, -10}
	lt := NewLight("/Root/Light", LightPoint)
	lt.ID = 3
	lt.Intensity = 2
	ms := testMesh("/Root/Body", 4)
	pt := NewPoints("/Root/Scatter")
	pt.ID = 5
	pt.Points = []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}}
	pt.IDs = []int32{10, 11}
	pt.Cache |= CacheConstantTopology
	sc.Entities = []Entity{root, cam, lt, ms, pt}

	tx := &Texture{Format: TextureRGBA8, Width: 2, Height: 2, Data: []byte{1, 2, 3, 4}}
	tx.Name = "checker"
	mt := &Material{Color: mgl32.Vec4{1, 0, 0, 1}, Metallic: 0.5, Roughness: 0.25}
	mt.Name = "red"
	clip := &AnimationClip{Animations: []*Animation{{
		Path:      "/Root/Body",
		Positions: []Vec3Key{{0, mgl32.Vec3{0, 0, 0}}, {1, mgl32.Vec3{0, 2, 0}}},
		Rotations: []QuatKey{{0, mgl32.QuatIdent()}},
		Visibles:  []BoolKey{{0, true}, {0.5, false}},
	}}}
	clip.Name = "bounce"
	au := &Audio{SampleRate: 48000, Channels: 2, Data: []byte{9, 9}}
	au.Name = "clap"
	fa := &FileAsset{Data: []byte("payload")}
	fa.Name = "notes.txt"
	sc.Assets = []Asset{tx, mt, clip, au, fa}

	sc.Constraints = []Constraint{{Path: "/Root/Body", Data: []byte{1, 2, 3}}}
	return sc
}

// snapshot serializes sc for byte-wise modification checks.
func snapshot(t *testing.T, sc *Scene) []byte {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, sc.Write(&b))
	return b.Bytes()
}

func TestHash(t *testing.T) {
	sc := testScene()
	h := sc.Hash()
	assert.NotZero(t, h)
	assert.Equal(t, h, sc.Hash())

	// order-independent: hash sums per-element hashes
	sc2 := testScene()
	sc2.Entities[0], sc2.Entities[1] = sc2.Entities[1], sc2.Entities[0]
	assert.Equal(t, h, sc2.Hash())

	// content-dependent
	sc2.Entities[0].AsEntityBase().Position = mgl32.Vec3{9, 9, 9}
	assert.NotEqual(t, h, sc2.Hash())
}

func TestFindEntity(t *testing.T) {
	sc := testScene()
	e := sc.FindEntity("/Root/Camera")
	require.NotNil(t, e)
	assert.Equal(t, int32(2), e.AsEntityBase().ID)
	assert.Nil(t, sc.FindEntity("/Nope"))
}

func TestClear(t *testing.T) {
	sc := testScene()
	sc.Clear()
	assert.Empty(t, sc.Entities)
	assert.Empty(t, sc.Assets)
	assert.Empty(t, sc.Constraints)
	assert.Equal(t, LeftHanded, sc.Settings.Handedness)
	assert.Equal(t, float32(1), sc.Settings.ScaleFactor)
}

func TestClone(t *testing.T) {
	sc := testScene()
	c := sc.Clone(false)

	require.Len(t, c.Entities, len(sc.Entities))
	assert.Equal(t, sc.Entities, c.Entities)
	assert.Equal(t, sc.Settings, c.Settings)
	assert.Equal(t, sc.Constraints, c.Constraints)

	// positional, not sorted
	for i := range sc.Entities {
		assert.Equal(t, sc.Entities[i].AsEntityBase().ID, c.Entities[i].AsEntityBase().ID)
	}

	// deep: mutating the original does not affect the clone
	sc.Entities[3].(*Mesh).Points[0] = mgl32.Vec3{-1, -1, -1}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Entities[3].(*Mesh).Points[0])

	// assets are shared
	assert.Equal(t, sc.Assets[0], c.Assets[0])
}

func TestCloneDetach(t *testing.T) {
	sc := testScene()
	sc.Entities[1].AsEntityBase().Reference = "/Root/Body"
	sc.BuildHierarchy()
	require.NotEqual(t, -1, sc.Entities[1].AsEntityBase().Parent)

	c := sc.Clone(true)
	for _, e := range c.Entities {
		eb := e.AsEntityBase()
		assert.Equal(t, -1, eb.Parent)
		assert.Empty(t, eb.Reference)
	}
}

func TestEntityPathHelpers(t *testing.T) {
	eb := NewTransform("/A/B/C").AsEntityBase()
	assert.Equal(t, "C", eb.Name())
	assert.Equal(t, "/A/B", eb.ParentPath())

	root := NewTransform("/A").AsEntityBase()
	assert.Equal(t, "A", root.Name())
	assert.Equal(t, "", root.ParentPath())
}
