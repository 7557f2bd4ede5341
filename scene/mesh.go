// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"cogentcore.org/scenesync/base/binx"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshRefineFlags select the steps [Mesh.Refine] performs.
type MeshRefineFlags uint32

const (
	// RefineSplit splits the index buffer into [MeshSplit] ranges no
	// larger than [MeshRefineSettings.SplitUnit] vertices, for consumers
	// with bounded vertex buffers.
	RefineSplit MeshRefineFlags = 1 << iota

	// RefineGenNormals recomputes vertex normals from face normals when
	// the mesh has none.
	RefineGenNormals
)

// MeshRefineSettings control [Mesh.Refine]. [Scene.Import] forces the split
// flag on and fills SplitUnit and MaxBoneInfluence from [ImportSettings].
type MeshRefineSettings struct {
	Flags MeshRefineFlags

	// SplitUnit is the maximum number of vertices per split.
	SplitUnit int32

	// MaxBoneInfluence caps how many bones may weight a single vertex;
	// excess weights are dropped and the rest renormalized. 0 = unlimited.
	MaxBoneInfluence int32
}

// MeshSplit is a contiguous renderable range produced by [Mesh.Refine].
type MeshSplit struct {
	VertexOffset int32
	VertexCount  int32
	IndexOffset  int32
	IndexCount   int32
}

// Bone attaches a skeleton joint to a [Mesh], with one weight per vertex.
type Bone struct {

	// Path is the hierarchical path of the joint entity.
	Path string

	// Bindpose is the inverse bind matrix of the joint.
	Bindpose mgl32.Mat4

	// Weights holds one influence weight per mesh vertex.
	Weights []float32
}

func (bn *Bone) clone() *Bone {
	c := *bn
	c.Weights = slices.Clone(bn.Weights)
	return &c
}

func (bn *Bone) equal(o *Bone) bool {
	return bn.Path == o.Path && bn.Bindpose == o.Bindpose && slices.Equal(bn.Weights, o.Weights)
}

func bonesEqual(a, b []*Bone) bool {
	return slices.EqualFunc(a, b, func(x, y *Bone) bool { return x.equal(y) })
}

func cloneBones(bs []*Bone) []*Bone {
	if bs == nil {
		return nil
	}
	c := make([]*Bone, len(bs))
	for i, bn := range bs {
		c[i] = bn.clone()
	}
	return c
}

// Box is an axis-aligned bounding box as center and half-extents.
type Box struct {
	Center  mgl32.Vec3
	Extents mgl32.Vec3
}

// Radius returns the bounding-sphere radius of the box.
func (bx Box) Radius() float32 {
	e := bx.Extents
	return math32.Sqrt(e[0]*e[0] + e[1]*e[1] + e[2]*e[2])
}

// Mesh is a triangle-mesh entity: indexed vertex data with optional
// normals, texture coordinates, colors and skinning bones.
type Mesh struct {
	EntityBase

	Points  []mgl32.Vec3
	Normals []mgl32.Vec3
	UV      []mgl32.Vec2
	Colors  []mgl32.Vec4

	// Indices index Points in triangle triples.
	Indices []int32

	Bones []*Bone

	// RefineSettings control the next [Mesh.Refine] call.
	RefineSettings MeshRefineSettings

	// Bounds is set by [Mesh.UpdateBounds]. Derived, never persisted.
	Bounds Box

	// Splits is set by [Mesh.Refine] when splitting is enabled.
	// Derived, never persisted.
	Splits []MeshSplit
}

// NewMesh returns an empty Mesh at the given path.
func NewMesh(path string) *Mesh {
	ms := &Mesh{}
	ms.Defaults()
	ms.Path = path
	return ms
}

func (ms *Mesh) Type() EntityType {
	return EntityMesh
}

func (ms *Mesh) IsGeometry() bool {
	return true
}

func (ms *Mesh) Clone(detach bool) Entity {
	c := *ms
	if detach {
		c.Parent = -1
		c.Reference = ""
	}
	c.Points = slices.Clone(ms.Points)
	c.Normals = slices.Clone(ms.Normals)
	c.UV = slices.Clone(ms.UV)
	c.Colors = slices.Clone(ms.Colors)
	c.Indices = slices.Clone(ms.Indices)
	c.Bones = cloneBones(ms.Bones)
	c.Splits = slices.Clone(ms.Splits)
	return &c
}

// Strip blanks out vertex data identical to base's. Slice fields use nil
// as the stripped marker; [Mesh.Merge] restores them from the base.
func (ms *Mesh) Strip(base Entity) {
	b, ok := base.(*Mesh)
	if !ok {
		return
	}
	ms.stripBase(&b.EntityBase)
	if slices.Equal(ms.Points, b.Points) {
		ms.Points = nil
	}
	if slices.Equal(ms.Normals, b.Normals) {
		ms.Normals = nil
	}
	if slices.Equal(ms.UV, b.UV) {
		ms.UV = nil
	}
	if slices.Equal(ms.Colors, b.Colors) {
		ms.Colors = nil
	}
	if slices.Equal(ms.Indices, b.Indices) {
		ms.Indices = nil
	}
	if bonesEqual(ms.Bones, b.Bones) {
		ms.Bones = nil
	}
}

func (ms *Mesh) Merge(base Entity) {
	b, ok := base.(*Mesh)
	if !ok {
		return
	}
	ms.mergeBase(&b.EntityBase)
	if ms.Points == nil {
		ms.Points = slices.Clone(b.Points)
	}
	if ms.Normals == nil {
		ms.Normals = slices.Clone(b.Normals)
	}
	if ms.UV == nil {
		ms.UV = slices.Clone(b.UV)
	}
	if ms.Colors == nil {
		ms.Colors = slices.Clone(b.Colors)
	}
	if ms.Indices == nil {
		ms.Indices = slices.Clone(b.Indices)
	}
	if ms.Bones == nil {
		ms.Bones = cloneBones(b.Bones)
	}
}

func (ms *Mesh) Diff(e1, e2 Entity) {
	ms.diffBase(e1.AsEntityBase(), e2.AsEntityBase())
	m1, ok1 := e1.(*Mesh)
	m2, ok2 := e2.(*Mesh)
	if !ok1 || !ok2 {
		return
	}
	ms.Points = nil
	if !slices.Equal(m1.Points, m2.Points) {
		ms.Points = slices.Clone(m2.Points)
	}
	ms.Normals = nil
	if !slices.Equal(m1.Normals, m2.Normals) {
		ms.Normals = slices.Clone(m2.Normals)
	}
	ms.UV = nil
	if !slices.Equal(m1.UV, m2.UV) {
		ms.UV = slices.Clone(m2.UV)
	}
	ms.Colors = nil
	if !slices.Equal(m1.Colors, m2.Colors) {
		ms.Colors = slices.Clone(m2.Colors)
	}
	ms.Indices = nil
	if !slices.Equal(m1.Indices, m2.Indices) {
		ms.Indices = slices.Clone(m2.Indices)
	}
	ms.Bones = nil
	if !bonesEqual(m1.Bones, m2.Bones) {
		ms.Bones = cloneBones(m2.Bones)
	}
}

// Lerp interpolates vertex data pointwise. The scene-level guard only calls
// this under constant topology; mismatched array lengths hold e1's data.
func (ms *Mesh) Lerp(e1, e2 Entity, t float32) {
	ms.lerpBase(e1.AsEntityBase(), e2.AsEntityBase(), t)
	m1, ok1 := e1.(*Mesh)
	m2, ok2 := e2.(*Mesh)
	if !ok1 || !ok2 {
		return
	}
	if len(m1.Points) == len(m2.Points) {
		for i := range ms.Points {
			ms.Points[i] = lerpVec3(m1.Points[i], m2.Points[i], t)
		}
	}
	if len(m1.Normals) == len(m2.Normals) {
		for i := range ms.Normals {
			ms.Normals[i] = normalize3(lerpVec3(m1.Normals[i], m2.Normals[i], t))
		}
	}
	if len(m1.Colors) == len(m2.Colors) {
		for i := range ms.Colors {
			ms.Colors[i] = lerpVec4(m1.Colors[i], m2.Colors[i], t)
		}
	}
}

func (ms *Mesh) Hash() uint64 {
	return contentHash(ms)
}

func (ms *Mesh) WriteTo(w *binx.Writer) {
	ms.writeTo(w)
	w.Vec3s(ms.Points)
	w.Vec3s(ms.Normals)
	w.Vec2s(ms.UV)
	w.Vec4s(ms.Colors)
	w.I32s(ms.Indices)
	w.U32(uint32(len(ms.Bones)))
	for _, bn := range ms.Bones {
		w.String(bn.Path)
		w.Mat4(bn.Bindpose)
		w.F32s(bn.Weights)
	}
	w.U32(uint32(ms.RefineSettings.Flags))
	w.I32(ms.RefineSettings.SplitUnit)
	w.I32(ms.RefineSettings.MaxBoneInfluence)
}

func (ms *Mesh) ReadFrom(r *binx.Reader) {
	ms.readFrom(r)
	ms.Points = r.Vec3s()
	ms.Normals = r.Vec3s()
	ms.UV = r.Vec2s()
	ms.Colors = r.Vec4s()
	ms.Indices = r.I32s()
	nb := r.U32()
	ms.Bones = nil
	for i := uint32(0); i < nb; i++ {
		if r.Err() != nil {
			return
		}
		bn := &Bone{}
		bn.Path = r.String()
		bn.Bindpose = r.Mat4()
		bn.Weights = r.F32s()
		ms.Bones = append(ms.Bones, bn)
	}
	ms.RefineSettings.Flags = MeshRefineFlags(r.U32())
	ms.RefineSettings.SplitUnit = r.I32()
	ms.RefineSettings.MaxBoneInfluence = r.I32()
}

// Refine applies the steps selected by RefineSettings: normal generation,
// bone influence limiting, and index-buffer splitting.
func (ms *Mesh) Refine() {
	rs := &ms.RefineSettings
	if rs.Flags&RefineGenNormals != 0 && len(ms.Normals) == 0 {
		ms.genNormals()
	}
	if rs.MaxBoneInfluence > 0 && len(ms.Bones) > int(rs.MaxBoneInfluence) {
		ms.limitBoneInfluence(int(rs.MaxBoneInfluence))
	}
	if rs.Flags&RefineSplit != 0 && rs.SplitUnit > 0 {
		ms.split(int(rs.SplitUnit))
	}
}

// genNormals computes area-weighted vertex normals from triangle faces.
func (ms *Mesh) genNormals() {
	ms.Normals = make([]mgl32.Vec3, len(ms.Points))
	for i := 0; i+2 < len(ms.Indices); i += 3 {
		i0, i1, i2 := ms.Indices[i], ms.Indices[i+1], ms.Indices[i+2]
		p0, p1, p2 := ms.Points[i0], ms.Points[i1], ms.Points[i2]
		fn := p1.Sub(p0).Cross(p2.Sub(p0))
		ms.Normals[i0] = ms.Normals[i0].Add(fn)
		ms.Normals[i1] = ms.Normals[i1].Add(fn)
		ms.Normals[i2] = ms.Normals[i2].Add(fn)
	}
	for i := range ms.Normals {
		ms.Normals[i] = normalize3(ms.Normals[i])
	}
}

// limitBoneInfluence keeps only the maxInfluence largest bone weights per
// vertex and renormalizes the survivors to sum to the original total.
func (ms *Mesh) limitBoneInfluence(maxInfluence int) {
	nv := len(ms.Points)
	for v := 0; v < nv; v++ {
		type bw struct {
			bone   int
			weight float32
		}
		ws := make([]bw, 0, len(ms.Bones))
		var total float32
		for bi, bn := range ms.Bones {
			if v < len(bn.Weights) && bn.Weights[v] > 0 {
				ws = append(ws, bw{bi, bn.Weights[v]})
				total += bn.Weights[v]
			}
		}
		if len(ws) <= maxInfluence || total == 0 {
			continue
		}
		slices.SortFunc(ws, func(a, b bw) int {
			switch {
			case a.weight > b.weight:
				return -1
			case a.weight < b.weight:
				return 1
			}
			return 0
		})
		var kept float32
		for _, x := range ws[:maxInfluence] {
			kept += x.weight
		}
		for i, x := range ws {
			if i < maxInfluence {
				ms.Bones[x.bone].Weights[v] = x.weight * total / kept
			} else {
				ms.Bones[x.bone].Weights[v] = 0
			}
		}
	}
}

// split partitions the index buffer into whole-triangle ranges whose
// referenced vertex span stays within unit vertices. A single triangle
// wider than the unit still gets its own range.
func (ms *Mesh) split(unit int) {
	ms.Splits = ms.Splits[:0]
	ni := len(ms.Indices) - len(ms.Indices)%3
	for ofs := 0; ofs < ni; {
		lo, hi := ms.Indices[ofs], ms.Indices[ofs]
		end := ofs
		for end < ni {
			tlo, thi := lo, hi
			for _, ix := range ms.Indices[end : end+3] {
				tlo = min(tlo, ix)
				thi = max(thi, ix)
			}
			if end > ofs && int(thi-tlo)+1 > unit {
				break
			}
			lo, hi = tlo, thi
			end += 3
		}
		ms.Splits = append(ms.Splits, MeshSplit{
			VertexOffset: lo,
			VertexCount:  hi - lo + 1,
			IndexOffset:  int32(ofs),
			IndexCount:   int32(end - ofs),
		})
		ofs = end
	}
}

// UpdateBounds recomputes the axis-aligned bounds from Points.
func (ms *Mesh) UpdateBounds() {
	if len(ms.Points) == 0 {
		ms.Bounds = Box{}
		return
	}
	lo, hi := ms.Points[0], ms.Points[0]
	for _, p := range ms.Points[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	ms.Bounds.Center = hi.Add(lo).Mul(0.5)
	ms.Bounds.Extents = hi.Sub(lo).Mul(0.5)
}

// normalize3 returns v scaled to unit length, or zero for a zero vector.
func normalize3(v mgl32.Vec3) mgl32.Vec3 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
