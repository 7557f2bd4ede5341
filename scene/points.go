// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"cogentcore.org/scenesync/base/binx"
	"github.com/go-gl/mathgl/mgl32"
)

// Points is a point-cloud / instanced-scatter entity: per-instance
// positions with optional colors and stable per-instance ids.
type Points struct {
	EntityBase

	Points []mgl32.Vec3
	Colors []mgl32.Vec4

	// IDs are stable per-instance identities, used by consumers to track
	// instances across frames.
	IDs []int32
}

// NewPoints returns an empty Points entity at the given path.
func NewPoints(path string) *Points {
	pt := &Points{}
	pt.Defaults()
	pt.Path = path
	return pt
}

func (pt *Points) Type() EntityType {
	return EntityPoints
}

func (pt *Points) IsGeometry() bool {
	return true
}

func (pt *Points) Clone(detach bool) Entity {
	c := *pt
	if detach {
		c.Parent = -1
		c.Reference = ""
	}
	c.Points = slices.Clone(pt.Points)
	c.Colors = slices.Clone(pt.Colors)
	c.IDs = slices.Clone(pt.IDs)
	return &c
}

func (pt *Points) Strip(base Entity) {
	b, ok := base.(*Points)
	if !ok {
		return
	}
	pt.stripBase(&b.EntityBase)
	if slices.Equal(pt.Points, b.Points) {
		pt.Points = nil
	}
	if slices.Equal(pt.Colors, b.Colors) {
		pt.Colors = nil
	}
	if slices.Equal(pt.IDs, b.IDs) {
		pt.IDs = nil
	}
}

func (pt *Points) Merge(base Entity) {
	b, ok := base.(*Points)
	if !ok {
		return
	}
	pt.mergeBase(&b.EntityBase)
	if pt.Points == nil {
		pt.Points = slices.Clone(b.Points)
	}
	if pt.Colors == nil {
		pt.Colors = slices.Clone(b.Colors)
	}
	if pt.IDs == nil {
		pt.IDs = slices.Clone(b.IDs)
	}
}

func (pt *Points) Diff(e1, e2 Entity) {
	pt.diffBase(e1.AsEntityBase(), e2.AsEntityBase())
	p1, ok1 := e1.(*Points)
	p2, ok2 := e2.(*Points)
	if !ok1 || !ok2 {
		return
	}
	pt.Points = nil
	if !slices.Equal(p1.Points, p2.Points) {
		pt.Points = slices.Clone(p2.Points)
	}
	pt.Colors = nil
	if !slices.Equal(p1.Colors, p2.Colors) {
		pt.Colors = slices.Clone(p2.Colors)
	}
	pt.IDs = nil
	if !slices.Equal(p1.IDs, p2.IDs) {
		pt.IDs = slices.Clone(p2.IDs)
	}
}

func (pt *Points) Lerp(e1, e2 Entity, t float32) {
	pt.lerpBase(e1.AsEntityBase(), e2.AsEntityBase(), t)
	p1, ok1 := e1.(*Points)
	p2, ok2 := e2.(*Points)
	if !ok1 || !ok2 {
		return
	}
	if len(p1.Points) == len(p2.Points) {
		for i := range pt.Points {
			pt.Points[i] = lerpVec3(p1.Points[i], p2.Points[i], t)
		}
	}
	if len(p1.Colors) == len(p2.Colors) {
		for i := range pt.Colors {
			pt.Colors[i] = lerpVec4(p1.Colors[i], p2.Colors[i], t)
		}
	}
}

func (pt *Points) Hash() uint64 {
	return contentHash(pt)
}

func (pt *Points) WriteTo(w *binx.Writer) {
	pt.writeTo(w)
	w.Vec3s(pt.Points)
	w.Vec4s(pt.Colors)
	w.I32s(pt.IDs)
}

func (pt *Points) ReadFrom(r *binx.Reader) {
	pt.readFrom(r)
	pt.Points = r.Vec3s()
	pt.Colors = r.Vec4s()
	pt.IDs = r.I32s()
}
