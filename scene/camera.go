// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/scenesync/base/binx"

// Camera is a viewpoint entity with a perspective or orthographic
// projection parameter block.
type Camera struct {
	EntityBase

	// Ortho selects an orthographic projection; the default is perspective.
	Ortho bool

	// FOV is the vertical field of view in degrees (perspective), or the
	// vertical half-size in scene units (orthographic).
	FOV float32

	// Near and Far are the clip plane distances.
	Near float32
	Far  float32
}

// NewCamera returns a Camera at the given path with standard
// perspective defaults.
func NewCamera(path string) *Camera {
	cm := &Camera{}
	cm.Defaults()
	cm.Path = path
	cm.FOV = 30
	cm.Near = 0.3
	cm.Far = 1000
	return cm
}

func (cm *Camera) Type() EntityType {
	return EntityCamera
}

func (cm *Camera) IsGeometry() bool {
	return false
}

func (cm *Camera) Clone(detach bool) Entity {
	c := *cm
	if detach {
		c.Parent = -1
		c.Reference = ""
	}
	return &c
}

func (cm *Camera) paramsEqual(o *Camera) bool {
	return cm.Ortho == o.Ortho && cm.FOV == o.FOV && cm.Near == o.Near && cm.Far == o.Far
}

func (cm *Camera) clearParams() {
	cm.Ortho = false
	cm.FOV = 0
	cm.Near = 0
	cm.Far = 0
}

func (cm *Camera) Strip(base Entity) {
	b, ok := base.(*Camera)
	if !ok {
		return
	}
	cm.stripBase(&b.EntityBase)
	if cm.paramsEqual(b) {
		cm.clearParams()
		cm.Stripped |= StrippedParams
	}
}

func (cm *Camera) Merge(base Entity) {
	b, ok := base.(*Camera)
	if !ok {
		return
	}
	cm.mergeBase(&b.EntityBase)
	if cm.Stripped&StrippedParams != 0 {
		cm.Ortho = b.Ortho
		cm.FOV = b.FOV
		cm.Near = b.Near
		cm.Far = b.Far
		cm.Stripped &^= StrippedParams
	}
}

func (cm *Camera) Diff(e1, e2 Entity) {
	cm.diffBase(e1.AsEntityBase(), e2.AsEntityBase())
	c1, ok1 := e1.(*Camera)
	c2, ok2 := e2.(*Camera)
	if !ok1 || !ok2 {
		return
	}
	cm.Ortho = c2.Ortho
	cm.FOV = c2.FOV
	cm.Near = c2.Near
	cm.Far = c2.Far
	if c1.paramsEqual(c2) {
		cm.clearParams()
		cm.Stripped |= StrippedParams
	}
}

func (cm *Camera) Lerp(e1, e2 Entity, t float32) {
	cm.lerpBase(e1.AsEntityBase(), e2.AsEntityBase(), t)
	c1, ok1 := e1.(*Camera)
	c2, ok2 := e2.(*Camera)
	if !ok1 || !ok2 {
		return
	}
	cm.Ortho = c1.Ortho
	cm.FOV = lerpF32(c1.FOV, c2.FOV, t)
	cm.Near = lerpF32(c1.Near, c2.Near, t)
	cm.Far = lerpF32(c1.Far, c2.Far, t)
}

func (cm *Camera) Hash() uint64 {
	return contentHash(cm)
}

func (cm *Camera) WriteTo(w *binx.Writer) {
	cm.writeTo(w)
	w.Bool(cm.Ortho)
	w.F32(cm.FOV)
	w.F32(cm.Near)
	w.F32(cm.Far)
}

func (cm *Camera) ReadFrom(r *binx.Reader) {
	cm.readFrom(r)
	cm.Ortho = r.Bool()
	cm.FOV = r.F32()
	cm.Near = r.F32()
	cm.Far = r.F32()
}
