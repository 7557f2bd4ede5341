// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/scenesync/base/binx"
	"github.com/go-gl/mathgl/mgl32"
)

// LightKind identifies the illumination model of a [Light].
type LightKind int32

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
	LightArea
)

var lightKindNames = []string{"Directional", "Point", "Spot", "Area"}

func (lk LightKind) String() string {
	if lk < 0 || int(lk) >= len(lightKindNames) {
		return "LightKind(invalid)"
	}
	return lightKindNames[lk]
}

// Light is a light-source entity.
type Light struct {
	EntityBase

	Kind LightKind

	// Color is the light color at full intensity, linear RGBA.
	Color mgl32.Vec4

	// Intensity is the brightness multiplier applied to Color.
	Intensity float32

	// Range is the attenuation distance for point and spot lights.
	Range float32

	// SpotAngle is the cone angle in degrees for spot lights.
	SpotAngle float32
}

// NewLight returns a Light of the given kind at the given path,
// white at intensity 1.
func NewLight(path string, kind LightKind) *Light {
	lt := &Light{}
	lt.Defaults()
	lt.Path = path
	lt.Kind = kind
	lt.Color = mgl32.Vec4{1, 1, 1, 1}
	lt.Intensity = 1
	return lt
}

func (lt *Light) Type() EntityType {
	return EntityLight
}

func (lt *Light) IsGeometry() bool {
	return false
}

func (lt *Light) Clone(detach bool) Entity {
	c := *lt
	if detach {
		c.Parent = -1
		c.Reference = ""
	}
	return &c
}

func (lt *Light) paramsEqual(o *Light) bool {
	return lt.Kind == o.Kind && lt.Color == o.Color && lt.Intensity == o.Intensity &&
		lt.Range == o.Range && lt.SpotAngle == o.SpotAngle
}

func (lt *Light) clearParams() {
	lt.Kind = 0
	lt.Color = mgl32.Vec4{}
	lt.Intensity = 0
	lt.Range = 0
	lt.SpotAngle = 0
}

func (lt *Light) Strip(base Entity) {
	b, ok := base.(*Light)
	if !ok {
		return
	}
	lt.stripBase(&b.EntityBase)
	if lt.paramsEqual(b) {
		lt.clearParams()
		lt.Stripped |= StrippedParams
	}
}

func (lt *Light) Merge(base Entity) {
	b, ok := base.(*Light)
	if !ok {
		return
	}
	lt.mergeBase(&b.EntityBase)
	if lt.Stripped&StrippedParams != 0 {
		lt.Kind = b.Kind
		lt.Color = b.Color
		lt.Intensity = b.Intensity
		lt.Range = b.Range
		lt.SpotAngle = b.SpotAngle
		lt.Stripped &^= StrippedParams
	}
}

func (lt *Light) Diff(e1, e2 Entity) {
	lt.diffBase(e1.AsEntityBase(), e2.AsEntityBase())
	l1, ok1 := e1.(*Light)
	l2, ok2 := e2.(*Light)
	if !ok1 || !ok2 {
		return
	}
	lt.Kind = l2.Kind
	lt.Color = l2.Color
	lt.Intensity = l2.Intensity
	lt.Range = l2.Range
	lt.SpotAngle = l2.SpotAngle
	if l1.paramsEqual(l2) {
		lt.clearParams()
		lt.Stripped |= StrippedParams
	}
}

func (lt *Light) Lerp(e1, e2 Entity, t float32) {
	lt.lerpBase(e1.AsEntityBase(), e2.AsEntityBase(), t)
	l1, ok1 := e1.(*Light)
	l2, ok2 := e2.(*Light)
	if !ok1 || !ok2 {
		return
	}
	lt.Kind = l1.Kind
	lt.Color = lerpVec4(l1.Color, l2.Color, t)
	lt.Intensity = lerpF32(l1.Intensity, l2.Intensity, t)
	lt.Range = lerpF32(l1.Range, l2.Range, t)
	lt.SpotAngle = lerpF32(l1.SpotAngle, l2.SpotAngle, t)
}

func (lt *Light) Hash() uint64 {
	return contentHash(lt)
}

func (lt *Light) WriteTo(w *binx.Writer) {
	lt.writeTo(w)
	w.I32(int32(lt.Kind))
	w.Vec4(lt.Color)
	w.F32(lt.Intensity)
	w.F32(lt.Range)
	w.F32(lt.SpotAngle)
}

func (lt *Light) ReadFrom(r *binx.Reader) {
	lt.readFrom(r)
	lt.Kind = LightKind(r.I32())
	lt.Color = r.Vec4()
	lt.Intensity = r.F32()
	lt.Range = r.F32()
	lt.SpotAngle = r.F32()
}
