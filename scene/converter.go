// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// EntityConverter applies one unit or axis transform in place to an entity
// or an animation channel. [Scene.Import] derives a converter pipeline from
// the scene's settings and runs it over every entity and channel.
type EntityConverter interface {
	ConvertEntity(e Entity)
	ConvertAnimation(an *Animation)
}

// ScaleConverter multiplies all positional quantities by Factor.
type ScaleConverter struct {
	Factor float32
}

// NewScaleConverter returns a ScaleConverter with the given factor.
func NewScaleConverter(factor float32) *ScaleConverter {
	return &ScaleConverter{Factor: factor}
}

func (sv *ScaleConverter) ConvertEntity(e Entity) {
	eb := e.AsEntityBase()
	eb.Position = eb.Position.Mul(sv.Factor)
	switch k := e.(type) {
	case *Mesh:
		for i := range k.Points {
			k.Points[i] = k.Points[i].Mul(sv.Factor)
		}
		for _, bn := range k.Bones {
			bn.Bindpose = scaleMat4Translation(bn.Bindpose, sv.Factor)
		}
	case *Points:
		for i := range k.Points {
			k.Points[i] = k.Points[i].Mul(sv.Factor)
		}
	case *Camera:
		k.Near *= sv.Factor
		k.Far *= sv.Factor
	case *Light:
		k.Range *= sv.Factor
	}
}

func (sv *ScaleConverter) ConvertAnimation(an *Animation) {
	for i := range an.Positions {
		an.Positions[i].Value = an.Positions[i].Value.Mul(sv.Factor)
	}
}

// FlipXConverter mirrors across the YZ plane, correcting right-handed
// producer data to the canonical left-handed convention.
type FlipXConverter struct{}

func (fv *FlipXConverter) ConvertEntity(e Entity) {
	eb := e.AsEntityBase()
	eb.Position = flipX(eb.Position)
	eb.Rotation = flipXQuat(eb.Rotation)
	switch k := e.(type) {
	case *Mesh:
		for i := range k.Points {
			k.Points[i] = flipX(k.Points[i])
		}
		for i := range k.Normals {
			k.Normals[i] = flipX(k.Normals[i])
		}
		// mirroring inverts winding; swap each triangle back to front-facing
		for i := 0; i+2 < len(k.Indices); i += 3 {
			k.Indices[i+1], k.Indices[i+2] = k.Indices[i+2], k.Indices[i+1]
		}
		for _, bn := range k.Bones {
			bn.Bindpose = flipXMat4(bn.Bindpose)
		}
	case *Points:
		for i := range k.Points {
			k.Points[i] = flipX(k.Points[i])
		}
	}
}

func (fv *FlipXConverter) ConvertAnimation(an *Animation) {
	for i := range an.Positions {
		an.Positions[i].Value = flipX(an.Positions[i].Value)
	}
	for i := range an.Rotations {
		an.Rotations[i].Value = flipXQuat(an.Rotations[i].Value)
	}
}

// FlipYZConverter swaps the Y and Z axes, the axis-flip strategy for
// correcting Z-up producer data.
type FlipYZConverter struct{}

func (fv *FlipYZConverter) ConvertEntity(e Entity) {
	eb := e.AsEntityBase()
	eb.Position = swapYZ(eb.Position)
	eb.Rotation = swapYZQuat(eb.Rotation)
	eb.Scale = swapYZ(eb.Scale)
	switch k := e.(type) {
	case *Mesh:
		for i := range k.Points {
			k.Points[i] = swapYZ(k.Points[i])
		}
		for i := range k.Normals {
			k.Normals[i] = swapYZ(k.Normals[i])
		}
		for i := 0; i+2 < len(k.Indices); i += 3 {
			k.Indices[i+1], k.Indices[i+2] = k.Indices[i+2], k.Indices[i+1]
		}
	case *Points:
		for i := range k.Points {
			k.Points[i] = swapYZ(k.Points[i])
		}
	}
}

func (fv *FlipYZConverter) ConvertAnimation(an *Animation) {
	for i := range an.Positions {
		an.Positions[i].Value = swapYZ(an.Positions[i].Value)
	}
	for i := range an.Rotations {
		an.Rotations[i].Value = swapYZQuat(an.Rotations[i].Value)
	}
	for i := range an.Scales {
		an.Scales[i].Value = swapYZ(an.Scales[i].Value)
	}
}

// RotateXConverter rotates -90 degrees about X, the rotation strategy for
// correcting Z-up producer data (Z becomes Y).
type RotateXConverter struct {
	rot mgl32.Quat
}

// NewRotateXConverter returns the standard Z-up corrector.
func NewRotateXConverter() *RotateXConverter {
	return &RotateXConverter{rot: mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{1, 0, 0})}
}

func (rv *RotateXConverter) ConvertEntity(e Entity) {
	eb := e.AsEntityBase()
	eb.Position = rotX(eb.Position)
	eb.Rotation = rv.rot.Mul(eb.Rotation)
	switch k := e.(type) {
	case *Mesh:
		for i := range k.Points {
			k.Points[i] = rotX(k.Points[i])
		}
		for i := range k.Normals {
			k.Normals[i] = rotX(k.Normals[i])
		}
	case *Points:
		for i := range k.Points {
			k.Points[i] = rotX(k.Points[i])
		}
	}
}

func (rv *RotateXConverter) ConvertAnimation(an *Animation) {
	for i := range an.Positions {
		an.Positions[i].Value = rotX(an.Positions[i].Value)
	}
	for i := range an.Rotations {
		an.Rotations[i].Value = rv.rot.Mul(an.Rotations[i].Value)
	}
}

func flipX(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{-v[0], v[1], v[2]}
}

// flipXQuat mirrors a rotation across the YZ plane: rotations about Y and Z
// reverse direction.
func flipXQuat(q mgl32.Quat) mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.V[0], -q.V[1], -q.V[2]}}
}

func flipXMat4(m mgl32.Mat4) mgl32.Mat4 {
	f := mgl32.Scale3D(-1, 1, 1)
	return f.Mul4(m).Mul4(f)
}

func swapYZ(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], v[1]}
}

// swapYZQuat reflects a rotation through the YZ axis swap and renormalizes.
func swapYZQuat(q mgl32.Quat) mgl32.Quat {
	out := mgl32.Quat{W: -q.W, V: mgl32.Vec3{q.V[0], q.V[2], q.V[1]}}
	l := math32.Sqrt(out.W*out.W + out.V[0]*out.V[0] + out.V[1]*out.V[1] + out.V[2]*out.V[2])
	if l == 0 {
		return out
	}
	return mgl32.Quat{W: out.W / l, V: out.V.Mul(1 / l)}
}

// rotX maps a Z-up vector to Y-up: (x, y, z) -> (x, z, -y).
func rotX(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], -v[1]}
}

// scaleMat4Translation scales only the translation column of m.
func scaleMat4Translation(m mgl32.Mat4, s float32) mgl32.Mat4 {
	m[12] *= s
	m[13] *= s
	m[14] *= s
	return m
}
