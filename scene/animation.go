// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/scenesync/base/binx"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3Key is a keyframe on a vector track.
type Vec3Key struct {
	Time  float32
	Value mgl32.Vec3
}

// QuatKey is a keyframe on a rotation track.
type QuatKey struct {
	Time  float32
	Value mgl32.Quat
}

// BoolKey is a keyframe on a visibility track.
type BoolKey struct {
	Time  float32
	Value bool
}

// Animation is one per-entity channel of an [AnimationClip]: keyframed
// transform tracks addressed to the entity at Path.
type Animation struct {

	// Path is the hierarchical path of the target entity.
	Path string

	Positions []Vec3Key
	Rotations []QuatKey
	Scales    []Vec3Key
	Visibles  []BoolKey
}

func (an *Animation) writeTo(w *binx.Writer) {
	w.String(an.Path)
	w.U32(uint32(len(an.Positions)))
	for _, k := range an.Positions {
		w.F32(k.Time)
		w.Vec3(k.Value)
	}
	w.U32(uint32(len(an.Rotations)))
	for _, k := range an.Rotations {
		w.F32(k.Time)
		w.Quat(k.Value)
	}
	w.U32(uint32(len(an.Scales)))
	for _, k := range an.Scales {
		w.F32(k.Time)
		w.Vec3(k.Value)
	}
	w.U32(uint32(len(an.Visibles)))
	for _, k := range an.Visibles {
		w.F32(k.Time)
		w.Bool(k.Value)
	}
}

func (an *Animation) readFrom(r *binx.Reader) {
	an.Path = r.String()
	np := r.U32()
	an.Positions = nil
	for i := uint32(0); i < np; i++ {
		if r.Err() != nil {
			return
		}
		an.Positions = append(an.Positions, Vec3Key{Time: r.F32(), Value: r.Vec3()})
	}
	nr := r.U32()
	an.Rotations = nil
	for i := uint32(0); i < nr; i++ {
		if r.Err() != nil {
			return
		}
		an.Rotations = append(an.Rotations, QuatKey{Time: r.F32(), Value: r.Quat()})
	}
	ns := r.U32()
	an.Scales = nil
	for i := uint32(0); i < ns; i++ {
		if r.Err() != nil {
			return
		}
		an.Scales = append(an.Scales, Vec3Key{Time: r.F32(), Value: r.Vec3()})
	}
	nv := r.U32()
	an.Visibles = nil
	for i := uint32(0); i < nv; i++ {
		if r.Err() != nil {
			return
		}
		an.Visibles = append(an.Visibles, BoolKey{Time: r.F32(), Value: r.Bool()})
	}
}

// AnimationClip is an asset holding an ordered collection of per-entity
// animation channels.
type AnimationClip struct {
	AssetBase

	Animations []*Animation
}

func (ac *AnimationClip) AssetType() AssetType {
	return AssetAnimation
}

func (ac *AnimationClip) Hash() uint64 {
	return contentHash(ac)
}

func (ac *AnimationClip) WriteTo(w *binx.Writer) {
	ac.writeTo(w)
	w.U32(uint32(len(ac.Animations)))
	for _, an := range ac.Animations {
		an.writeTo(w)
	}
}

func (ac *AnimationClip) ReadFrom(r *binx.Reader) {
	ac.readFrom(r)
	n := r.U32()
	ac.Animations = nil
	for i := uint32(0); i < n; i++ {
		if r.Err() != nil {
			return
		}
		an := &Animation{}
		an.readFrom(r)
		ac.Animations = append(ac.Animations, an)
	}
}
