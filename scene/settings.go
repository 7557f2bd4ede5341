// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/scenesync/base/binx"

// Handedness is the coordinate-system chirality convention of a scene
// producer, optionally with the Z axis up.
type Handedness int32

const (
	// LeftHanded is the canonical convention: left-handed, Y up.
	// Scenes are always transmitted in this convention.
	LeftHanded Handedness = iota

	// RightHanded is right-handed, Y up.
	RightHanded

	// LeftZUp is left-handed with the Z axis up.
	LeftZUp

	// RightZUp is right-handed with the Z axis up.
	RightZUp
)

var handednessNames = []string{"LeftHanded", "RightHanded", "LeftZUp", "RightZUp"}

func (h Handedness) String() string {
	if h < 0 || int(h) >= len(handednessNames) {
		return "Handedness(invalid)"
	}
	return handednessNames[h]
}

// IsRight reports whether h is a right-handed convention.
func (h Handedness) IsRight() bool {
	return h == RightHanded || h == RightZUp
}

// IsZUp reports whether h has the Z axis up.
func (h Handedness) IsZUp() bool {
	return h == LeftZUp || h == RightZUp
}

// SceneSettings records the producer's coordinate convention for a scene.
// [Scene.Import] consumes it once, converting the scene into the canonical
// convention (LeftHanded, scale 1), and resets it accordingly, so a scene
// crossing a link is always self-describing as already normalized.
type SceneSettings struct {

	// Name is the producer-assigned scene name.
	Name string

	// Handedness is the producer's coordinate convention.
	Handedness Handedness

	// ScaleFactor is the producer's unit scale relative to meters.
	// Must be > 0; 1 is canonical.
	ScaleFactor float32
}

// Defaults sets the canonical convention: LeftHanded with scale 1.
func (ss *SceneSettings) Defaults() {
	ss.Handedness = LeftHanded
	ss.ScaleFactor = 1
}

func (ss *SceneSettings) writeTo(w *binx.Writer) {
	w.String(ss.Name)
	w.I32(int32(ss.Handedness))
	w.F32(ss.ScaleFactor)
}

func (ss *SceneSettings) readFrom(r *binx.Reader) {
	ss.Name = r.String()
	ss.Handedness = Handedness(r.I32())
	ss.ScaleFactor = r.F32()
}
