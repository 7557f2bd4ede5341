// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// AssetsOf returns all assets of concrete kind T, preserving their
// relative order in the scene:
//
//	textures := scene.AssetsOf[*scene.Texture](sc)
func AssetsOf[T Asset](sc *Scene) []T {
	var ret []T
	for _, a := range sc.Assets {
		if t, ok := a.(T); ok {
			ret = append(ret, t)
		}
	}
	return ret
}

// EntitiesOf returns all entities of concrete kind T, preserving their
// relative order in the scene.
func EntitiesOf[T Entity](sc *Scene) []T {
	var ret []T
	for _, e := range sc.Entities {
		if t, ok := e.(T); ok {
			ret = append(ret, t)
		}
	}
	return ret
}
