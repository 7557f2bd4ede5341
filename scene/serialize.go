// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"fmt"
	"io"

	"cogentcore.org/scenesync/base/binx"
)

// ErrDataIntegrity is reported by [Scene.Read] when the validation hash of
// the decoded collections does not match the transmitted one. The scene is
// corrupt and must not be used; there is no partial recovery.
var ErrDataIntegrity = errors.New("validation hash mismatch")

// newEntity returns a fresh entity of the given kind, or nil for an
// unknown tag.
func newEntity(et EntityType) Entity {
	switch et {
	case EntityTransform:
		return NewTransform("")
	case EntityCamera:
		return NewCamera("")
	case EntityLight:
		return NewLight("", LightDirectional)
	case EntityMesh:
		return NewMesh("")
	case EntityPoints:
		return NewPoints("")
	}
	return nil
}

// newAsset returns a fresh asset of the given kind, or nil for an
// unknown tag.
func newAsset(at AssetType) Asset {
	switch at {
	case AssetFile:
		return &FileAsset{}
	case AssetAnimation:
		return &AnimationClip{}
	case AssetTexture:
		return &Texture{}
	case AssetMaterial:
		return &Material{}
	case AssetAudio:
		return &Audio{}
	}
	return nil
}

// Write encodes the scene to w: validation hash, settings, assets,
// entities, constraints, in that order. Each asset and entity is preceded
// by its kind tag so the decoder can reconstruct the concrete types.
func (sc *Scene) Write(w io.Writer) error {
	bw := binx.NewWriter(w)
	bw.U64(sc.Hash())
	sc.Settings.writeTo(bw)
	bw.U32(uint32(len(sc.Assets)))
	for _, a := range sc.Assets {
		bw.I32(int32(a.AssetType()))
		a.WriteTo(bw)
	}
	bw.U32(uint32(len(sc.Entities)))
	for _, e := range sc.Entities {
		bw.I32(int32(e.Type()))
		e.WriteTo(bw)
	}
	bw.U32(uint32(len(sc.Constraints)))
	for _, c := range sc.Constraints {
		bw.String(c.Path)
		bw.Bytes(c.Data)
	}
	if err := bw.Err(); err != nil {
		return fmt.Errorf("scene: serialize: %w", err)
	}
	return nil
}

// Read decodes a scene from r, replacing sc's collections, and recomputes
// the validation hash over them. On a mismatch it returns an error
// wrapping [ErrDataIntegrity] and sc must be considered unusable.
func (sc *Scene) Read(r io.Reader) error {
	br := binx.NewReader(r)
	want := br.U64()
	sc.Settings.readFrom(br)

	na := br.U32()
	sc.Assets = nil
	for i := uint32(0); i < na; i++ {
		if br.Err() != nil {
			break
		}
		at := AssetType(br.I32())
		a := newAsset(at)
		if a == nil {
			if err := br.Err(); err != nil {
				return fmt.Errorf("scene: deserialize: %w", err)
			}
			return fmt.Errorf("scene: deserialize: unknown asset type tag %d", at)
		}
		a.ReadFrom(br)
		sc.Assets = append(sc.Assets, a)
	}

	ne := br.U32()
	sc.Entities = nil
	for i := uint32(0); i < ne; i++ {
		if br.Err() != nil {
			break
		}
		et := EntityType(br.I32())
		e := newEntity(et)
		if e == nil {
			if err := br.Err(); err != nil {
				return fmt.Errorf("scene: deserialize: %w", err)
			}
			return fmt.Errorf("scene: deserialize: unknown entity type tag %d", et)
		}
		e.ReadFrom(br)
		sc.Entities = append(sc.Entities, e)
	}

	nc := br.U32()
	sc.Constraints = nil
	for i := uint32(0); i < nc; i++ {
		if br.Err() != nil {
			break
		}
		c := Constraint{Path: br.String()}
		c.Data = br.Bytes()
		sc.Constraints = append(sc.Constraints, c)
	}

	if err := br.Err(); err != nil {
		return fmt.Errorf("scene: deserialize: %w", err)
	}
	if got := sc.Hash(); got != want {
		return fmt.Errorf("scene: %w: have %#x, want %#x", ErrDataIntegrity, got, want)
	}
	return nil
}

// ReadScene constructs a new Scene and decodes it from r, propagating any
// integrity failure.
func ReadScene(r io.Reader) (*Scene, error) {
	sc := NewScene("")
	if err := sc.Read(r); err != nil {
		return nil, err
	}
	return sc, nil
}
