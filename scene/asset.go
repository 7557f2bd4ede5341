// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/scenesync/base/binx"
	"github.com/go-gl/mathgl/mgl32"
)

// AssetType identifies the concrete kind of an [Asset].
type AssetType int32

const (
	AssetUnknown AssetType = iota
	AssetFile
	AssetAnimation
	AssetTexture
	AssetMaterial
	AssetAudio
)

var assetTypeNames = []string{"Unknown", "File", "Animation", "Texture", "Material", "Audio"}

func (at AssetType) String() string {
	if at < 0 || int(at) >= len(assetTypeNames) {
		return "AssetType(invalid)"
	}
	return assetTypeNames[at]
}

// Asset is a non-hierarchical scene payload: texture, material, animation
// clip, audio, or a generic file. Assets may be shared across scenes, so
// scene operations never mutate them.
type Asset interface {

	// AsAssetBase returns the [AssetBase] with the fields shared by all
	// asset kinds.
	AsAssetBase() *AssetBase

	// AssetType returns the concrete kind tag.
	AssetType() AssetType

	// Hash returns a 64-bit content hash of the persisted payload.
	Hash() uint64

	// WriteTo encodes the persisted payload (excluding the kind tag).
	WriteTo(w *binx.Writer)

	// ReadFrom decodes the persisted payload (excluding the kind tag).
	ReadFrom(r *binx.Reader)
}

// AssetBase holds the fields shared by every asset kind.
type AssetBase struct {

	// Name identifies the asset to consumers.
	Name string

	// ID is a stable identity within the producer's asset index.
	ID int32
}

func (ab *AssetBase) AsAssetBase() *AssetBase {
	return ab
}

func (ab *AssetBase) writeTo(w *binx.Writer) {
	w.String(ab.Name)
	w.I32(ab.ID)
}

func (ab *AssetBase) readFrom(r *binx.Reader) {
	ab.Name = r.String()
	ab.ID = r.I32()
}

// FileAsset is an opaque file payload transferred alongside a scene.
type FileAsset struct {
	AssetBase

	Data []byte
}

func (fa *FileAsset) AssetType() AssetType {
	return AssetFile
}

func (fa *FileAsset) Hash() uint64 {
	return contentHash(fa)
}

func (fa *FileAsset) WriteTo(w *binx.Writer) {
	fa.writeTo(w)
	w.Bytes(fa.Data)
}

func (fa *FileAsset) ReadFrom(r *binx.Reader) {
	fa.readFrom(r)
	fa.Data = r.Bytes()
}

// TextureFormat identifies the pixel layout of a [Texture].
type TextureFormat int32

const (
	TextureRaw TextureFormat = iota
	TextureRGBA8
	TextureRGBAF16
	TextureRGBAF32
)

// Texture is an image asset.
type Texture struct {
	AssetBase

	Format TextureFormat
	Width  int32
	Height int32
	Data   []byte
}

func (tx *Texture) AssetType() AssetType {
	return AssetTexture
}

func (tx *Texture) Hash() uint64 {
	return contentHash(tx)
}

func (tx *Texture) WriteTo(w *binx.Writer) {
	tx.writeTo(w)
	w.I32(int32(tx.Format))
	w.I32(tx.Width)
	w.I32(tx.Height)
	w.Bytes(tx.Data)
}

func (tx *Texture) ReadFrom(r *binx.Reader) {
	tx.readFrom(r)
	tx.Format = TextureFormat(r.I32())
	tx.Width = r.I32()
	tx.Height = r.I32()
	tx.Data = r.Bytes()
}

// Material is a PBR surface description referenced by meshes.
type Material struct {
	AssetBase

	// Color is the base color, linear RGBA.
	Color mgl32.Vec4

	// Emission is the emissive color, linear RGBA.
	Emission mgl32.Vec4

	Metallic  float32
	Roughness float32
}

func (mt *Material) AssetType() AssetType {
	return AssetMaterial
}

func (mt *Material) Hash() uint64 {
	return contentHash(mt)
}

func (mt *Material) WriteTo(w *binx.Writer) {
	mt.writeTo(w)
	w.Vec4(mt.Color)
	w.Vec4(mt.Emission)
	w.F32(mt.Metallic)
	w.F32(mt.Roughness)
}

func (mt *Material) ReadFrom(r *binx.Reader) {
	mt.readFrom(r)
	mt.Color = r.Vec4()
	mt.Emission = r.Vec4()
	mt.Metallic = r.F32()
	mt.Roughness = r.F32()
}

// Audio is a sampled-audio asset.
type Audio struct {
	AssetBase

	SampleRate int32
	Channels   int32
	Data       []byte
}

func (au *Audio) AssetType() AssetType {
	return AssetAudio
}

func (au *Audio) Hash() uint64 {
	return contentHash(au)
}

func (au *Audio) WriteTo(w *binx.Writer) {
	au.writeTo(w)
	w.I32(au.SampleRate)
	w.I32(au.Channels)
	w.Bytes(au.Data)
}

func (au *Audio) ReadFrom(r *binx.Reader) {
	au.readFrom(r)
	au.SampleRate = r.I32()
	au.Channels = r.I32()
	au.Data = r.Bytes()
}
