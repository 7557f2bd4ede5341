// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"strings"

	"cogentcore.org/scenesync/base/binx"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// EntityType identifies the concrete kind of an [Entity].
type EntityType int32

const (
	EntityUnknown EntityType = iota
	EntityTransform
	EntityCamera
	EntityLight
	EntityMesh
	EntityPoints
)

var entityTypeNames = []string{"Unknown", "Transform", "Camera", "Light", "Mesh", "Points"}

func (et EntityType) String() string {
	if et < 0 || int(et) >= len(entityTypeNames) {
		return "EntityType(invalid)"
	}
	return entityTypeNames[et]
}

// CacheFlags carry per-entity hints used when replaying cached snapshots.
type CacheFlags uint32

const (
	// CacheConstantTopology marks a geometry entity whose vertex and index
	// structure is stable across frames, which makes vertex-wise
	// interpolation meaningful. [Scene.Lerp] holds the first scene's entity
	// verbatim when this is unset.
	CacheConstantTopology CacheFlags = 1 << iota
)

// StripFlags record which field groups [Entity.Strip] (or [Entity.Diff])
// removed relative to a base entity, so [Entity.Merge] can restore exactly
// those groups. They are part of the persisted payload: a stripped entity
// is only useful together with its flags.
type StripFlags uint32

const (
	StrippedReference StripFlags = 1 << iota
	StrippedPosition
	StrippedRotation
	StrippedScale

	// StrippedParams covers the kind-specific scalar parameter block
	// (camera projection, light parameters). Slice-valued geometry data
	// uses nil-means-stripped instead.
	StrippedParams
)

// Entity is a single node of a scene snapshot. Concrete kinds ([Transform],
// [Camera], [Light], [Mesh], [Points]) embed [EntityBase] and implement the
// kind-specific parts of the capability surface. None of the operations may
// have side effects beyond the receiver; that property is what lets
// [Scene]-level algorithms fan entities out across goroutines without locks.
type Entity interface {

	// AsEntityBase returns the [EntityBase] with the core fields
	// shared by all entity kinds.
	AsEntityBase() *EntityBase

	// Type returns the concrete kind tag.
	Type() EntityType

	// IsGeometry reports whether the entity carries per-vertex geometry.
	IsGeometry() bool

	// Clone returns a deep copy. If detach is true the copy drops its
	// parent linkage and instance reference, making it self-contained.
	Clone(detach bool) Entity

	// Strip blanks out fields identical to base's, recording what was
	// removed, so the entity can be transmitted as a delta against a
	// base snapshot held by the receiver. Mismatched kinds are a no-op.
	Strip(base Entity)

	// Merge restores fields previously removed by Strip (or Diff) from
	// base, rebuilding a full entity from a partial one.
	Merge(base Entity)

	// Diff makes the receiver a field-level delta of e2 against e1:
	// changed fields take e2's value, unchanged ones are stripped.
	// The receiver should start as a clone of e1.
	Diff(e1, e2 Entity)

	// Lerp sets the receiver to the interpolation of e1 and e2 at
	// fraction t (0 = e1, 1 = e2).
	Lerp(e1, e2 Entity, t float32)

	// Hash returns a 64-bit content hash of the persisted payload.
	Hash() uint64

	// WriteTo encodes the persisted payload (excluding the kind tag).
	WriteTo(w *binx.Writer)

	// ReadFrom decodes the persisted payload (excluding the kind tag).
	ReadFrom(r *binx.Reader)
}

// EntityBase holds the fields shared by every entity kind: the hierarchical
// path, stable identity, local TRS transform, and the derived hierarchy
// state managed by [Scene.BuildHierarchy].
type EntityBase struct {

	// Path is the slash-separated hierarchical name, unique within a
	// scene after normalization.
	Path string

	// Reference optionally names the path of an entity this one
	// instances.
	Reference string

	// ID is the stable identity used to decide whether two entities in
	// different snapshots are the same logical entity. Path equality is
	// only used for hierarchy lookup.
	ID int32

	// Visible is the entity's visibility state.
	Visible bool

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	// Cache holds snapshot-replay hints such as [CacheConstantTopology].
	Cache CacheFlags

	// Stripped records field groups removed by Strip or Diff.
	Stripped StripFlags

	// Parent indexes the owning scene's entity collection (-1 for a
	// root). It is observational only: set by [Scene.BuildHierarchy],
	// never persisted, and invalidated wholesale by the next rebuild.
	Parent int

	// Local is the matrix composed from Position, Rotation and Scale
	// by [Scene.BuildHierarchy]. Derived, never persisted.
	Local mgl32.Mat4

	// Global is Local composed with all ancestor Locals, set in the
	// second pass of [Scene.BuildHierarchy]. Derived, never persisted.
	Global mgl32.Mat4
}

// Defaults sets identity transform values, visibility on, and no parent.
func (eb *EntityBase) Defaults() {
	eb.Visible = true
	eb.Rotation = mgl32.QuatIdent()
	eb.Scale = mgl32.Vec3{1, 1, 1}
	eb.Parent = -1
}

func (eb *EntityBase) AsEntityBase() *EntityBase {
	return eb
}

// Name returns the last segment of the entity's path.
func (eb *EntityBase) Name() string {
	return eb.Path[strings.LastIndexByte(eb.Path, '/')+1:]
}

// ParentPath returns the path with the last segment removed, or "" for a
// top-level path such as "/Root".
func (eb *EntityBase) ParentPath() string {
	i := strings.LastIndexByte(eb.Path, '/')
	if i <= 0 {
		return ""
	}
	return eb.Path[:i]
}

// Matrix composes the local transform matrix from Position, Rotation and
// Scale, in scale-then-rotate-then-translate order.
func (eb *EntityBase) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(eb.Position[0], eb.Position[1], eb.Position[2])
	m = m.Mul4(eb.Rotation.Mat4())
	return m.Mul4(mgl32.Scale3D(eb.Scale[0], eb.Scale[1], eb.Scale[2]))
}

func (eb *EntityBase) stripBase(base *EntityBase) {
	if eb.Reference == base.Reference {
		eb.Reference = ""
		eb.Stripped |= StrippedReference
	}
	if eb.Position == base.Position {
		eb.Position = mgl32.Vec3{}
		eb.Stripped |= StrippedPosition
	}
	if eb.Rotation == base.Rotation {
		eb.Rotation = mgl32.Quat{}
		eb.Stripped |= StrippedRotation
	}
	if eb.Scale == base.Scale {
		eb.Scale = mgl32.Vec3{}
		eb.Stripped |= StrippedScale
	}
}

func (eb *EntityBase) mergeBase(base *EntityBase) {
	if eb.Stripped&StrippedReference != 0 {
		eb.Reference = base.Reference
	}
	if eb.Stripped&StrippedPosition != 0 {
		eb.Position = base.Position
	}
	if eb.Stripped&StrippedRotation != 0 {
		eb.Rotation = base.Rotation
	}
	if eb.Stripped&StrippedScale != 0 {
		eb.Scale = base.Scale
	}
	eb.Stripped &^= StrippedReference | StrippedPosition | StrippedRotation | StrippedScale
}

func (eb *EntityBase) diffBase(e1, e2 *EntityBase) {
	eb.Path = e2.Path
	eb.ID = e2.ID
	eb.Visible = e2.Visible
	eb.Cache = e2.Cache
	eb.Stripped = 0
	eb.Reference = e2.Reference
	if e1.Reference == e2.Reference {
		eb.Reference = ""
		eb.Stripped |= StrippedReference
	}
	eb.Position = e2.Position
	if e1.Position == e2.Position {
		eb.Position = mgl32.Vec3{}
		eb.Stripped |= StrippedPosition
	}
	eb.Rotation = e2.Rotation
	if e1.Rotation == e2.Rotation {
		eb.Rotation = mgl32.Quat{}
		eb.Stripped |= StrippedRotation
	}
	eb.Scale = e2.Scale
	if e1.Scale == e2.Scale {
		eb.Scale = mgl32.Vec3{}
		eb.Stripped |= StrippedScale
	}
}

func (eb *EntityBase) lerpBase(e1, e2 *EntityBase, t float32) {
	eb.Position = lerpVec3(e1.Position, e2.Position, t)
	eb.Rotation = mgl32.QuatSlerp(e1.Rotation, e2.Rotation, t)
	eb.Scale = lerpVec3(e1.Scale, e2.Scale, t)
}

func (eb *EntityBase) writeTo(w *binx.Writer) {
	w.String(eb.Path)
	w.String(eb.Reference)
	w.I32(eb.ID)
	w.Bool(eb.Visible)
	w.Vec3(eb.Position)
	w.Quat(eb.Rotation)
	w.Vec3(eb.Scale)
	w.U32(uint32(eb.Cache))
	w.U32(uint32(eb.Stripped))
}

func (eb *EntityBase) readFrom(r *binx.Reader) {
	eb.Path = r.String()
	eb.Reference = r.String()
	eb.ID = r.I32()
	eb.Visible = r.Bool()
	eb.Position = r.Vec3()
	eb.Rotation = r.Quat()
	eb.Scale = r.Vec3()
	eb.Cache = CacheFlags(r.U32())
	eb.Stripped = StripFlags(r.U32())
	eb.Parent = -1
}

// payloadWriter is the subset of [Entity] and [Asset] needed for hashing.
type payloadWriter interface {
	WriteTo(w *binx.Writer)
}

// contentHash returns the xxhash64 of pw's persisted payload. Parent links
// and derived matrices are not part of the payload, so the hash is stable
// across hierarchy rebuilds.
func contentHash(pw payloadWriter) uint64 {
	d := xxhash.New()
	pw.WriteTo(binx.NewWriter(d))
	return d.Sum64()
}

func lerpF32(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func lerpVec4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// Transform is a pure grouping node: it carries only the shared entity
// fields and exists to shape the hierarchy.
type Transform struct {
	EntityBase
}

// NewTransform returns a Transform at the given hierarchical path.
func NewTransform(path string) *Transform {
	tf := &Transform{}
	tf.Defaults()
	tf.Path = path
	return tf
}

func (tf *Transform) Type() EntityType {
	return EntityTransform
}

func (tf *Transform) IsGeometry() bool {
	return false
}

func (tf *Transform) Clone(detach bool) Entity {
	c := *tf
	if detach {
		c.Parent = -1
		c.Reference = ""
	}
	return &c
}

func (tf *Transform) Strip(base Entity) {
	if b, ok := base.(*Transform); ok {
		tf.stripBase(&b.EntityBase)
	}
}

func (tf *Transform) Merge(base Entity) {
	if b, ok := base.(*Transform); ok {
		tf.mergeBase(&b.EntityBase)
	}
}

func (tf *Transform) Diff(e1, e2 Entity) {
	tf.diffBase(e1.AsEntityBase(), e2.AsEntityBase())
}

func (tf *Transform) Lerp(e1, e2 Entity, t float32) {
	tf.lerpBase(e1.AsEntityBase(), e2.AsEntityBase(), t)
}

func (tf *Transform) Hash() uint64 {
	return contentHash(tf)
}

func (tf *Transform) WriteTo(w *binx.Writer) {
	tf.writeTo(w)
}

func (tf *Transform) ReadFrom(r *binx.Reader) {
	tf.readFrom(r)
}
