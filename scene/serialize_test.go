// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	sc := testScene()
	var b bytes.Buffer
	require.NoError(t, sc.Write(&b))

	got, err := ReadScene(&b)
	require.NoError(t, err)
	assert.Equal(t, sc.Settings, got.Settings)
	assert.Equal(t, sc.Assets, got.Assets)
	assert.Equal(t, sc.Entities, got.Entities)
	assert.Equal(t, sc.Constraints, got.Constraints)
	assert.Equal(t, sc.Hash(), got.Hash())
}

func TestRoundTripEmpty(t *testing.T) {
	sc := NewScene("empty")
	var b bytes.Buffer
	require.NoError(t, sc.Write(&b))

	got, err := ReadScene(&b)
	require.NoError(t, err)
	assert.Equal(t, "empty", got.Settings.Name)
	assert.Empty(t, got.Entities)
}

func TestIntegrityCorruptPayload(t *testing.T) {
	sc := testScene()
	sc.Constraints = nil // keep hashed entity data at the tail
	buf := snapshot(t, sc)

	// flip a byte inside the last entity's payload, well past the hash
	buf[len(buf)-6] ^= 0xff
	_, err := ReadScene(bytes.NewReader(buf))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestIntegrityCorruptHash(t *testing.T) {
	sc := testScene()
	buf := snapshot(t, sc)

	buf[3] ^= 0x10 // inside the leading validation hash
	_, err := ReadScene(bytes.NewReader(buf))
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestIntegrityTruncated(t *testing.T) {
	sc := testScene()
	buf := snapshot(t, sc)

	_, err := ReadScene(bytes.NewReader(buf[:len(buf)/2]))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDataIntegrity) // plain decode failure, not a hash lie
}

func TestUnknownEntityTag(t *testing.T) {
	sc := NewScene("")
	tf := NewTransform("/X")
	tf.ID = 1
	sc.Entities = []Entity{tf}
	buf := snapshot(t, sc)

	// offset of the first entity's type tag:
	// hash(8) + settings(4+0+4+4) + asset count(4) + entity count(4)
	const tagOfs = 8 + 12 + 4 + 4
	buf[tagOfs] = 0xee
	_, err := ReadScene(bytes.NewReader(buf))
	assert.ErrorContains(t, err, "unknown entity type tag")
}

func TestHashStableAcrossHierarchy(t *testing.T) {
	sc := testScene()
	h := sc.Hash()
	sc.BuildHierarchy()
	assert.Equal(t, h, sc.Hash(), "parent links and derived matrices are not hashed")
}
