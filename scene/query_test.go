// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetsOf(t *testing.T) {
	sc := testScene()

	txs := AssetsOf[*Texture](sc)
	require.Len(t, txs, 1)
	assert.Equal(t, "checker", txs[0].Name)

	clips := AssetsOf[*AnimationClip](sc)
	require.Len(t, clips, 1)
	assert.Equal(t, "bounce", clips[0].Name)

	assert.Empty(t, AssetsOf[*Texture](NewScene("")))
}

func TestEntitiesOf(t *testing.T) {
	sc := testScene()

	cams := EntitiesOf[*Camera](sc)
	require.Len(t, cams, 1)
	assert.Equal(t, int32(2), cams[0].ID)

	sc.Entities = append(sc.Entities, testMesh("/Root/Body2", 6))
	meshes := EntitiesOf[*Mesh](sc)
	require.Len(t, meshes, 2)
	// relative order preserved
	assert.Equal(t, int32(4), meshes[0].ID)
	assert.Equal(t, int32(6), meshes[1].ID)
}
