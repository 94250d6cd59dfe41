package builtin

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-solar/engine/model"
	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/shader/wgsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsShareVertexAndFrameLayout(t *testing.T) {
	for name, src := range map[string]string{"lit": Lit, "line": Line} {
		t.Run(name, func(t *testing.T) {
			m, err := wgsl.Reflect(src)
			require.NoError(t, err)
			assert.Equal(t, "vs_main", m.VertexEntry)
			assert.Equal(t, "fs_main", m.FragmentEntry)

			require.Len(t, m.VertexInputs, 1)
			assert.EqualValues(t, model.GPUVertexSize, m.VertexInputs[0].Stride)

			frame, ok := m.Binding("frame")
			require.True(t, ok)
			assert.Equal(t, 0, frame.Group)
			assert.EqualValues(t, 128, frame.MinSize)

			object, ok := m.Binding("object")
			require.True(t, ok)
			assert.Equal(t, 1, object.Group)
			assert.EqualValues(t, 80, object.MinSize)
		})
	}
}

func TestLitSamplesOneTexture(t *testing.T) {
	m, err := wgsl.Reflect(Lit)
	require.NoError(t, err)
	group := m.Groups()[1]
	require.Len(t, group, 3)
	assert.Equal(t, wgsl.KindTexture, group[1].Kind)
	assert.Equal(t, wgsl.KindSampler, group[2].Kind)
}
