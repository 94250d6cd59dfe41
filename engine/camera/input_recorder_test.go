package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestInputRecorderKeys(t *testing.T) {
	r := NewInputRecorder(800, 600)
	r.KeyDown(common.KeyW)
	in := r.Snapshot()
	assert.True(t, in.Down(common.KeyW))
	assert.False(t, in.Down(common.KeyS))

	r.KeyUp(common.KeyW)
	assert.False(t, in.Down(common.KeyW))
}

func TestInputRecorderDrag(t *testing.T) {
	r := NewInputRecorder(800, 600)
	r.MouseMove(400, 300)
	assert.Equal(t, mgl32.Vec2{}, r.Snapshot().DragDelta)

	r.ButtonDown(400, 300)
	r.MouseMove(410, 295)
	r.MouseMove(420, 290)
	r.Scroll(1)
	r.Scroll(0.5)

	in := r.Snapshot()
	assert.True(t, in.Dragging)
	assert.Equal(t, mgl32.Vec2{20, -10}, in.DragDelta)
	assert.Equal(t, float32(1.5), in.Scroll)
	assert.InDelta(t, 0.05, in.Cursor.X(), 1e-6)
	assert.InDelta(t, -1.0/30, in.Cursor.Y(), 1e-6)

	next := r.Snapshot()
	assert.Equal(t, mgl32.Vec2{}, next.DragDelta)
	assert.Zero(t, next.Scroll)

	r.ButtonUp(800, 0)
	in = r.Snapshot()
	assert.False(t, in.Dragging)
	assert.Equal(t, mgl32.Vec2{1, -1}, in.Cursor)
}
