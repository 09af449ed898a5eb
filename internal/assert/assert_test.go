package assert

import (
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestThat(t *testing.T) {
	t.Run("True", func(t *testing.T) {
		That(true, "never %s", "shown")
	})

	t.Run("FalseWithArgs", func(t *testing.T) {
		assert.EqualValues(t, recovered(func() { That(false, "want %d", 1) }), "want 1", "panic message")
	})

	t.Run("FalseWithoutArgs", func(t *testing.T) {
		assert.EqualValues(t, recovered(func() { That(false, "100%") }), "100%", "message is not formatted")
	})
}

func TestIndex(t *testing.T) {
	Index(0, 1, "node")

	assert.EqualValues(t, recovered(func() { Index(1, 1, "node") }), "node index 1 out of range [0, 1)", "panic message")
	assert.EqualValues(t, recovered(func() { Index(-1, 3, "node") }), "node index -1 out of range [0, 3)", "panic message")
}

func recovered(fn func()) (msg any) {
	defer func() {
		msg = recover()
	}()
	fn()
	return nil
}
