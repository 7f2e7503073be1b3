package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteWithoutBackend(t *testing.T) {
	if Available() {
		t.Skip("clipboard backend present; not touching the user's clipboard")
	}
	assert.ErrorIs(t, Write("壹佰元整"), ErrUnavailable)
}
