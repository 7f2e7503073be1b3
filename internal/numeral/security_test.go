package numeral

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConcurrentSafety verifies the shared tables are only read.
func TestConcurrentSafety(t *testing.T) {
	var wg sync.WaitGroup

	const goroutines = 100

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, opts := range []Options{{}, {Currency: true}, {Script: Simplified}, {Currency: true, Script: Simplified}} {
				_, _ = RenderOptions("12345678901234567890", opts)
				_, _ = RenderOptions("-2014.05", opts)
				_, _ = RenderOptions("0.99995", opts)
				_, _ = RenderOptions("bad", opts)
			}
		}()
	}

	wg.Wait()

	got, err := Render("2014", false)
	assert.NoError(t, err)
	assert.Equal(t, "兩千零一十四", got)
}

// TestRenderHostileInput verifies oversized and malformed input is rejected
// without panicking.
func TestRenderHostileInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		strings.Repeat("9", 10000),
		"0." + strings.Repeat("9", 10000),
		strings.Repeat("-", 100) + "1",
		string([]byte{0x00}),
		"\xff\xfe",
		"１",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_, err := Render(in, false)
			assert.Error(t, err)
		})
		// Currency mode rounds first, so a long fraction may still render.
		assert.NotPanics(t, func() {
			_, _ = Render(in, true)
		})
	}
}
