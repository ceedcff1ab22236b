package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPathExtend_DoesNotAliasSiblings verifies that two paths extended from
// the same parent never share backing storage.
func TestPathExtend_DoesNotAliasSiblings(t *testing.T) {
	parent := Path{Named("root")}

	left := parent.Extend(Named("left"))
	right := parent.Extend(Named("right"))

	assert.Equal(t, "left", left[1].Value)
	assert.Equal(t, "right", right[1].Value)
	assert.Equal(t, Path{Named("root")}, parent)
}

// TestPathString renders segment values joined by dots for diagnostics.
func TestPathString(t *testing.T) {
	p := Path{Named("camelCased"), Literal("secret-code"), Meta(MarkerEvery)}
	assert.Equal(t, "camelCased.secret-code.every", p.String())
	assert.Equal(t, "", Path{}.String())
}

// TestMeta_RenderedValues pins the literal rendering of the markers.
func TestMeta_RenderedValues(t *testing.T) {
	assert.Equal(t, "every", Meta(MarkerEvery).Value)
	assert.Equal(t, "each", Meta(MarkerEach).Value)
	assert.Equal(t, "FILE", Meta(MarkerFile).Value)
	assert.Equal(t, SegmentMeta, Meta(MarkerEach).Kind)
}
