package bloom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/meritrank/bloom"
	"github.com/katalvlaran/meritrank/node"
)

func TestMarkThenTest(t *testing.T) {
	var marks node.Marks
	assert.False(t, bloom.Test(marks, "", "U_source"))

	marks = bloom.Mark(marks, "", "U_source")
	assert.True(t, bloom.Test(marks, "", "U_source"))
}

func TestMarkIsScopedPerContextAndSource(t *testing.T) {
	var marks node.Marks
	marks = bloom.Mark(marks, "", "U_a")

	assert.True(t, bloom.Test(marks, "", "U_a"))
	assert.False(t, bloom.Test(marks, "", "U_b"), "different source must not be marked")
	assert.False(t, bloom.Test(marks, "ctxX", "U_a"), "different context must not be marked")
}
