package piece

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileExactMultiple(t *testing.T) {
	blocks := tile(BlockSize * 2)
	if assert.Len(t, blocks, 2) {
		assert.Equal(t, block{offset: 0, length: BlockSize}, blocks[0])
		assert.Equal(t, block{offset: BlockSize, length: BlockSize}, blocks[1])
	}
}

func TestTileWithRemainder(t *testing.T) {
	blocks := tile(BlockSize + 100)
	if assert.Len(t, blocks, 2) {
		assert.Equal(t, block{offset: BlockSize, length: 100}, blocks[1])
	}
}

func TestTileSmallerThanOneBlock(t *testing.T) {
	blocks := tile(10)
	if assert.Len(t, blocks, 1) {
		assert.Equal(t, block{offset: 0, length: 10}, blocks[0])
	}
}

func TestTileZeroLength(t *testing.T) {
	assert.Empty(t, tile(0))
}
