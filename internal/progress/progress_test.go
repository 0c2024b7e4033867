package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryReadsBackTalliedCounts(t *testing.T) {
	counters, scope := NewCLICounters()

	counters.PiecesDownloaded.Inc(2)
	counters.BytesDownloaded.Inc(32768)
	counters.BlocksRequested.Inc(3)

	pieces, bytesDownloaded, blocks := Summary(scope)
	assert.EqualValues(t, 2, pieces)
	assert.EqualValues(t, 32768, bytesDownloaded)
	assert.EqualValues(t, 3, blocks)
}

func TestSummaryOfUntouchedScopeIsZero(t *testing.T) {
	_, scope := NewCLICounters()
	pieces, bytesDownloaded, blocks := Summary(scope)
	assert.Zero(t, pieces)
	assert.Zero(t, bytesDownloaded)
	assert.Zero(t, blocks)
}
