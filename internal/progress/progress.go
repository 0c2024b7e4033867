// Package progress exposes the download's tally counters: pieces and
// bytes moved, and blocks requested, so a caller can report progress
// or export metrics without the download logic itself knowing about
// any particular metrics backend.
package progress

import (
	"strings"

	"github.com/uber-go/tally"
)

// Counters groups the handful of tally counters a download emits.
type Counters struct {
	PiecesDownloaded tally.Counter
	BytesDownloaded  tally.Counter
	BlocksRequested  tally.Counter
}

// NewCounters builds Counters scoped under s, matching the naming
// style of a metrics scope registered per-torrent.
func NewCounters(s tally.Scope) *Counters {
	return &Counters{
		PiecesDownloaded: s.Counter("pieces_downloaded"),
		BytesDownloaded:  s.Counter("bytes_downloaded"),
		BlocksRequested:  s.Counter("blocks_requested"),
	}
}

// NewNopCounters returns Counters backed by tally's no-op scope, for
// callers that don't care about metrics (tests).
func NewNopCounters() *Counters {
	return NewCounters(tally.NoopScope)
}

// NewCLICounters builds Counters backed by an in-memory tally test
// scope. The CLI has no statsd or m3 collector to report to, but the
// scope still tallies real counts the caller can read back with
// Summary once the run finishes, instead of wiring tally to a sink
// that discards them.
func NewCLICounters() (*Counters, *tally.TestScope) {
	scope := tally.NewTestScope("gobit", nil)
	return NewCounters(scope), scope
}

// Summary reads the tallied values back out of a scope built by
// NewCLICounters. It matches by counter name, with the scope's
// "prefix." qualifier stripped, rather than by snapshot map key.
func Summary(scope *tally.TestScope) (piecesDownloaded, bytesDownloaded, blocksRequested int64) {
	for _, c := range scope.Snapshot().Counters() {
		name := c.Name()
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		switch name {
		case "pieces_downloaded":
			piecesDownloaded = c.Value()
		case "bytes_downloaded":
			bytesDownloaded = c.Value()
		case "blocks_requested":
			blocksRequested = c.Value()
		}
	}
	return piecesDownloaded, bytesDownloaded, blocksRequested
}
