// Package gobitlog wraps a zap logger with the structured events this
// client emits: connection lifecycle, handshake outcomes, and piece
// progress. Call sites log a named event with typed fields rather than
// formatting strings themselves.
package gobitlog

import (
	"go.uber.org/zap"
)

// Logger wraps the structured events a download run emits.
type Logger struct {
	zap *zap.Logger
}

// New builds a Logger from a production zap configuration. verbose
// lowers the level to debug; otherwise only info and above are
// emitted.
func New(verbose bool) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zap: zl}, nil
}

// NewNop returns a Logger that discards everything, for tests and
// library callers that don't want log output.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Dialing logs an outbound connection attempt.
func (l *Logger) Dialing(address string) {
	l.zap.Debug("dialing peer", zap.String("address", address))
}

// HandshakeOK logs a completed handshake.
func (l *Logger) HandshakeOK(address string, remoteID [20]byte) {
	l.zap.Info("handshake complete",
		zap.String("address", address),
		zap.Binary("remote_peer_id", remoteID[:]))
}

// HandshakeFailed logs a failed handshake attempt.
func (l *Logger) HandshakeFailed(address string, err error) {
	l.zap.Warn("handshake failed",
		zap.String("address", address),
		zap.Error(err))
}

// PieceDownloaded logs a verified piece.
func (l *Logger) PieceDownloaded(index, total int) {
	l.zap.Info("piece downloaded",
		zap.Int("index", index),
		zap.Int("total", total))
}

// PieceFailed logs a piece that failed digest verification or
// transport.
func (l *Logger) PieceFailed(index int, err error) {
	l.zap.Error("piece failed",
		zap.Int("index", index),
		zap.Error(err))
}

// TrackerAnnounce logs a successful tracker announce.
func (l *Logger) TrackerAnnounce(announceURL string, peerCount int) {
	l.zap.Info("tracker announce",
		zap.String("url", announceURL),
		zap.Int("peers", peerCount))
}

// DownloadSummary logs the tallied counters at the end of a run.
func (l *Logger) DownloadSummary(piecesDownloaded, bytesDownloaded, blocksRequested int64) {
	l.zap.Info("download summary",
		zap.Int64("pieces_downloaded", piecesDownloaded),
		zap.Int64("bytes_downloaded", bytesDownloaded),
		zap.Int64("blocks_requested", blocksRequested))
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	l.zap.Sync()
}
