// Package bterrors declares the sentinel error kinds used throughout
// gobit. Call sites wrap a sentinel with github.com/pkg/errors so that
// errors.Is still matches it while the message carries context.
package bterrors

import "errors"

var (
	// ErrMalformedEncoding is returned by the bencode decoder on any
	// syntax violation.
	ErrMalformedEncoding = errors.New("malformed bencode encoding")

	// ErrInvalidMetainfo is returned when a metainfo file is missing a
	// required field or has a field of the wrong type.
	ErrInvalidMetainfo = errors.New("invalid metainfo")

	// ErrTrackerError is returned on tracker transport failure or a
	// malformed tracker reply.
	ErrTrackerError = errors.New("tracker error")

	// ErrHandshakeFailed is returned on protocol string mismatch,
	// info-hash mismatch, or a short read during the handshake.
	ErrHandshakeFailed = errors.New("handshake failed")

	// ErrProtocolViolation is returned for an unexpected message id, a
	// mismatched index/begin on a piece frame, or an oversized frame.
	ErrProtocolViolation = errors.New("peer protocol violation")

	// ErrPieceDigestMismatch is returned when a downloaded piece's
	// SHA-1 does not match its expected digest.
	ErrPieceDigestMismatch = errors.New("piece digest mismatch")

	// ErrUnexpectedEOF is returned when a socket closes mid-frame.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")

	// ErrTransportError is returned when a socket write fails or a
	// connection cannot be established.
	ErrTransportError = errors.New("transport error")

	// ErrIOError is returned when a filesystem operation fails.
	ErrIOError = errors.New("io error")
)
