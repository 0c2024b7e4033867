// Package peer dials a single remote peer, drives the handshake and
// choke/interest handshake dance, and exchanges block requests for a
// piece download. It handles exactly one peer connection at a time;
// fanning a download out across several peers concurrently is out of
// scope.
package peer

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/internal/bterrors"
)

// State is the explicit connection state machine a Session moves
// through. A Session only ever moves forward; there is no transition
// back to an earlier state short of Close.
type State int

const (
	StateConnected State = iota
	StateHandshaken
	StateBitfieldReceived
	StateInterested
	StateUnchoked
	StateDownloading
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateHandshaken:
		return "handshaken"
	case StateBitfieldReceived:
		return "bitfield-received"
	case StateInterested:
		return "interested"
	case StateUnchoked:
		return "unchoked"
	case StateDownloading:
		return "downloading"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// dialTimeout bounds the initial TCP dial; a peer that doesn't accept
// a connection promptly is not worth waiting on.
const dialTimeout = 10 * time.Second

// Session is a handshaken connection to a single remote peer, carrying
// its choke/interest state.
type Session struct {
	conn     net.Conn
	RemoteID [20]byte
	Bitfield Bitfield

	state  State
	choked bool
}

// Dial connects to address, performs the 68-byte handshake, and
// returns a Session in StateHandshaken. The caller must still await
// the bitfield and negotiate interest before requesting blocks.
func Dial(ctx context.Context, address string, infoHash, id [20]byte) (*Session, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrap(bterrors.ErrTransportError, err.Error())
	}

	remoteID, err := performHandshake(conn, infoHash, id)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Session{
		conn:     conn,
		RemoteID: remoteID,
		state:    StateHandshaken,
		choked:   true,
	}, nil
}

// State reports the session's current position in the state machine.
func (s *Session) State() State {
	return s.state
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	s.state = StateClosed
	return s.conn.Close()
}

// AwaitBitfield reads and discards messages until a bitfield arrives
// or the connection ends, recording whatever it finds on the session.
// A peer with no pieces may never send a bitfield at all and instead
// announce pieces one at a time as it acquires them, or simply close
// the connection; AwaitBitfield treats either as an empty bitfield
// rather than an error, since a bitfield is advisory and a peer is
// never required to send one.
func (s *Session) AwaitBitfield(ctx context.Context) error {
	if s.state != StateHandshaken {
		return errors.Wrapf(bterrors.ErrProtocolViolation, "AwaitBitfield called in state %s", s.state)
	}

	for {
		f, err := s.readFrameCtx(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.state = StateBitfieldReceived
				return nil
			}
			return err
		}
		if f.keepAlive {
			continue
		}
		switch f.id {
		case msgBitfield:
			s.Bitfield = append(Bitfield(nil), f.payload...)
			s.state = StateBitfieldReceived
			return nil
		case msgHave:
			index, err := decodeHave(f.payload)
			if err != nil {
				return err
			}
			s.growBitfield(index)
			s.Bitfield.Set(index)
		default:
			// Ignored: the bitfield hasn't arrived yet.
		}
	}
}

// growBitfield extends the bitfield so bit index can be addressed.
func (s *Session) growBitfield(index int) {
	needed := index/8 + 1
	for len(s.Bitfield) < needed {
		s.Bitfield = append(s.Bitfield, 0)
	}
}

// SendInterested sends the interested message and advances the state
// machine. It does not wait for unchoke; call AwaitUnchoke for that.
func (s *Session) SendInterested() error {
	if s.state != StateBitfieldReceived && s.state != StateInterested {
		return errors.Wrapf(bterrors.ErrProtocolViolation, "SendInterested called in state %s", s.state)
	}
	if err := writeFrame(s.conn, msgInterested, nil); err != nil {
		return errors.Wrap(bterrors.ErrTransportError, err.Error())
	}
	s.state = StateInterested
	return nil
}

// AwaitUnchoke reads messages until an unchoke arrives. Intervening
// choke and have messages update session state but do not themselves
// satisfy the wait; any other message is discarded.
func (s *Session) AwaitUnchoke(ctx context.Context) error {
	if s.state != StateInterested {
		return errors.Wrapf(bterrors.ErrProtocolViolation, "AwaitUnchoke called in state %s", s.state)
	}
	for {
		f, err := s.readFrameCtx(ctx)
		if err != nil {
			return err
		}
		if f.keepAlive {
			continue
		}
		switch f.id {
		case msgUnchoke:
			s.choked = false
			s.state = StateUnchoked
			return nil
		case msgChoke:
			s.choked = true
		case msgHave:
			index, err := decodeHave(f.payload)
			if err != nil {
				return err
			}
			s.growBitfield(index)
			s.Bitfield.Set(index)
		}
	}
}

// Choked reports whether the remote peer currently has us choked.
func (s *Session) Choked() bool {
	return s.choked
}

// RequestBlock sends a single request message for length bytes of
// piece index starting at offset begin. There is at most one
// outstanding request at a time; the caller must read the matching
// piece message via ReadPiece before issuing another request.
func (s *Session) RequestBlock(index, begin, length int) error {
	if s.state != StateUnchoked && s.state != StateDownloading {
		return errors.Wrapf(bterrors.ErrProtocolViolation, "RequestBlock called in state %s", s.state)
	}
	if s.choked {
		return errors.Wrap(bterrors.ErrProtocolViolation, "RequestBlock called while choked")
	}
	if err := writeFrame(s.conn, msgRequest, encodeRequest(index, begin, length)); err != nil {
		return errors.Wrap(bterrors.ErrTransportError, err.Error())
	}
	s.state = StateDownloading
	return nil
}

// ReadPiece blocks until the matching piece message for a prior
// RequestBlock arrives, skipping over have/keep-alive messages and
// piece messages for other indices in between, and returns its block
// offset and bytes. A choke received while waiting ends the wait with
// ErrProtocolViolation.
func (s *Session) ReadPiece(ctx context.Context, wantIndex int) (begin int, block []byte, err error) {
	for {
		f, err := s.readFrameCtx(ctx)
		if err != nil {
			return 0, nil, err
		}
		if f.keepAlive {
			continue
		}
		switch f.id {
		case msgPiece:
			index, begin, block, err := decodePiece(f.payload)
			if err != nil {
				return 0, nil, err
			}
			if index != wantIndex {
				// Stale data for a piece we're no longer requesting; ignore.
				continue
			}
			return begin, block, nil
		case msgChoke:
			s.choked = true
			return 0, nil, errors.Wrap(bterrors.ErrProtocolViolation, "peer choked us mid-download")
		case msgHave:
			idx, err := decodeHave(f.payload)
			if err != nil {
				return 0, nil, err
			}
			s.growBitfield(idx)
			s.Bitfield.Set(idx)
		}
	}
}

// readFrameCtx reads one frame, honoring ctx cancellation by pushing a
// read deadline derived from the context onto the connection.
func (s *Session) readFrameCtx(ctx context.Context) (frame, error) {
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetReadDeadline(deadline)
	} else {
		s.conn.SetReadDeadline(time.Time{})
	}
	f, err := readFrame(s.conn)
	if err != nil {
		if ctx.Err() != nil {
			return frame{}, errors.Wrap(bterrors.ErrTransportError, ctx.Err().Error())
		}
		return frame{}, err
	}
	return f, nil
}
