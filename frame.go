package grpcweb

import "encoding/binary"

// trailerFlag is the high bit of a frame's flag byte; when set the
// frame is the terminal trailer block rather than a data frame.
const trailerFlag byte = 0x80

// frameState is the tagged state of the frame reassembly machine.
// Every poll boundary is a clean checkpoint: the machine advances
// monotonically except for the awaitFlag <-> readData data-frame
// cycle, and reaches done after exactly one trailer block.
type frameState int

const (
	stateAwaitFlag frameState = iota
	stateAwaitDataLen
	stateReadData
	stateAwaitTrailerLen
	stateReadTrailer
	stateDone
)

// frameMachine reassembles length-prefixed gRPC-Web frames out of the
// decoded byte view produced by an encodedBuffer. It never blocks: a
// call to step either makes progress with the bytes on hand or
// returns immediately asking for more.
type frameMachine struct {
	state      frameState
	dataLen    uint32
	trailerLen uint32
	pending    []byte // header + payload bytes of the data frame under assembly
	trailers   Trailers
}

// step drives the state machine forward using whatever bytes are
// currently available in buf. It advances through as many states as
// the buffer allows in one call, stopping the instant it has a full
// data frame to emit, reaches the trailer block, or runs out of
// decoded bytes.
//
// Exactly one of the return values signals progress: produced means a
// data frame is ready via takePending; trailerReady means the trailer
// block was just parsed into m.trailers. Neither being set means the
// buffer was exhausted before a full frame could be assembled, or the
// machine was already in the done state.
func (m *frameMachine) step(buf *encodedBuffer) (produced, trailerReady bool, err error) {
	for {
		switch m.state {
		case stateAwaitFlag:
			if buf.isEmpty() {
				return false, false, nil
			}
			flag := buf.take(1)
			if flag[0]&trailerFlag == 0 {
				m.pending = append(m.pending[:0:0], flag...)
				m.state = stateAwaitDataLen
			} else {
				m.state = stateAwaitTrailerLen
			}

		case stateAwaitDataLen:
			if buf.len() < 4 {
				return false, false, nil
			}
			lenBytes := buf.take(4)
			m.pending = append(m.pending, lenBytes...)
			m.dataLen = binary.BigEndian.Uint32(lenBytes)
			m.state = stateReadData

		case stateReadData:
			n := int(m.dataLen)
			if buf.len() < n {
				return false, false, nil
			}
			if n > 0 {
				m.pending = append(m.pending, buf.take(n)...)
			}
			m.state = stateAwaitFlag
			return true, false, nil

		case stateAwaitTrailerLen:
			if buf.len() < 4 {
				return false, false, nil
			}
			lenBytes := buf.take(4)
			m.trailerLen = binary.BigEndian.Uint32(lenBytes)
			m.state = stateReadTrailer

		case stateReadTrailer:
			n := int(m.trailerLen)
			if buf.len() < n {
				return false, false, nil
			}
			block := buf.take(n)
			block = append(block, '\n')

			trailers, perr := parseTrailers(block)
			if perr != nil {
				return false, false, perr
			}
			m.trailers = trailers
			m.state = stateDone
			return false, true, nil

		case stateDone:
			return false, false, nil
		}
	}
}

// takePending hands off the assembled data frame and clears it so the
// next awaitFlag cycle starts from a clean slate.
func (m *frameMachine) takePending() []byte {
	out := m.pending
	m.pending = nil
	return out
}
