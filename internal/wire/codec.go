// Package wire implements a deterministic frame codec: a 4-byte
// big-endian length prefix followed by exactly that many bytes of
// payload, over any io.Reader/io.Writer (typically a net.Conn). The only
// authentication on this protocol is the handshake's optional shared
// secret, not a per-message signature or sequence envelope.
package wire

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrFrameTooLarge is returned by ReadPacket when the advertised frame
// length exceeds MaxFrameSize. The payload is never read in this case:
// the connection should be closed by the caller.
var ErrFrameTooLarge = errors.New("wire: frame exceeds maximum size")

// WritePacket encodes p as JSON and writes it as [4-byte BE length][payload],
// flushing w afterwards when it is a *bufio.Writer.
func WritePacket(w io.Writer, p Packet) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("wire: marshal packet: %w", err)
	}
	if len(data) > MaxFrameSize {
		return fmt.Errorf("wire: encoded packet too large: %d > %d", len(data), MaxFrameSize)
	}

	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(data)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wire: write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("wire: write payload: %w", err)
	}
	if bw, ok := w.(*bufio.Writer); ok {
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("wire: flush: %w", err)
		}
	}
	return nil
}

// ReadPacket reads one length-prefixed frame and decodes it as a Packet.
// A length header exceeding MaxFrameSize is rejected as ErrFrameTooLarge
// before any payload bytes are consumed.
func ReadPacket(r io.Reader) (Packet, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return Packet{}, fmt.Errorf("wire: read header: %w", err)
	}

	length := binary.BigEndian.Uint32(header)
	if length > uint32(MaxFrameSize) {
		return Packet{}, ErrFrameTooLarge
	}
	if length == 0 {
		return Packet{}, fmt.Errorf("wire: zero-length frame")
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return Packet{}, fmt.Errorf("wire: read payload: %w", err)
	}

	var p Packet
	if err := json.Unmarshal(data, &p); err != nil {
		return Packet{}, fmt.Errorf("wire: decode packet: %w", err)
	}
	return p, nil
}
