package conn

import (
	"encoding/binary"
	"errors"
	"io"
)

const maxFrameSize = 1 << 24

var errFrameSize = errors.New("conn: invalid frame size")

// writeFrame writes a u32 LE length-prefixed frame.
func writeFrame(w io.Writer, data []byte) error {
	if len(data) > maxFrameSize {
		return errFrameSize
	}
	buf := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(data)))
	copy(buf[4:], data)
	_, err := w.Write(buf)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	var lenbuf [4]byte
	if _, err := io.ReadFull(r, lenbuf[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenbuf[:])
	if n > maxFrameSize {
		return nil, errFrameSize
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
