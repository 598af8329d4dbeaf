package transport_test

import (
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/meritrank/transport"
)

func TestServer_EchoesThroughHandler(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	srv := transport.New(addr, func(req any) any {
		s, _ := req.(string)

		return "echo:" + s
	}, zerolog.Nop())

	go func() { _ = srv.Serve(1) }()
	time.Sleep(50 * time.Millisecond)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	payload, err := msgpack.Marshal("hello")
	require.NoError(t, err)
	require.NoError(t, writeFrame(conn, payload))

	reply, err := readFrame(conn)
	require.NoError(t, err)
	var out string
	require.NoError(t, msgpack.Unmarshal(reply, &out))
	require.Equal(t, "echo:hello", out)
}

func writeFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)

	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)

	return buf, err
}
