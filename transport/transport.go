// Package transport is the request/reply socket loop of spec.md §5-6:
// a length-prefixed framing over net.Listener TCP connections, msgpack
// payload codec, and either a single-threaded accept loop or an
// M-goroutine worker pool reading off one listener (SERVICE_THREADS),
// mirroring the worker-context pool original_source/src/main.rs's
// `main_async` builds over nng Aio contexts.
//
// Each frame is a 4-byte big-endian length prefix followed by that many
// bytes of msgpack payload, applied symmetrically to both the request
// and the reply — TCP has no message boundaries of its own, unlike the
// original's nng REQ/REP sockets, so transport has to supply them.
package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// maxFrameSize bounds a single frame to guard against a corrupt or
// malicious length prefix forcing an unbounded allocation.
const maxFrameSize = 64 << 20

// Handler decodes one msgpack-decoded request and returns the reply value
// to encode back. dispatch.Dispatcher.Handle satisfies this signature.
type Handler func(req any) any

// Server owns the listening socket and dispatches accepted connections to
// workers handling requests to completion before their next receive,
// matching spec §5's "each request is handled to completion before the
// socket acknowledges".
type Server struct {
	addr    string
	handler Handler
	log     zerolog.Logger
}

// New builds a Server bound to addr (spec §6 SERVICE_URL, with any
// "tcp://" scheme prefix stripped since net.Listen takes a bare
// host:port).
func New(addr string, handler Handler, log zerolog.Logger) *Server {
	return &Server{addr: stripScheme(addr), handler: handler, log: log}
}

func stripScheme(addr string) string {
	if i := strings.Index(addr, "://"); i >= 0 {
		return addr[i+3:]
	}

	return addr
}

// Serve listens on s.addr and runs threads worker goroutines (threads<=1
// runs a single synchronous accept loop in the calling goroutine) each
// pulling connections off the shared listener. It blocks until the
// listener is closed or Accept returns a fatal error.
func (s *Server) Serve(threads int) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("transport: listen %s: %w", s.addr, err)
	}
	defer ln.Close()

	if threads < 1 {
		threads = 1
	}

	if threads == 1 {
		return s.acceptLoop(ln)
	}

	errc := make(chan error, threads)
	for i := 0; i < threads; i++ {
		go func() { errc <- s.acceptLoop(ln) }()
	}

	return <-errc
}

func (s *Server) acceptLoop(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return fmt.Errorf("transport: accept: %w", err)
		}
		s.serveConn(conn)
	}
}

// serveConn handles every request on one connection to completion before
// reading the next, then closes it on EOF or a framing error.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	for {
		payload, err := readFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Warn().Err(err).Msg("transport: read frame")
			}

			return
		}

		var req any
		if err := msgpack.Unmarshal(payload, &req); err != nil {
			s.log.Warn().Err(err).Msg("transport: decode request")

			return
		}

		reply := s.handler(req)

		out, err := msgpack.Marshal(reply)
		if err != nil {
			s.log.Warn().Err(err).Msg("transport: encode reply")

			return
		}
		if err := writeFrame(conn, out); err != nil {
			s.log.Warn().Err(err).Msg("transport: write frame")

			return
		}
	}
}

func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("transport: frame of %d bytes exceeds %d byte cap", n, maxFrameSize)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	return buf, nil
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
