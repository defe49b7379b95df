package tor

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"time"
)

const probeTimeout = 2 * time.Second

const (
	socks5Version     = 0x05
	socks5AuthNone    = 0x00
	socks5CmdConnect  = 0x01
	socks5AddrTypeDom = 0x03

	// probeOnion never resolves; only the proxy's reply to CONNECT matters.
	probeOnion = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa.onion"
	probePort  = 80
)

// Probe checks that addr speaks unauthenticated SOCKS5 and processes a
// CONNECT for an onion address. It never sends traffic past the proxy.
func Probe(ctx context.Context, addr string) ProbeStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ProbeTimeout
		}
		return ProbeCannotConnect
	}
	defer conn.Close()

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		return ProbeCannotConnect
	}

	if _, err := conn.Write([]byte{socks5Version, 0x01, socks5AuthNone}); err != nil {
		return ProbeCannotConnect
	}

	greeting := make([]byte, 2)
	if _, err := io.ReadFull(conn, greeting); err != nil {
		return readFailure(err)
	}
	if greeting[0] != socks5Version || greeting[1] != socks5AuthNone {
		return ProbeWrongType
	}

	req := []byte{socks5Version, socks5CmdConnect, 0x00, socks5AddrTypeDom, byte(len(probeOnion))}
	req = append(req, probeOnion...)
	req = append(req, byte(probePort>>8), byte(probePort&0xff))
	if _, err := conn.Write(req); err != nil {
		return ProbeCannotConnect
	}

	// Any reply code counts; tor answers unknown onions with a failure code.
	reply := make([]byte, 4)
	if _, err := io.ReadFull(conn, reply); err != nil {
		return readFailure(err)
	}
	if reply[0] != socks5Version {
		return ProbeWrongType
	}
	return ProbeOK
}

func readFailure(err error) ProbeStatus {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return ProbeTimeout
	}
	return ProbeWrongType
}
