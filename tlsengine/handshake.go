/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package tlsengine

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"
	"runtime"
	"time"

	libatm "github.com/kumar-mallikarjuna/wget2/atomic"
	tlscpr "github.com/kumar-mallikarjuna/wget2/certificates/cipher"
	tlsvrs "github.com/kumar-mallikarjuna/wget2/certificates/tlsversion"
	libctx "github.com/kumar-mallikarjuna/wget2/context"
	liberr "github.com/kumar-mallikarjuna/wget2/errors"
	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// extKey keys the handshake-local extension data kept alongside a Conn,
// e.g. the negotiated ALPN protocol or stapled-OCSP bookkeeping a caller
// wants to read back after Open returns.
type extKey string

const (
	extALPN    extKey = "alpn"
	extHandoff extKey = "tcp"
)

// Conn is a single TLS session driven over a caller-owned, non-blocking
// socket. It wraps the *tls.Conn the handshake produced together with a
// small per-connection extension map; the engine drives bytes across an
// fd it never owns.
type Conn struct {
	tls  *tls.Conn
	raw  net.Conn
	file *os.File
	ext  libctx.Config[extKey]

	// closed is read by every ReadTimeout/WriteTimeout call and written
	// once by Close; an atomic flag avoids taking the same lock transfer
	// and shutdown would otherwise have to share for a single bool.
	closed libatm.Value[bool]
}

// Open drives the handshake: build a net.Conn over the borrowed
// descriptor, configure SNI/ALPN/hostname checking from the shared
// *tls.Config, then drive Handshake to completion or timeout.
func (e *engine) Open(tcp TCPConnection) (*Conn, liberr.Error) {
	e.mu.Lock()
	shared := e.shared
	e.mu.Unlock()

	if shared == nil {
		return nil, ErrorInvalid.Error(nil)
	}

	f := os.NewFile(uintptr(tcp.SocketFD()), "tlsengine-socket")
	if f == nil {
		return nil, ErrorInvalid.Error(nil)
	}
	runtime.SetFinalizer(f, nil)

	raw, err := net.FileConn(f)
	if err != nil {
		return nil, ErrorInvalid.Error(err)
	}

	cfg := shared.Clone()
	cfg.ServerName = tcp.Hostname()

	if !e.cfg.CheckHostname && !cfg.InsecureSkipVerify {
		cfg.InsecureSkipVerify = true
		hook, roots := cfg.VerifyConnection, cfg.RootCAs
		cfg.VerifyConnection = func(cs tls.ConnectionState) error {
			if len(cs.PeerCertificates) == 0 {
				return ErrorCertificate.Error(nil)
			}
			opts := x509.VerifyOptions{Roots: roots, Intermediates: x509.NewCertPool()}
			for _, ic := range cs.PeerCertificates[1:] {
				opts.Intermediates.AddCert(ic)
			}
			chains, err := cs.PeerCertificates[0].Verify(opts)
			if err != nil {
				return ErrorCertificate.Error(err)
			}
			cs.VerifiedChains = chains
			return hook(cs)
		}
	}

	timeout := time.Duration(tcp.ConnectTimeoutMS()) * time.Millisecond

	tlsConn := tls.Client(raw, cfg)

	if err := handshakeWithTimeout(tlsConn, timeout); err != nil {
		_ = raw.Close()
		return nil, err
	}

	c := &Conn{
		tls:    tlsConn,
		raw:    raw,
		file:   f,
		ext:    libctx.New[extKey](nil),
		closed: libatm.NewValue[bool](),
	}

	c.ext.Store(extALPN, tlsConn.ConnectionState().NegotiatedProtocol)
	c.ext.Store(extHandoff, tcp)

	if e.cfg.PrintInfo {
		printConnectionInfo(e.logger(), tcp.Hostname(), tlsConn.ConnectionState())
	}

	return c, nil
}

// printConnectionInfo logs the negotiated version/cipher/ALPN/resumption
// summary a caller wants when PRINT_INFO is turned on, mirroring
// certificates' own pattern of handing structured fields to the logger
// rather than writing to stdout directly.
func printConnectionInfo(log liblog.Logger, hostname string, state tls.ConnectionState) {
	log.Info("TLS handshake completed", nil,
		hostname,
		tlsvrs.Version(state.Version).String(),
		tlscpr.Cipher(state.CipherSuite).String(),
		state.NegotiatedProtocol,
		state.DidResume,
	)
}

// handshakeWithTimeout bounds Handshake with a deadline on the underlying
// connection rather than a goroutine+select, matching the "one blocking
// call, bounded by socket deadlines" idiom the rest of the engine's
// readiness waits use.
func handshakeWithTimeout(conn *tls.Conn, timeout time.Duration) liberr.Error {
	if timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return ErrorHandshake.Error(err)
		}
		defer func() { _ = conn.SetDeadline(time.Time{}) }()
	}

	if err := conn.Handshake(); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return ErrorTimeout.Error(err)
		}

		return ErrorHandshake.Error(err)
	}

	return nil
}

// NegotiatedProtocol returns the ALPN protocol chosen during the
// handshake, or the empty string when none was negotiated.
func (c *Conn) NegotiatedProtocol() string {
	v, ok := c.ext.Load(extALPN)
	if !ok {
		return ""
	}

	s, _ := v.(string)
	return s
}

// ConnectionState exposes the underlying handshake result for callers
// that want certificate chain or cipher-suite details, e.g. for
// PrintInfo-style diagnostics.
func (c *Conn) ConnectionState() tls.ConnectionState {
	return c.tls.ConnectionState()
}
