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
	"strings"
	"sync"

	liberr "github.com/kumar-mallikarjuna/wget2/errors"
	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// Engine is the capability interface a download client drives a
// handshake through. The "disabled" stub implementation (stub.go)
// satisfies the same interface and returns ErrorDisabled from Open, so a
// build that compiles out TLS support still links against one interface
// with two implementations.
type Engine interface {
	Init() liberr.Error
	Deinit()
	Open(tcp TCPConnection) (*Conn, liberr.Error)
}

// TCPConnection is the collaborator contract the engine drives a
// handshake over: it never owns the socket, only borrows its descriptor,
// host name and connect timeout.
type TCPConnection interface {
	SocketFD() int
	Hostname() string
	ConnectTimeoutMS() int
}

// engine is the unexported, reference-counted, mutex-protected process
// singleton backing Default().
type engine struct {
	mu  sync.Mutex
	ref int

	cfg *Config
	log liblog.FuncLog

	shared   *tls.Config
	trust    *trustStore
	priority priority
}

var (
	defaultOnce   sync.Once
	defaultEngine *engine
)

// Default returns the process-wide engine singleton, constructing it on
// first use with a default Config.
func Default() Engine {
	defaultOnce.Do(func() {
		defaultEngine = newEngine(NewConfig(nil), nil)
	})

	return defaultEngine
}

// New returns an isolated Engine instance for tests that do not want to
// share the process-wide default, constructing rather than installing.
func New(cfg *Config, log liblog.FuncLog) Engine {
	return newEngine(cfg, log)
}

func newEngine(cfg *Config, log liblog.FuncLog) *engine {
	if cfg == nil {
		cfg = NewConfig(log)
	}

	return &engine{cfg: cfg, log: log}
}

func (e *engine) logger() liblog.Logger {
	if e.log != nil {
		if l := e.log(); l != nil {
			return l
		}
	}

	return liblog.New(nil)
}

// Init does reference-counted, mutex-protected, one-time construction of
// the shared TLS context.
func (e *engine) Init() liberr.Error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ref > 0 {
		e.ref++
		return nil
	}

	cfg := e.cfg.snapshot()
	log := e.logger()

	ts, err := loadTrustStore(&cfg, log)
	if err != nil {
		log.Error("trust store loading failed, engine not initialized", nil, err.Error())
		return err
	}

	pr, err := selectPriority(cfg.SecureProtocol, log)
	if err != nil {
		log.Error("priority selection failed, engine not initialized", nil, err.Error())
		return ErrorInvalid.Error(err)
	}

	tlsCfg := &tls.Config{
		MinVersion:   pr.min.TLS(),
		MaxVersion:   pr.max.TLS(),
		CipherSuites: pr.ciphers,
		RootCAs:      ts.pool,
	}

	if cfg.ALPN != "" {
		tlsCfg.NextProtos = strings.Split(cfg.ALPN, ",")
	}

	if bridge := newSessionBridge(cfg.sessionCache, cfg.SessionFreshness, log); bridge != nil {
		tlsCfg.ClientSessionCache = bridge
	}

	if cfg.CheckCertificate {
		tlsCfg.InsecureSkipVerify = false
		tlsCfg.VerifyConnection = e.verifyConnection(&cfg, log)
	} else {
		log.Warning("certificate checking disabled, installing no-op verify mode", nil)
		tlsCfg.InsecureSkipVerify = true
	}

	if cfg.CertFile != "" || cfg.KeyFile != "" {
		if cert, err := loadClientCertificate(&cfg); err == nil {
			tlsCfg.Certificates = []tls.Certificate{cert}
		} else {
			log.Error("failed to load client certificate material", nil, err.Error())
		}
	}

	tlsCfg.ClientAuth = cfg.ClientAuthMode.TLS()

	e.shared = tlsCfg
	e.trust = ts
	e.priority = pr
	e.ref = 1

	return nil
}

// Deinit decrements on every call, releasing the shared context only
// once the counter returns to exactly zero.
func (e *engine) Deinit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ref == 0 {
		return
	}

	e.ref--

	if e.ref == 0 {
		e.shared = nil
		e.trust = nil
	}
}

func loadClientCertificate(cfg *Config) (tls.Certificate, error) {
	key := cfg.KeyFile
	crt := cfg.CertFile

	if key == "" {
		key = crt
	}

	if crt == "" {
		crt = key
	}

	return tls.LoadX509KeyPair(crt, key)
}
