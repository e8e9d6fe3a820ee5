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
	"context"
	"time"

	libcache "github.com/kumar-mallikarjuna/wget2/cache"
)

// HPKPResult is the outcome of a single HPKP pin lookup.
type HPKPResult int

const (
	HPKPMatch     HPKPResult = 1
	HPKPNoPin     HPKPResult = 0
	HPKPLookupErr HPKPResult = -1
	HPKPMismatch  HPKPResult = -2
)

// SessionCache is the borrowed TLS session cache collaborator: get by
// host name, add with a TTL in seconds. Bytes are opaque - the cache must
// not interpret them.
type SessionCache interface {
	Get(hostname string) ([]byte, bool)
	Add(hostname string, blob []byte, ttlSeconds int64)
}

// OCSPCache is the borrowed OCSP response cache collaborator. Reserved
// for future use: the current engine forwards to the network on every
// call instead of consulting this cache first.
type OCSPCache interface {
	Get(key string) ([]byte, bool)
	Add(key string, blob []byte, ttlSeconds int64)
}

// HPKPCache is the borrowed HPKP pin cache collaborator.
type HPKPCache interface {
	Check(hostname string, spkiDER []byte) HPKPResult
}

// memorySessionCache is a reference SessionCache backed by the generic
// in-house cache, used by the engine's own test suite; the real cache is
// an external collaborator a host program supplies, but a complete repo
// needs a concrete implementation to test against.
type memorySessionCache struct {
	c libcache.Cache[string, []byte]
}

// NewMemorySessionCache returns a SessionCache backed by libcache.Cache,
// expiring every entry after defaultTTL; the ttlSeconds passed to Add is
// not used.
func NewMemorySessionCache(ctx context.Context, defaultTTL time.Duration) SessionCache {
	return &memorySessionCache{c: libcache.New[string, []byte](ctx, defaultTTL)}
}

func (m *memorySessionCache) Get(hostname string) ([]byte, bool) {
	v, _, ok := m.c.Load(hostname)
	return v, ok
}

func (m *memorySessionCache) Add(hostname string, blob []byte, ttlSeconds int64) {
	m.c.Store(hostname, blob)
}

type memoryOCSPCache struct {
	c libcache.Cache[string, []byte]
}

// NewMemoryOCSPCache returns an OCSPCache backed by libcache.Cache.
func NewMemoryOCSPCache(ctx context.Context, defaultTTL time.Duration) OCSPCache {
	return &memoryOCSPCache{c: libcache.New[string, []byte](ctx, defaultTTL)}
}

func (m *memoryOCSPCache) Get(key string) ([]byte, bool) {
	v, _, ok := m.c.Load(key)
	return v, ok
}

func (m *memoryOCSPCache) Add(key string, blob []byte, ttlSeconds int64) {
	m.c.Store(key, blob)
}

// NewMemoryHPKPCache returns an HPKPCache backed by libcache.Cache, where
// pinned SPKI hashes are registered ahead of time with Pin.
func NewMemoryHPKPCache(ctx context.Context, defaultTTL time.Duration) *MemoryHPKPCache {
	return &MemoryHPKPCache{c: libcache.New[string, [][]byte](ctx, defaultTTL)}
}

// MemoryHPKPCache is the concrete type behind NewMemoryHPKPCache, exposed
// so tests can call Pin directly.
type MemoryHPKPCache struct {
	c libcache.Cache[string, [][]byte]
}

// Pin registers an acceptable SPKI DER hash for hostname.
func (m *MemoryHPKPCache) Pin(hostname string, spkiDER []byte) {
	pins, _, _ := m.c.Load(hostname)
	pins = append(pins, spkiDER)
	m.c.Store(hostname, pins)
}

func (m *MemoryHPKPCache) Check(hostname string, spkiDER []byte) HPKPResult {
	pins, _, ok := m.c.Load(hostname)
	if !ok || len(pins) == 0 {
		return HPKPNoPin
	}

	for _, p := range pins {
		if len(p) == len(spkiDER) {
			match := true
			for i := range p {
				if p[i] != spkiDER[i] {
					match = false
					break
				}
			}
			if match {
				return HPKPMatch
			}
		}
	}

	return HPKPMismatch
}
