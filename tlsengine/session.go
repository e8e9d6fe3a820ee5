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
	"encoding/binary"
	"errors"

	libdur "github.com/kumar-mallikarjuna/wget2/duration"
	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// sessionBridge adapts the engine's opaque, by-hostname SessionCache
// collaborator to crypto/tls's own ClientSessionCache interface: the
// engine never stores a *tls.ClientSessionState directly, only the bytes
// ParseSessionState/SessionState.Bytes round trip through, so an
// external cache never has to link against crypto/tls internals.
type sessionBridge struct {
	cache     SessionCache
	freshness libdur.Duration
	log       liblog.Logger
}

func newSessionBridge(cache SessionCache, freshness libdur.Duration, log liblog.Logger) tls.ClientSessionCache {
	if cache == nil {
		return nil
	}

	return &sessionBridge{cache: cache, freshness: freshness, log: log}
}

func (b *sessionBridge) Get(sessionKey string) (*tls.ClientSessionState, bool) {
	blob, ok := b.cache.Get(sessionKey)
	if !ok {
		return nil, false
	}

	cs, err := decodeSession(blob)
	if err != nil {
		b.log.Warning("stored session blob is corrupt, discarding", nil, sessionKey, err.Error())
		return nil, false
	}

	return cs, true
}

func (b *sessionBridge) Put(sessionKey string, cs *tls.ClientSessionState) {
	if cs == nil {
		return
	}

	blob, err := encodeSession(cs)
	if err != nil {
		b.log.Warning("cannot serialize session for caching", nil, sessionKey, err.Error())
		return
	}

	b.cache.Add(sessionKey, blob, int64(b.freshness.Time().Seconds()))
}

// encodeSession serializes a resumable session as a length-prefixed
// ticket followed by the RFC 8446 §3-shaped SessionState encoding.
func encodeSession(cs *tls.ClientSessionState) ([]byte, error) {
	ticket, state, err := cs.ResumptionState()
	if err != nil {
		return nil, err
	}

	stateBytes, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 4+len(ticket)+len(stateBytes))
	binary.BigEndian.PutUint32(out[:4], uint32(len(ticket)))
	copy(out[4:], ticket)
	copy(out[4+len(ticket):], stateBytes)

	return out, nil
}

func decodeSession(blob []byte) (*tls.ClientSessionState, error) {
	if len(blob) < 4 {
		return nil, ErrorSessionCorrupt.Error(nil)
	}

	n := binary.BigEndian.Uint32(blob[:4])
	if uint32(len(blob)) < 4+n {
		return nil, ErrorSessionCorrupt.Error(nil)
	}

	ticket := blob[4 : 4+n]
	stateBytes := blob[4+n:]

	if len(stateBytes) == 0 {
		return nil, errors.New("tlsengine: empty session state")
	}

	state, err := tls.ParseSessionState(stateBytes)
	if err != nil {
		return nil, err
	}

	return tls.NewResumptionState(ticket, state)
}
