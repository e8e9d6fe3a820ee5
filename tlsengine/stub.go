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

import liberr "github.com/kumar-mallikarjuna/wget2/errors"

// disabledEngine is the build-without-TLS backend: every entry point
// returns ErrorDisabled immediately,
// with no trust store, no priority string, no handshake - the "TLS
// support is compiled out" case a download client still has to link
// against so the rest of the program builds unconditionally.
type disabledEngine struct{}

// NewDisabled returns an Engine that unconditionally reports TLS support
// as disabled, for builds that omit the real back-end.
func NewDisabled() Engine {
	return disabledEngine{}
}

func (disabledEngine) Init() liberr.Error {
	return ErrorDisabled.Error(nil)
}

func (disabledEngine) Deinit() {}

func (disabledEngine) Open(TCPConnection) (*Conn, liberr.Error) {
	return nil, ErrorDisabled.Error(nil)
}
