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
	"net"
	"time"

	libclo "github.com/kumar-mallikarjuna/wget2/ioutils/mapCloser"
)

// Close drives the back-end's close_notify exchange, releases the
// handshake-local extension data, and frees every resource this Conn
// opened over the borrowed descriptor - the descriptor itself is never
// touched, so the caller's TCP socket remains open afterward.
func (c *Conn) Close() error {
	c.closed.Store(true)

	closer := libclo.New(context.Background())
	closer.Add(closerFunc(func() error { return c.raw.Close() }))

	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		err := c.tls.Close()
		if err == nil {
			break
		}

		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			continue
		}

		break
	}

	if c.ext != nil {
		c.ext.Clean()
	}

	return closer.Close()
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
