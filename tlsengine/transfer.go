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
	"math"
	"net"

	liberr "github.com/kumar-mallikarjuna/wget2/errors"
)

// maxTransferCount is the back-end's integer transfer-size limit every
// call gets clamped to.
const maxTransferCount = math.MaxInt32

// ReadTimeout is the framed-I/O read wrapper: a positive timeout waits up
// to that many milliseconds for readability before the call; a negative
// timeout waits without a bound; a zero timeout probes readiness once
// without waiting and returns 0 when the socket is not ready.
func (c *Conn) ReadTimeout(buf []byte, timeoutMS int) (int, liberr.Error) {
	n, err := c.transfer(buf, timeoutMS, true)
	if err != nil && err.IsCode(ErrorHandshake) {
		return n, ErrorUnknown.Error(err)
	}

	return n, err
}

// WriteTimeout implements the framed-I/O write wrapper.
func (c *Conn) WriteTimeout(buf []byte, timeoutMS int) (int, liberr.Error) {
	n, err := c.transfer(buf, timeoutMS, false)
	if err != nil && err.IsCode(ErrorHandshake) {
		return n, ErrorUnknown.Error(err)
	}

	return n, err
}

func (c *Conn) transfer(buf []byte, timeoutMS int, read bool) (int, liberr.Error) {
	if c.closed.Load() {
		return 0, ErrorInvalid.Error(nil)
	}

	if len(buf) == 0 {
		return 0, nil
	}

	if len(buf) > maxTransferCount {
		buf = buf[:maxTransferCount]
	}

	if timeoutMS < -1 {
		timeoutMS = -1
	}

	fd := int(c.file.Fd())

	for {
		if err := waitEither(fd, timeoutMS, read); err != nil {
			if le, ok := err.(liberr.Error); ok && le.IsCode(ErrorTimeout) {
				if timeoutMS == 0 {
					return 0, nil
				}

				return 0, le
			}

			return 0, ErrorHandshake.Error(err)
		}

		var n int
		var ioErr error

		if read {
			n, ioErr = c.tls.Read(buf)
		} else {
			n, ioErr = c.tls.Write(buf)
		}

		if ioErr == nil {
			return n, nil
		}

		if ne, ok := ioErr.(net.Error); ok && ne.Timeout() {
			if timeoutMS == 0 {
				return 0, nil
			}

			continue
		}

		return n, ErrorHandshake.Error(ioErr)
	}
}

func waitEither(fd int, timeoutMS int, read bool) error {
	if read {
		return waitReadable(fd, timeoutMS)
	}

	return waitWritable(fd, timeoutMS)
}
