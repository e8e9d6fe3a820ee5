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

//go:build windows

package tlsengine

import (
	"net"
	"os"
	"runtime"
	"time"
)

// waitReadable and waitWritable fall back to net.FileConn deadlines on
// Windows: golang.org/x/sys/unix.Poll (used on the POSIX path in
// readiness.go) has no Windows build, and this engine never owns the
// descriptor outright, so the wrapper file's finalizer is disabled to
// keep the borrowed socket from being closed out from under the caller.
// timeoutMS follows the same poll(2) convention as the POSIX path:
// negative blocks indefinitely, zero returns immediately, positive is a
// bound in milliseconds.
func waitReadable(fd int, timeoutMS int) error {
	return waitReady(fd, timeoutMS, func(c net.Conn, d time.Time) error {
		if err := c.SetReadDeadline(d); err != nil {
			return err
		}
		_, err := c.Read(make([]byte, 0))
		return err
	})
}

func waitWritable(fd int, timeoutMS int) error {
	return waitReady(fd, timeoutMS, func(c net.Conn, d time.Time) error {
		if err := c.SetWriteDeadline(d); err != nil {
			return err
		}
		_, err := c.Write(nil)
		return err
	})
}

func waitReady(fd int, timeoutMS int, probe func(net.Conn, time.Time) error) error {
	f := os.NewFile(uintptr(fd), "tlsengine-socket")
	if f == nil {
		return ErrorReadinessFailed.Error(nil)
	}
	runtime.SetFinalizer(f, nil)

	conn, err := net.FileConn(f)
	if err != nil {
		return ErrorReadinessFailed.Error(err)
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Time{}
	if timeoutMS >= 0 {
		deadline = time.Now().Add(time.Duration(timeoutMS) * time.Millisecond)
	}

	if err := probe(conn, deadline); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return ErrorTimeout.Error(nil)
		}
		return nil
	}

	return nil
}
