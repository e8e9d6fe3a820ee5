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

//go:build !windows

package tlsengine

import (
	"golang.org/x/sys/unix"
)

// waitReadable and waitWritable implement the non-blocking-socket
// readiness wait: the engine drives the handshake and framed I/O
// itself, so between two non-blocking syscalls it parks
// on poll(2) rather than letting the kernel block the calling goroutine.
// timeoutMS follows poll(2): negative blocks indefinitely, zero returns
// immediately, positive is a bound in milliseconds.
func waitReadable(fd int, timeoutMS int) error {
	return pollOne(fd, unix.POLLIN, timeoutMS)
}

func waitWritable(fd int, timeoutMS int) error {
	return pollOne(fd, unix.POLLOUT, timeoutMS)
}

func pollOne(fd int, events int16, timeoutMS int) error {
	ms := timeoutMS
	if ms < -1 {
		ms = -1
	}

	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}

	n, err := unix.Poll(fds, ms)
	if err != nil {
		return ErrorReadinessFailed.Error(err)
	}

	if n == 0 {
		return ErrorTimeout.Error(nil)
	}

	if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		return ErrorReadinessFailed.Error(nil)
	}

	return nil
}
