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
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	libhtc "github.com/kumar-mallikarjuna/wget2/httpcli"
)

// ocspFetcher posts an OCSP request to a responder URL and returns the raw
// DER response body, using the same httpcli.Request collaborator the rest
// of the download client uses for every other outbound request.
type ocspFetcher struct {
	fct     libhtc.FctHttpClient
	timeout time.Duration
}

func newOCSPFetcher(timeout time.Duration) *ocspFetcher {
	return &ocspFetcher{
		fct: func() *http.Client {
			return &http.Client{Timeout: timeout}
		},
		timeout: timeout,
	}
}

func (f *ocspFetcher) fetch(ctx context.Context, responderURL string, der []byte) ([]byte, error) {
	req := libhtc.New(f.fct)

	if err := req.Endpoint(responderURL); err != nil {
		return nil, err
	}

	req.Method(http.MethodPost)
	req.ContentType("application/ocsp-request")
	req.Header("Accept", "application/ocsp-response")
	req.RequestReader(bytes.NewReader(der))

	resp, e := req.Do(ctx)
	if e != nil {
		return nil, e
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrorOCSPRequest.Error(nil)
	}

	return io.ReadAll(resp.Body)
}
