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
	"crypto/x509"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/ocsp"

	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// ocspDecision is the outcome of a single revocation check: stapled
// response, live responder query, or "no opinion" when OCSP checking is
// disabled or the responder could not be reached.
type ocspDecision int

const (
	ocspUnknown ocspDecision = iota
	ocspGood
	ocspRevoked
)

// checkStapled inspects the stapled OCSP response delivered as part of the
// handshake, per the SUPPLEMENTED FEATURES note that a complete client
// should consult stapling before ever making its own network round trip.
func checkStapled(leaf, issuer *x509.Certificate, raw []byte, log liblog.Logger) ocspDecision {
	if len(raw) == 0 {
		return ocspUnknown
	}

	resp, err := ocsp.ParseResponseForCert(raw, leaf, issuer)
	if err != nil {
		log.Warning("stapled OCSP response did not parse, falling back to live query", nil, err.Error())
		return ocspUnknown
	}

	return statusOf(resp)
}

// queryResponder builds an OCSP request for leaf/issuer and fetches the
// responder's decision over HTTP. A random identifier is generated and
// logged alongside the request for correlation; x/crypto/ocsp has no nonce
// extension support on the request path, so the request carries no nonce
// and the response is not checked for one.
func queryResponder(ctx context.Context, responderURL string, leaf, issuer *x509.Certificate, fetcher *ocspFetcher, log liblog.Logger) ocspDecision {
	nonce := uuid.New()

	der, err := ocsp.CreateRequest(leaf, issuer, &ocsp.RequestOptions{Hash: 0})
	if err != nil {
		log.Warning("cannot build OCSP request", nil, err.Error())
		return ocspUnknown
	}

	log.Debug("issuing OCSP request", nil, responderURL, nonce.String())

	raw, err := fetcher.fetch(ctx, responderURL, der)
	if err != nil {
		log.Warning("OCSP responder query failed", nil, err.Error())
		return ocspUnknown
	}

	resp, err := ocsp.ParseResponseForCert(raw, leaf, issuer)
	if err != nil {
		log.Warning("OCSP response did not parse", nil, err.Error())
		return ocspUnknown
	}

	return statusOf(resp)
}

// statusOf maps a parsed response to a decision; a response whose
// ThisUpdate/NextUpdate window does not contain the current time counts as
// ocspUnknown.
func statusOf(resp *ocsp.Response) ocspDecision {
	now := time.Now()
	if now.Before(resp.ThisUpdate) || (!resp.NextUpdate.IsZero() && now.After(resp.NextUpdate)) {
		return ocspUnknown
	}

	switch resp.Status {
	case ocsp.Good:
		return ocspGood
	case ocsp.Revoked:
		return ocspRevoked
	default:
		return ocspUnknown
	}
}
