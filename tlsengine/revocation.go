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
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"

	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// verifyConnection builds the crypto/tls VerifyConnection hook that layers
// HPKP pin checking and OCSP revocation checking - stapled first, live
// responder second - on top of the back-end's own chain verification.
// VerifyConnection runs after crypto/tls has already built a verified
// chain (InsecureSkipVerify is false whenever this hook is installed) and,
// unlike VerifyPeerCertificate, exposes the stapled OCSP response the
// handshake received, so this is where the "consult stapling before any
// live query" behaviour actually lives.
func (e *engine) verifyConnection(cfg *Config, log liblog.Logger) func(tls.ConnectionState) error {
	return func(state tls.ConnectionState) error {
		chain := state.PeerCertificates
		if len(state.VerifiedChains) > 0 {
			chain = state.VerifiedChains[0]
		}

		if len(chain) == 0 {
			return ErrorCertificate.Error(nil)
		}

		if cfg.hpkpCache != nil {
			if err := checkPins(cfg.hpkpCache, state.ServerName, chain[0]); err != nil {
				return err
			}
		}

		if cfg.OCSP {
			if err := e.checkRevocation(cfg, chain, state.OCSPResponse, log); err != nil {
				return err
			}
		}

		return nil
	}
}

// checkPins walks only the leaf: HPKP pins the end-entity SPKI, not the
// whole chain. The pin is looked up under the host name the handshake was
// addressed to (the SNI server name).
func checkPins(cache HPKPCache, hostname string, leaf *x509.Certificate) error {
	spki := sha256.Sum256(leaf.RawSubjectPublicKeyInfo)

	switch cache.Check(hostname, spki[:]) {
	case HPKPMismatch:
		return ErrorCertificate.Error(nil)
	default:
		return nil
	}
}

// checkRevocation consults the stapled OCSP response for the leaf/issuer
// pair first, falling back to a live responder query only when stapling
// was absent, disabled or inconclusive, then walks the rest of the chain
// pairwise, leaf-to-issuer, comparing chain[i] against its direct issuer
// chain[i+1] for every i in [0, len(chain)-2] rather than always
// comparing against the root.
func (e *engine) checkRevocation(cfg *Config, chain []*x509.Certificate, stapled []byte, log liblog.Logger) error {
	if len(chain) < 2 {
		return nil
	}

	fetcher := newOCSPFetcher(cfg.OCSPTimeout.Time())
	ctx := context.Background()

	for i := 0; i <= len(chain)-2; i++ {
		leaf := chain[i]
		issuer := chain[i+1]

		decision := ocspUnknown

		if i == 0 && cfg.OCSPStapling {
			decision = checkStapled(leaf, issuer, stapled, log)
		}

		if decision == ocspUnknown {
			responder := cfg.OCSPServer
			if responder == "" {
				if len(leaf.OCSPServer) == 0 {
					continue
				}

				responder = leaf.OCSPServer[0]
			}

			decision = queryResponder(ctx, responder, leaf, issuer, fetcher, log)
		}

		if decision == ocspRevoked {
			return ErrorCertificate.Error(nil)
		}
	}

	return nil
}
