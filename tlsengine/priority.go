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
	"strings"

	tlscpr "github.com/kumar-mallikarjuna/wget2/certificates/cipher"
	tlsvrs "github.com/kumar-mallikarjuna/wget2/certificates/tlsversion"
	liberr "github.com/kumar-mallikarjuna/wget2/errors"
	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// priority is the result of the priority selector: a minimum/maximum
// protocol version plus a concrete cipher-suite set.
type priority struct {
	min     tlsvrs.Version
	max     tlsvrs.Version
	ciphers []uint16
}

// selectPriority translates a symbolic protocol token or a raw priority
// string into a priority. Go's crypto/tls only ever
// offers the named, already-vetted-secure cipher suites from
// tls.CipherSuites(), none of which use RSA key exchange - so the "HIGH"
// baseline and the "PFS" (forbid RSA key exchange) refinement collapse to
// the same concrete set on this back-end; the distinction is kept at the
// API level for symmetry with the symbolic token and is noted in the
// grounding ledger.
func selectPriority(token string, log liblog.Logger) (priority, liberr.Error) {
	p := priority{
		min:     tlsvrs.VersionTLS12,
		max:     highestKnownVersion(),
		ciphers: secureCipherSuites(),
	}

	switch strings.ToUpper(token) {
	case "", "TLSV1_2", "AUTO":
		// defaults above already match
	case "SSL":
		// Go's TLS back-end does not implement SSLv3 at all; the lowest
		// it can negotiate is TLS 1.0, so the "lower the minimum" intent
		// downgrades there instead, and the downgrade is logged.
		log.Info("SSL priority token requested but back-end has no SSLv3 support, downgrading minimum", nil, "TLSv1.0")
		p.min = tlsvrs.VersionTLS10
	case "TLSV1":
		p.min = tlsvrs.VersionTLS10
	case "TLSV1_1":
		p.min = tlsvrs.VersionTLS11
	case "TLSV1_3":
		p.min = tlsvrs.VersionTLS13
	case "PFS":
		// already forward-secret only on this back-end; kept distinct to
		// mirror the full symbolic token set.
	default:
		if token == "" {
			break
		}

		ciphers, e := parseCipherList(token)
		if e != nil {
			return priority{}, ErrorPriorityRejected.Error(e)
		}

		if len(ciphers) == 0 {
			return priority{}, ErrorPriorityRejected.Error(nil)
		}

		p.ciphers = ciphers
	}

	if p.max == tlsvrs.VersionUnknown {
		p.max = tlsvrs.VersionTLS12
	}

	return p, nil
}

func highestKnownVersion() tlsvrs.Version {
	versions := tlsvrs.List()
	if len(versions) == 0 {
		return tlsvrs.VersionTLS13
	}

	return versions[0]
}

// secureCipherSuites returns the concrete uint16 cipher-suite IDs backing
// the default "HIGH:!aNULL:!RC4:!MD5:!SRP:!PSK" baseline: every cipher
// suite Go's own back-end considers secure.
func secureCipherSuites() []uint16 {
	ids := make([]uint16, 0, len(tls.CipherSuites()))
	for _, s := range tls.CipherSuites() {
		ids = append(ids, s.ID)
	}

	return ids
}

// parseCipherList parses an arbitrary, non-empty priority string as a
// colon- or comma-separated list of named cipher suites recognized by
// certificates/cipher, filtering out anything the back-end rejects.
func parseCipherList(s string) ([]uint16, error) {
	s = strings.NewReplacer(",", ":").Replace(s)
	tokens := strings.Split(s, ":")

	ids := make([]uint16, 0, len(tokens))

	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" || strings.HasPrefix(t, "!") {
			continue
		}

		c := tlscpr.Parse(t)
		if tlscpr.Check(c.Uint16()) {
			ids = append(ids, c.TLS())
		}
	}

	return ids, nil
}
