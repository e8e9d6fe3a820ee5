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
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"

	tlscas "github.com/kumar-mallikarjuna/wget2/certificates/ca"
	liberr "github.com/kumar-mallikarjuna/wget2/errors"
	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// trustStore is a resolved verification pool plus an optional
// CRL-enforcing x509.VerifyOptions overlay.
type trustStore struct {
	pool      *x509.CertPool
	crlLoaded bool
	crlStrict bool // full-chain CRL checking with delta CRLs
	crlBytes  []byte
}

// loadTrustStore builds a trustStore from a Config's CA directory, CA
// file and CRL file settings.
func loadTrustStore(c *Config, log liblog.Logger) (*trustStore, liberr.Error) {
	ts := &trustStore{pool: x509.NewCertPool()}

	loaded := 0

	if c.CADirectory == CADirectorySystem {
		if pool, ok := systemDefaultPool(); ok {
			ts.pool = pool
			log.Info("using back-end default verification paths", nil)
		} else {
			log.Info("back-end default verification paths unavailable, falling back", nil, systemFallbackDir)

			n, e := loadDirectory(ts.pool, systemFallbackDir, c.CAType)
			if e != nil && !e.IsCode(ErrorTrustStoreEmpty) {
				return nil, e
			}

			loaded += n
		}
	} else if c.CADirectory != "" {
		n, e := loadDirectory(ts.pool, c.CADirectory, c.CAType)
		if e != nil && !e.IsCode(ErrorTrustStoreEmpty) {
			return nil, e
		}

		loaded += n
	}

	if loaded == 0 {
		log.Error("no certificate was loaded from the CA directory", nil, c.CADirectory)
	}

	if c.CAFile != "" {
		if e := loadSingleFile(ts.pool, c.CAFile, c.CAType); e != nil {
			log.Error("failed to load configured CA file, continuing without it", nil, c.CAFile, e.Error())
		}
	}

	if c.CRLFile != "" {
		b, e := os.ReadFile(c.CRLFile)
		if e != nil {
			return nil, ErrorUnknown.Error(e)
		}

		if _, rest := pem.Decode(b); rest != nil && len(rest) != len(b) {
			// PEM-wrapped CRL; keep the raw bytes, parsing is deferred to
			// the certificate verifier.
		}

		ts.crlBytes = b
		ts.crlLoaded = true
		ts.crlStrict = true
	}

	return ts, nil
}

// systemDefaultPool asks the back-end (crypto/x509) for its default
// verification paths. Go's x509.SystemCertPool already implements that
// platform lookup; a nil/error result is treated the same as "the
// back-end default paths are absent".
func systemDefaultPool() (*x509.CertPool, bool) {
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		return nil, false
	}

	return pool, true
}

// loadDirectory enumerates a directory's entries and registers every file
// whose name ends, case-insensitively, in ".pem".
func loadDirectory(pool *x509.CertPool, dir string, enc MaterialEncoding) (int, liberr.Error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, ErrorTrustStoreOpen.Error(err)
	}

	count := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if len(name) < 4 || !strings.EqualFold(name[len(name)-4:], ".pem") {
			continue
		}

		path := filepath.Join(dir, name)
		if err := loadSingleFile(pool, path, enc); err == nil {
			count++
		}
	}

	if count == 0 {
		return 0, ErrorTrustStoreEmpty.Error(nil)
	}

	return count, nil
}

// loadSingleFile registers one trust-anchor file, in PEM or DER form, and
// exercises certificates/ca's Cert parser for the PEM path.
func loadSingleFile(pool *x509.CertPool, path string, enc MaterialEncoding) liberr.Error {
	b, err := os.ReadFile(path)
	if err != nil {
		return ErrorUnknown.Error(err)
	}

	if enc == EncodingDER {
		cert, err := x509.ParseCertificate(b)
		if err != nil {
			return ErrorUnknown.Error(err)
		}

		pool.AddCert(cert)
		return nil
	}

	ca, err := tlscas.ParseByte(b)
	if err != nil {
		return ErrorUnknown.Error(err)
	}

	ca.AppendPool(pool)
	return nil
}
