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

// ParamString enumerates the string-valued configuration keys accepted by
// Config.SetString.
type ParamString string

const (
	ParamSecureProtocol ParamString = "SECURE_PROTOCOL"
	ParamCADirectory    ParamString = "CA_DIRECTORY"
	ParamCAFile         ParamString = "CA_FILE"
	ParamCertFile       ParamString = "CERT_FILE"
	ParamKeyFile        ParamString = "KEY_FILE"
	ParamCRLFile        ParamString = "CRL_FILE"
	ParamOCSPServer     ParamString = "OCSP_SERVER"
	ParamALPN           ParamString = "ALPN"
)

// ParamInt enumerates the integer-valued configuration keys accepted by
// Config.SetInt. Boolean toggles are represented as 0/1.
type ParamInt string

const (
	ParamCheckCertificate ParamInt = "CHECK_CERTIFICATE"
	ParamCheckHostname    ParamInt = "CHECK_HOSTNAME"
	ParamPrintInfo        ParamInt = "PRINT_INFO"
	ParamCAType           ParamInt = "CA_TYPE"
	ParamCertType         ParamInt = "CERT_TYPE"
	ParamKeyType          ParamInt = "KEY_TYPE"
	ParamOCSP             ParamInt = "OCSP"
	ParamOCSPStapling     ParamInt = "OCSP_STAPLING"
)

// ParamHandle enumerates the opaque-handle configuration keys accepted by
// Config.SetHandle.
type ParamHandle string

const (
	ParamOCSPCache    ParamHandle = "OCSP_CACHE"
	ParamSessionCache ParamHandle = "SESSION_CACHE"
	ParamHPKPCache    ParamHandle = "HPKP_CACHE"
)

// MaterialEncoding is the PEM/DER enum governing CA_TYPE, CERT_TYPE and
// KEY_TYPE.
type MaterialEncoding int

const (
	EncodingPEM MaterialEncoding = iota
	EncodingDER
)

func (e MaterialEncoding) String() string {
	if e == EncodingDER {
		return "DER"
	}

	return "PEM"
}

// SecureProtocolSentinel is the default symbolic SECURE_PROTOCOL token.
const SecureProtocolSentinel = "AUTO"

// CADirectorySystem is the sentinel meaning "use the back-end's default
// verification paths" for CA_DIRECTORY.
const CADirectorySystem = "system"

// systemFallbackDir is used when the back-end exposes no default
// verification paths of its own.
const systemFallbackDir = "/etc/ssl/certs"
