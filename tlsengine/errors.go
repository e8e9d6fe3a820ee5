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

import "github.com/kumar-mallikarjuna/wget2/errors"

// Sentinel codes returned to callers of Open/Close/transfer, matching the
// error taxonomy of the engine's public contract: INVALID, TIMEOUT,
// CERTIFICATE, HANDSHAKE, TLS_DISABLED, UNKNOWN, plus package-local
// diagnostic codes for everything that never crosses the public API.
const (
	ErrorInvalid errors.CodeError = iota + errors.MinPkgTLSEngine
	ErrorTimeout
	ErrorCertificate
	ErrorHandshake
	ErrorDisabled
	ErrorUnknown

	ErrorTrustStoreOpen
	ErrorTrustStoreEmpty
	ErrorPriorityRejected
	ErrorSessionCorrupt
	ErrorReadinessFailed
	ErrorOCSPRequest
	ErrorOCSPResponse
	ErrorValidatorError
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorInvalid)
	errors.RegisterIdFctMessage(ErrorInvalid, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorInvalid:
		return "invalid argument for the TLS engine"
	case ErrorTimeout:
		return "readiness wait exceeded the configured timeout"
	case ErrorCertificate:
		return "peer certificate validation failed"
	case ErrorHandshake:
		return "TLS handshake failed"
	case ErrorDisabled:
		return "TLS support is disabled in this build"
	case ErrorUnknown:
		return "unknown TLS engine failure"
	case ErrorTrustStoreOpen:
		return "cannot open CA directory"
	case ErrorTrustStoreEmpty:
		return "no certificate was loaded into the trust store"
	case ErrorPriorityRejected:
		return "secure protocol priority string was rejected"
	case ErrorSessionCorrupt:
		return "stored session blob is corrupt"
	case ErrorReadinessFailed:
		return "socket readiness wait failed"
	case ErrorOCSPRequest:
		return "cannot build OCSP request"
	case ErrorOCSPResponse:
		return "cannot parse OCSP response"
	case ErrorValidatorError:
		return "configuration did not pass validation"
	default:
		return ""
	}
}
