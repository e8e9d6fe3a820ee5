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
	"fmt"
	"sync"

	libval "github.com/go-playground/validator/v10"

	tlsaut "github.com/kumar-mallikarjuna/wget2/certificates/auth"
	libdur "github.com/kumar-mallikarjuna/wget2/duration"
	liberr "github.com/kumar-mallikarjuna/wget2/errors"
	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// Config is the process-wide configuration block of the TLS engine.
// Setters are exported; there is deliberately no getter, matching the
// engine's "write-only before init" configuration surface - callers that
// need to observe a value must remember what they set.
//
// Configuration is treated as frozen once Engine.Init has run to
// completion; later setter calls only take effect on the next init
// cycle.
type Config struct {
	SecureProtocol string           `mapstructure:"secureProtocol" json:"secureProtocol" yaml:"secureProtocol" toml:"secureProtocol" validate:"omitempty"`
	CADirectory    string           `mapstructure:"caDirectory" json:"caDirectory" yaml:"caDirectory" toml:"caDirectory"`
	CAFile         string           `mapstructure:"caFile" json:"caFile" yaml:"caFile" toml:"caFile"`
	CertFile       string           `mapstructure:"certFile" json:"certFile" yaml:"certFile" toml:"certFile"`
	KeyFile        string           `mapstructure:"keyFile" json:"keyFile" yaml:"keyFile" toml:"keyFile"`
	CRLFile        string           `mapstructure:"crlFile" json:"crlFile" yaml:"crlFile" toml:"crlFile"`
	OCSPServer     string           `mapstructure:"ocspServer" json:"ocspServer" yaml:"ocspServer" toml:"ocspServer" validate:"omitempty,url"`
	ALPN           string           `mapstructure:"alpn" json:"alpn" yaml:"alpn" toml:"alpn"`
	CAType         MaterialEncoding `mapstructure:"caType" json:"caType" yaml:"caType" toml:"caType" validate:"oneof=0 1"`
	CertType       MaterialEncoding `mapstructure:"certType" json:"certType" yaml:"certType" toml:"certType" validate:"oneof=0 1"`
	KeyType        MaterialEncoding `mapstructure:"keyType" json:"keyType" yaml:"keyType" toml:"keyType" validate:"oneof=0 1"`

	CheckCertificate bool `mapstructure:"checkCertificate" json:"checkCertificate" yaml:"checkCertificate" toml:"checkCertificate"`
	CheckHostname    bool `mapstructure:"checkHostname" json:"checkHostname" yaml:"checkHostname" toml:"checkHostname"`
	PrintInfo        bool `mapstructure:"printInfo" json:"printInfo" yaml:"printInfo" toml:"printInfo"`
	OCSP             bool `mapstructure:"ocsp" json:"ocsp" yaml:"ocsp" toml:"ocsp"`
	OCSPStapling     bool `mapstructure:"ocspStapling" json:"ocspStapling" yaml:"ocspStapling" toml:"ocspStapling"`

	// OCSPTimeout bounds a live responder round trip; SessionFreshness
	// bounds how long a saved session ticket may be replayed. Both marshal
	// the same human-readable duration forms ("5s", "18h") the rest of the
	// download client's configuration blocks use.
	OCSPTimeout      libdur.Duration  `mapstructure:"ocspTimeout" json:"ocspTimeout" yaml:"ocspTimeout" toml:"ocspTimeout"`
	SessionFreshness libdur.Duration  `mapstructure:"sessionFreshness" json:"sessionFreshness" yaml:"sessionFreshness" toml:"sessionFreshness"`
	ClientAuthMode   tlsaut.ClientAuth `mapstructure:"clientAuthMode" json:"clientAuthMode" yaml:"clientAuthMode" toml:"clientAuthMode"`

	mu           sync.Mutex
	ocspCache    OCSPCache
	sessionCache SessionCache
	hpkpCache    HPKPCache

	log liblog.FuncLog
}

// NewConfig returns a Config initialized with the documented defaults:
// AUTO priority, system CA directory, certificate and hostname checking
// on, OCSP and stapling on, PEM material everywhere.
func NewConfig(log liblog.FuncLog) *Config {
	return &Config{
		SecureProtocol:   SecureProtocolSentinel,
		CADirectory:      CADirectorySystem,
		CAType:           EncodingPEM,
		CertType:         EncodingPEM,
		KeyType:          EncodingPEM,
		CheckCertificate: true,
		CheckHostname:    true,
		PrintInfo:        false,
		OCSP:             true,
		OCSPStapling:     true,
		OCSPTimeout:      libdur.Seconds(5),
		SessionFreshness: libdur.Hours(18),
		ClientAuthMode:   tlsaut.NoClientCert,
		log:              log,
	}
}

func (c *Config) logger() liblog.Logger {
	if c.log != nil {
		if l := c.log(); l != nil {
			return l
		}
	}

	return liblog.New(nil)
}

// SetString implements the string-keyed setter operation. Unknown keys do
// not mutate state but do emit an error-log line naming the key, per the
// "unrecognized setter key is logged but does not fail the call"
// configuration-time error policy.
func (c *Config) SetString(key ParamString, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case ParamSecureProtocol:
		c.SecureProtocol = value
	case ParamCADirectory:
		c.CADirectory = value
	case ParamCAFile:
		c.CAFile = value
	case ParamCertFile:
		c.CertFile = value
	case ParamKeyFile:
		c.KeyFile = value
	case ParamCRLFile:
		c.CRLFile = value
	case ParamOCSPServer:
		c.OCSPServer = value
	case ParamALPN:
		c.ALPN = value
	default:
		c.logger().Error("unrecognized string configuration key", nil, string(key))
	}
}

// SetInt implements the integer-keyed setter operation, covering the
// boolean toggles (0/1) and the *_TYPE enums (PEM=0, DER=1).
func (c *Config) SetInt(key ParamInt, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case ParamCheckCertificate:
		c.CheckCertificate = value != 0
	case ParamCheckHostname:
		c.CheckHostname = value != 0
	case ParamPrintInfo:
		c.PrintInfo = value != 0
	case ParamOCSP:
		c.OCSP = value != 0
	case ParamOCSPStapling:
		c.OCSPStapling = value != 0
	case ParamCAType:
		c.CAType = MaterialEncoding(value)
	case ParamCertType:
		c.CertType = MaterialEncoding(value)
	case ParamKeyType:
		c.KeyType = MaterialEncoding(value)
	default:
		c.logger().Error("unrecognized integer configuration key", nil, string(key))
	}
}

// SetHandle implements the opaque-handle setter operation: OCSP response
// cache, TLS session cache, and HPKP cache. The engine never closes these
// handles; they are borrowed from the host program.
func (c *Config) SetHandle(key ParamHandle, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case ParamOCSPCache:
		if v, ok := value.(OCSPCache); ok || value == nil {
			c.ocspCache = v
		}
	case ParamSessionCache:
		if v, ok := value.(SessionCache); ok || value == nil {
			c.sessionCache = v
		}
	case ParamHPKPCache:
		if v, ok := value.(HPKPCache); ok || value == nil {
			c.hpkpCache = v
		}
	default:
		c.logger().Error("unrecognized handle configuration key", nil, string(key))
	}
}

func (c *Config) snapshot() Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	return *c
}

// Validate runs struct-tag validation over the configuration block, the
// same pattern certificates.Config.Validate uses.
func (c *Config) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		for _, e := range er.(libval.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}
