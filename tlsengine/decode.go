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
	libmap "github.com/go-viper/mapstructure/v2"

	tlscas "github.com/kumar-mallikarjuna/wget2/certificates/ca"
	tlscrt "github.com/kumar-mallikarjuna/wget2/certificates/certs"
	tlscpr "github.com/kumar-mallikarjuna/wget2/certificates/cipher"
	tlscrv "github.com/kumar-mallikarjuna/wget2/certificates/curves"
	libperm "github.com/kumar-mallikarjuna/wget2/file/perm"

	liberr "github.com/kumar-mallikarjuna/wget2/errors"
	liblog "github.com/kumar-mallikarjuna/wget2/logger"
)

// DecodeConfig builds a Config from a loosely-typed map, the shape a host
// program's own configuration file unmarshals into before handing the
// relevant "tls" section down to this package. It reuses the same
// per-type mapstructure decode hooks certificates' own sub-packages
// already expose for Viper integration, so a string like "PFS" or
// "0644" decodes the same way here as it would directly into a
// certificates.Config.
func DecodeConfig(raw map[string]interface{}, log liblog.FuncLog) (*Config, liberr.Error) {
	cfg := NewConfig(log)

	dec, err := libmap.NewDecoder(&libmap.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: libmap.ComposeDecodeHookFunc(
			tlscpr.ViperDecoderHook(),
			tlscrv.ViperDecoderHook(),
			tlscas.ViperDecoderHook(),
			tlscrt.ViperDecoderHook(),
			libperm.ViperDecoderHook(),
		),
	})
	if err != nil {
		return nil, ErrorInvalid.Error(err)
	}

	if err := dec.Decode(raw); err != nil {
		return nil, ErrorInvalid.Error(err)
	}

	return cfg, nil
}
