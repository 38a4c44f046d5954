// barry-smoke
// (C) 2026, the barry-smoke authors
//
// The barry-smoke authors and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package signature implements the request signing schemes of the Barry
// executor. The executor accepts two schemes on POST /intent:
//
//   - v1: X-Signature: hex(HMAC-SHA256(secret, body))
//   - v2: X-Signature-V2: hex(HMAC-SHA256(secret, "<ts>." + body)) together
//     with X-Signature-Ts carrying the unix timestamp ts.
//
// The digest is always computed over the exact bytes sent on the wire.
// Round-tripping the body through a JSON encoder between signing and
// sending can reorder keys or change whitespace and invalidates the
// signature on the server side.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Header names understood by the executor.
const (
	HeaderV1 = "X-Signature"
	HeaderV2 = "X-Signature-V2"
	HeaderTs = "X-Signature-Ts"
)

// Compute returns the lowercase hex digest of HMAC-SHA256(secret, body).
// The result is always 64 characters long.
func Compute(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ComputeV2 returns the v2 digest, which additionally binds the given unix
// timestamp to the body. The executor rejects timestamps outside its
// configured skew window.
func ComputeV2(secret, body []byte, ts int64) string {
	msg := make([]byte, 0, len(body)+21)
	msg = strconv.AppendInt(msg, ts, 10)
	msg = append(msg, '.')
	msg = append(msg, body...)
	return Compute(secret, msg)
}

// Verify reports whether sig is a valid v1 signature for body.
// The comparison is constant time.
func Verify(secret, body []byte, sig string) bool {
	return hmac.Equal([]byte(Compute(secret, body)), []byte(sig))
}
