/*
 * Credport node
 * Copyright (C) 2025 Credport community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package hash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// FingerprintSize holds the size of a fingerprint in bytes.
const FingerprintSize = 32

// prefix is the canonical prefix of a fingerprint's string form.
const prefix = "0x"

// Fingerprint is a SHA256 digest over a credential's anchor-relevant fields.
type Fingerprint [FingerprintSize]byte

// SHA256Sum creates a fingerprint from the given bytes.
func SHA256Sum(data []byte) Fingerprint {
	return sha256.Sum256(data)
}

// String returns the Fingerprint in its canonical form: 0x-prefixed lowercase hex.
func (h Fingerprint) String() string {
	return prefix + hex.EncodeToString(h[:])
}

// EmptyFingerprint returns a Fingerprint that is empty (initialized with zeros).
func EmptyFingerprint() Fingerprint {
	return [FingerprintSize]byte{}
}

// Empty tests whether the Fingerprint is empty (all zeros).
func (h Fingerprint) Empty() bool {
	for _, b := range h {
		if b != 0 {
			return false
		}
	}
	return true
}

// Slice returns the Fingerprint as a slice. It does not copy the array.
func (h Fingerprint) Slice() []byte {
	return h[:]
}

// Equals determines whether the given Fingerprint is exactly the same (bytes match).
func (h Fingerprint) Equals(other Fingerprint) bool {
	return bytes.Equal(h[:], other[:])
}

// MarshalJSON marshals the fingerprint as 0x-prefixed hex-encoded string.
func (h Fingerprint) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON converts from a hex-encoded json value.
func (h *Fingerprint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	copy(h[:], parsed[:])

	return nil
}

// FromSlice converts a byte slice to a Fingerprint, returning a copy.
func FromSlice(slice []byte) Fingerprint {
	result := EmptyFingerprint()
	copy(result[:], slice)
	return result
}

// ParseHex parses the given input string as Fingerprint. The 0x prefix is optional and
// hex digit casing is ignored, so fingerprints scanned from QR codes or typed by hand
// parse the same as canonical ones. If the input can't be parsed as Fingerprint, an error is returned.
func ParseHex(input string) (Fingerprint, error) {
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(input)), prefix)
	if normalized == "" {
		return EmptyFingerprint(), fmt.Errorf("empty fingerprint")
	}
	data, err := hex.DecodeString(normalized)
	if err != nil {
		return EmptyFingerprint(), err
	}
	if len(data) != FingerprintSize {
		return EmptyFingerprint(), fmt.Errorf("incorrect fingerprint length (%d)", len(data))
	}
	result := EmptyFingerprint()
	copy(result[0:], data)
	return result, nil
}
