// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package timestamp

import (
	"fmt"
	"strings"

	"github.com/canonical-ledgers/xmrts/monero"
)

// SpendKey selects the public spend key paired with the derived view key.
//
// Timestamp addresses have no spend key of their own. Historically two
// conventions exist: the all zero key, and reusing the derived public view
// key. Both are supported and the same choice must be used to commit and to
// verify.
type SpendKey int

const (
	// SpendKeyZero uses monero.ZeroPublicKey.
	SpendKeyZero SpendKey = iota
	// SpendKeyView uses the derived public view key.
	SpendKeyView
)

// SpendKeys lists all valid SpendKey values.
var SpendKeys = []SpendKey{SpendKeyZero, SpendKeyView}

// Key returns the public spend key for the given public view key.
func (s SpendKey) Key(view monero.PublicKey) monero.PublicKey {
	if s == SpendKeyView {
		return view
	}
	return monero.ZeroPublicKey
}

func (s SpendKey) String() string {
	switch s {
	case SpendKeyZero:
		return "zero"
	case SpendKeyView:
		return "view"
	}
	return fmt.Sprintf("invalid(%d)", int(s))
}

// Set parses "zero" or "view".
func (s *SpendKey) Set(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zero", "":
		*s = SpendKeyZero
	case "view":
		*s = SpendKeyView
	default:
		return fmt.Errorf(`invalid spend key: %q, must be "zero" or "view"`,
			name)
	}
	return nil
}

// Type returns "SpendKey" for use with pflag.
func (SpendKey) Type() string {
	return "SpendKey"
}

// MarshalText encodes s as its name.
func (s SpendKey) MarshalText() ([]byte, error) {
	if s != SpendKeyZero && s != SpendKeyView {
		return nil, fmt.Errorf("invalid spend key: %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a spend key name using Set.
func (s *SpendKey) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}
