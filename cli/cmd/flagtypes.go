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

package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

// TxIDList parses a flag as a comma separated list of monero.Hash. Multiple
// uses of the flag append to the list.
type TxIDList []monero.Hash

func (txIDs *TxIDList) Set(txIDStrs string) error {
	for _, txIDStr := range strings.Split(txIDStrs, ",") {
		var txID monero.Hash
		if err := txID.Set(strings.TrimSpace(txIDStr)); err != nil {
			return fmt.Errorf("txid %q: %w", txIDStr, err)
		}
		*txIDs = append(*txIDs, txID)
	}
	return nil
}
func (txIDs TxIDList) String() string {
	strs := make([]string, len(txIDs))
	for i, txID := range txIDs {
		strs[i] = txID.String()
	}
	return strings.Join(strs, ",")
}
func (TxIDList) Type() string {
	return "txid"
}

// TxHex parses a flag as a hex encoded raw transaction.
type TxHex []byte

func (tx *TxHex) Set(hexStr string) error {
	data, err := hex.DecodeString(strings.TrimSpace(hexStr))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("empty transaction")
	}
	*tx = data
	return nil
}
func (tx TxHex) String() string {
	return hex.EncodeToString(tx)
}
func (TxHex) Type() string {
	return "hex"
}

// DataSource selects the timestamped data with exactly one of --data, --file
// or --digest.
type DataSource struct {
	Data   string
	File   string
	Digest timestamp.Digest
}

func (src *DataSource) Flags() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.StringVar(&src.Data, "data", "", "Timestamp this literal data")
	flags.StringVarP(&src.File, "file", "f", "",
		"Timestamp the contents of this file")
	flags.Var(&src.Digest, "digest",
		"Timestamp the data with this hex encoded SHA-512 digest")
	flags.Lookup("digest").DefValue = "none"
	return flags
}

// Get returns the digest of the data selected on the command line.
func (src *DataSource) Get(flags *flag.FlagSet) (timestamp.Digest, error) {
	var set []string
	for _, name := range []string{"data", "file", "digest"} {
		if flags.Changed(name) {
			set = append(set, "--"+name)
		}
	}
	switch len(set) {
	case 0:
		return timestamp.Digest{}, fmt.Errorf(
			"one of --data, --file or --digest is required")
	case 1:
	default:
		return timestamp.Digest{}, fmt.Errorf("may not be used together: %v",
			strings.Join(set, ", "))
	}
	switch {
	case flags.Changed("data"):
		return timestamp.DigestData([]byte(src.Data)), nil
	case flags.Changed("file"):
		return timestamp.DigestFile(src.File)
	}
	return src.Digest, nil
}
