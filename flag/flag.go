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

// Package flag parses the command line flags and environment variables of
// xmrtsd.
package flag

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/posener/complete"

	_log "github.com/canonical-ledgers/xmrts/log"
	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

var Revision string

// Environment variable name prefix
const envNamePrefix = "XMRTSD_"

var (
	envNames = map[string]string{
		"debug": "DEBUG",

		"apiaddress": "API_ADDRESS",
		"apitlscert": "API_TLS_CERT",
		"apitlskey":  "API_TLS_KEY",
		"apitimeout": "API_TIMEOUT",

		"d":             "MONEROD_SERVER",
		"daemontimeout": "MONEROD_TIMEOUT",
		"requestrate":   "MONEROD_REQUEST_RATE",
		"checknetwork":  "MONEROD_CHECK_NETWORK",

		"network":  "NETWORK",
		"spendkey": "SPEND_KEY",
	}
	defaults = map[string]interface{}{
		"debug": false,

		"apiaddress": ":18095",
		"apitlscert": "",
		"apitlskey":  "",
		"apitimeout": 30 * time.Second,

		"d":             monero.DaemonDefault,
		"daemontimeout": 20 * time.Second,
		"requestrate":   uint64(timestamp.DefaultRequestRate),
		"checknetwork":  false,
	}
	descriptions = map[string]string{
		"debug": "Log debug messages",

		"apiaddress": "IPAddr:port# to bind to for serving the xmrtsd API",
		"apitlscert": "Path to TLS certificate for serving the xmrtsd API",
		"apitlskey":  "Path to TLS key for serving the xmrtsd API",
		"apitimeout": "Timeout for each xmrtsd API request",

		"d":             "URL of the monerod RPC server used to fetch transactions",
		"daemontimeout": "Timeout for monerod requests, 0 means never timeout",
		"requestrate":   "Maximum number of monerod requests per second for batch verification",
		"checknetwork":  "Verify on startup that monerod runs on -network",

		"network":  `Monero network of commitment addresses: "mainnet", "stagenet" or "testnet"`,
		"spendkey": `Public spend key paired with the derived view key: "zero" or "view"`,
	}
	flags = complete.Flags{
		"-debug": complete.PredictNothing,

		"-apiaddress": complete.PredictAnything,
		"-apitlscert": complete.PredictFiles("*"),
		"-apitlskey":  complete.PredictFiles("*"),
		"-apitimeout": complete.PredictAnything,

		"-d":             complete.PredictAnything,
		"-daemontimeout": complete.PredictAnything,
		"-requestrate":   complete.PredictAnything,
		"-checknetwork":  complete.PredictNothing,

		"-network":  PredictNetwork,
		"-spendkey": PredictSpendKey,

		"-y":                   complete.PredictNothing,
		"-installcompletion":   complete.PredictNothing,
		"-uninstallcompletion": complete.PredictNothing,
	}

	LogDebug bool

	APIAddress  string
	TLSCertFile string
	TLSKeyFile  string
	APITimeout  time.Duration
	HasTLS      bool

	MoneroClient = monero.NewClient()
	RequestRate  uint64
	CheckNetwork bool

	Network  = monero.Mainnet
	SpendKey = timestamp.SpendKeyZero

	flagset    map[string]bool
	log        _log.Log
	Completion *complete.Complete
)

func init() {
	flagVar(&LogDebug, "debug")

	flagVar(&APIAddress, "apiaddress")
	flagVar(&TLSCertFile, "apitlscert")
	flagVar(&TLSKeyFile, "apitlskey")
	flagVar(&APITimeout, "apitimeout")

	flagVar(&MoneroClient.DaemonServer, "d")
	flagVar(&MoneroClient.Daemon.Timeout, "daemontimeout")
	flagVar(&RequestRate, "requestrate")
	flagVar(&CheckNetwork, "checknetwork")

	flagVar(&Network, "network")
	flagVar(&SpendKey, "spendkey")

	// Add flags for self installing the CLI completion tool
	Completion = complete.New(os.Args[0], complete.Command{Flags: flags})
	Completion.CLI.InstallName = "installcompletion"
	Completion.CLI.UninstallName = "uninstallcompletion"
	Completion.AddFlags(nil)
}

func Parse() {
	flag.Parse()
	flagset = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flagset[f.Name] = true })

	setupLogger()

	// Load options from environment variables if they haven't been
	// specified on the command line.
	loadFromEnv(&LogDebug, "debug")

	loadFromEnv(&APIAddress, "apiaddress")
	loadFromEnv(&TLSCertFile, "apitlscert")
	loadFromEnv(&TLSKeyFile, "apitlskey")
	loadFromEnv(&APITimeout, "apitimeout")

	loadFromEnv(&MoneroClient.DaemonServer, "d")
	loadFromEnv(&MoneroClient.Daemon.Timeout, "daemontimeout")
	loadFromEnv(&RequestRate, "requestrate")
	loadFromEnv(&CheckNetwork, "checknetwork")

	loadFromEnv(&Network, "network")
	loadFromEnv(&SpendKey, "spendkey")

	_log.SetDebug(LogDebug)
}

func Validate() {
	log.Debugf("-apiaddress    %#v", APIAddress)
	log.Debugf("-apitlscert    %#v", TLSCertFile)
	log.Debugf("-apitlskey     %#v", TLSKeyFile)
	log.Debugf("-apitimeout    %v ", APITimeout)
	debugPrintln()

	log.Debugf("-d             %q", MoneroClient.DaemonServer)
	log.Debugf("-daemontimeout %v ", MoneroClient.Daemon.Timeout)
	log.Debugf("-requestrate   %v ", RequestRate)
	log.Debugf("-checknetwork  %v ", CheckNetwork)
	debugPrintln()

	log.Debugf("-network       %v", Network)
	log.Debugf("-spendkey      %v", SpendKey)
	debugPrintln()

	MoneroClient.DaemonServer = strings.TrimRight(MoneroClient.DaemonServer, "/")
	if RequestRate == 0 {
		log.Fatal("-requestrate must be greater than 0")
	}
	if len(TLSCertFile) > 0 || len(TLSKeyFile) > 0 {
		if len(TLSCertFile) == 0 || len(TLSKeyFile) == 0 {
			log.Fatal("-apitlscert and -apitlskey must be used together")
		}
		HasTLS = true
	}
}

// Stamper returns the timestamp.Stamper configured by -spendkey.
func Stamper() timestamp.Stamper {
	return timestamp.New(SpendKey)
}

func flagVar(v interface{}, name string) {
	dflt := defaults[name]
	desc := description(name)
	switch v := v.(type) {
	case *string:
		flag.StringVar(v, name, dflt.(string), desc)
	case *time.Duration:
		flag.DurationVar(v, name, dflt.(time.Duration), desc)
	case *uint64:
		flag.Uint64Var(v, name, dflt.(uint64), desc)
	case *bool:
		flag.BoolVar(v, name, dflt.(bool), desc)
	case flag.Value:
		flag.Var(v, name, desc)
	}
}

func loadFromEnv(v interface{}, flagName string) {
	if flagset[flagName] {
		return
	}
	eName := envName(flagName)
	eVar, ok := os.LookupEnv(eName)
	if len(eVar) > 0 {
		switch v := v.(type) {
		case flag.Value:
			if err := v.Set(eVar); err != nil {
				log.Fatalf("Environment Variable %v: %v", eName, err)
			}
		case *string:
			*v = eVar
		case *time.Duration:
			duration, err := time.ParseDuration(eVar)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"time.ParseDuration(\"%v\"): %v",
					eName, eVar, err)
			}
			*v = duration
		case *uint64:
			val, err := strconv.ParseUint(eVar, 10, 64)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"strconv.ParseUint(\"%v\", 10, 64): %v",
					eName, eVar, err)
			}
			*v = val
		case *bool:
			if ok {
				*v = true
			}
		}
	}
}

func debugPrintln() {
	if LogDebug {
		fmt.Println()
	}
}

func envName(flagName string) string {
	return envNamePrefix + envNames[flagName]
}
func description(flagName string) string {
	return fmt.Sprintf("%s\nEnvironment variable: %v",
		descriptions[flagName], envName(flagName))
}

func setupLogger() {
	_log.SetDebug(LogDebug)
	log = _log.New("flag")
}
