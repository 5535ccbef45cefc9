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
	goflag "flag"
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/canonical-ledgers/xmrts/api"
	"github.com/canonical-ledgers/xmrts/monero"
	"github.com/canonical-ledgers/xmrts/timestamp"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	// Revision is set by main.
	Revision string

	cfgFile      string
	MoneroClient = monero.NewClient()
	XmrtsdClient = api.NewClient()
	Debug        bool

	Network  = monero.Mainnet
	SpendKey = timestamp.SpendKeyZero
)

func init() {
	cobra.OnInitialize(initConfig, initClients)
}

// initClients sets the same timeout and debug settings for all Clients.
func initClients() {
	MoneroClient.Daemon.DebugRequest = Debug
	XmrtsdClient.DebugRequest = Debug
	XmrtsdClient.Timeout = MoneroClient.Daemon.Timeout
	MoneroClient.DaemonServer = strings.TrimRight(MoneroClient.DaemonServer, "/")
	XmrtsdClient.XmrtsdServer = strings.TrimRight(XmrtsdClient.XmrtsdServer, "/")
}

var apiFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.StringVarP(&MoneroClient.DaemonServer, "node", "n",
		monero.DaemonDefault, "scheme://host:port for monerod")
	flags.StringVar(&XmrtsdClient.XmrtsdServer, "xmrtsd", "",
		"scheme://host:port for xmrtsd, if any")
	flags.DurationVar(&MoneroClient.Daemon.Timeout, "timeout", 20*time.Second,
		"Timeout for all API requests (i.e. 10s, 1m)")
	flags.BoolVar(&Debug, "debug", false, "Print all RPC requests and responses")
	return flags
}()

var timestampFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.VarP(&Network, "network", "N",
		"Monero network of the commitment address")
	flags.Var(&SpendKey, "spend-key",
		`Public spend key of the commitment address: "zero" or "view"`)
	return flags
}()

// completion handles --install and --uninstall. Its flags are registered on
// the root command.
var completion = complete.New("xmrts", rootCmplCmd)

var installCompletionFlags = func() *flag.FlagSet {
	goflags := goflag.NewFlagSet("", goflag.ContinueOnError)
	completion.CLI.AddFlags(goflags)
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.AddGoFlagSet(goflags)
	return flags
}()

// rootCmd represents the base command when called without any subcommands
var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xmrts",
		Short: "Monero data timestamping CLI",
		Long: `
xmrts proves that some data existed at a certain time using the Monero
blockchain.

Timestamping

Use "xmrts hash" to derive the commitment address of some data. Send any
amount, such as 0.000000000001 XMR, to that address from any wallet. The
height of the block containing the payment is the timestamp.

Use "xmrts verify" with the same data and the payment's txid to check the
timestamp later. No wallet is needed to verify.

API Settings

xmrts queries monerod to look up transactions. Use --node to specify the
monerod endpoint, if not on http://localhost:18081.

Settings may also be provided by ~/.xmrts.yaml or by XMRTS_* environment
variables, such as XMRTS_NODE.
`[1:],
		Args:    cobra.ExactArgs(0),
		PreRunE: validateRunCompletionFlags,
		Run:     runCompletion,
	}

	cmd.Flags().AddFlagSet(installCompletionFlags)
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.xmrts.yaml)")
	flags.AddFlagSet(apiFlags)
	flags.AddFlagSet(timestampFlags)

	generateCmplFlags(cmd, rootCmplCmd.Flags)
	return cmd
}()

var rootCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, timestampCmplFlags),
	Sub:   complete.Commands{"help": complete.Command{Sub: complete.Commands{}}},
}
var apiCmplFlags = complete.Flags{
	"--help":   complete.PredictNothing,
	"--config": complete.PredictFiles("*.yaml"),
}
var timestampCmplFlags = complete.Flags{
	"--network":   PredictNetwork,
	"-N":          PredictNetwork,
	"--spend-key": PredictSpendKey,
}

func validateRunCompletionFlags(cmd *cobra.Command, _ []string) error {
	// Ensure that the install completion flags are not ever used with any
	// other flags.
	flags := cmd.Flags()
	installCompletionMode := false
	otherFlags := false
	flags.Visit(func(flg *flag.Flag) {
		switch flg.Name {
		case "install", "uninstall", "y":
			installCompletionMode = true
		default:
			otherFlags = true
		}
	})
	if installCompletionMode && otherFlags {
		return fmt.Errorf(
			"--install and --uninstall may not be used with any other flags")
	}
	return nil
}

func runCompletion(cmd *cobra.Command, _ []string) {
	// Complete() returns true if it attempts to install completion,
	// otherwise just output the help page.
	if !Complete() {
		cmd.Help()
	}
}

// initConfig reads in config file and ENV variables if set. Values found
// there apply to all flags not given on the command line.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".xmrts" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".xmrts")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("XMRTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && Debug {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if err := applyConfig(rootCmd.PersistentFlags()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// applyConfig sets every flag in flags that was not set on the command line
// to its value from viper, if any.
func applyConfig(flags *flag.FlagSet) error {
	var err error
	flags.VisitAll(func(flg *flag.Flag) {
		if err != nil || flg.Changed || flg.Name == "config" {
			return
		}
		if !viper.IsSet(flg.Name) {
			return
		}
		if e := flg.Value.Set(viper.GetString(flg.Name)); e != nil {
			err = fmt.Errorf("config %q: %w", flg.Name, e)
		}
	})
	return err
}
