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

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Hughmann42/barry-smoke/internal/logger"
	"github.com/Hughmann42/barry-smoke/pkg/config"
	"github.com/Hughmann42/barry-smoke/pkg/smoke"
)

// NewCmdServe creates a new serve command
func NewCmdServe() *cobra.Command {
	flagMapping := config.RunFlagsNameMapping{
		BaseURL:       "baseUrl",
		SuiteName:     "suite",
		SuiteFilePath: "suiteFile",
		EnvFile:       "envFile",
		Timeout:       "timeout",

		ApiAddress:    "apiAddress",
		ProbeInterval: "probeInterval",

		LoaderHttpUrl:        "loaderHttpUrl",
		LoaderHttpToken:      "loaderHttpToken",
		LoaderInterval:       "loaderInterval",
		LoaderHttpRetryCount: "loaderHttpRetryCount",
		LoaderHttpRetryDelay: "loaderHttpRetryDelay",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the prober continuously and expose results via an API",
		Long: "Sweeps the executor with the selected probe suite on a fixed interval and\n" +
			"serves the latest verdicts, a liveness endpoint and Prometheus metrics.",
		Run: serve(&flagMapping),
	}

	cmd.PersistentFlags().String(flagMapping.BaseURL, config.DefaultBaseURL, "Base URL of the executor under test")
	cmd.PersistentFlags().StringP(flagMapping.SuiteName, "s", "smoke", "Name of the probe suite to run")
	cmd.PersistentFlags().String(flagMapping.SuiteFilePath, "", "Path to a yaml file with additional probe suites")
	cmd.PersistentFlags().String(flagMapping.EnvFile, "", "dotenv file to load before resolving the shared secret")
	cmd.PersistentFlags().Int(flagMapping.Timeout, 10, "Per-request timeout in seconds")

	cmd.PersistentFlags().String(flagMapping.ApiAddress, ":8080", "api: The address the server is listening on")
	cmd.PersistentFlags().Int(flagMapping.ProbeInterval, 60, "Seconds between probe sweeps")

	cmd.PersistentFlags().String(flagMapping.LoaderHttpUrl, "", "suite loader: url to fetch remote probe suites from")
	cmd.PersistentFlags().String(flagMapping.LoaderHttpToken, "", "suite loader: Bearer token to authenticate the http endpoint")
	cmd.PersistentFlags().Int(flagMapping.LoaderInterval, 300, "suite loader: reload interval in seconds")
	cmd.PersistentFlags().Int(flagMapping.LoaderHttpRetryCount, 3, "suite loader: amount of retries trying to load the suites")
	cmd.PersistentFlags().Int(flagMapping.LoaderHttpRetryDelay, 1, "suite loader: initial delay between retries in seconds")

	return cmd
}

// serve is the entry point for the continuous prober
func serve(fm *config.RunFlagsNameMapping) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		log := logger.NewLogger()
		ctx, cancel := signal.NotifyContext(logger.IntoContext(context.Background(), log),
			syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		bindFlags(cmd, fm.BaseURL, fm.SuiteName, fm.SuiteFilePath, fm.EnvFile, fm.Timeout,
			fm.ApiAddress, fm.ProbeInterval,
			fm.LoaderHttpUrl, fm.LoaderHttpToken, fm.LoaderInterval,
			fm.LoaderHttpRetryCount, fm.LoaderHttpRetryDelay)

		cfg := config.NewConfig()

		cfg.SetBaseURL(viper.GetString(fm.BaseURL))
		cfg.SetSuiteName(viper.GetString(fm.SuiteName))
		cfg.SetSuiteFilePath(viper.GetString(fm.SuiteFilePath))
		cfg.SetEnvFile(viper.GetString(fm.EnvFile))
		cfg.SetTimeout(viper.GetInt(fm.Timeout))

		cfg.SetApiAddress(viper.GetString(fm.ApiAddress))
		cfg.SetProbeInterval(viper.GetInt(fm.ProbeInterval))

		cfg.SetLoaderHttpUrl(viper.GetString(fm.LoaderHttpUrl))
		cfg.SetLoaderHttpToken(viper.GetString(fm.LoaderHttpToken))
		cfg.SetLoaderInterval(viper.GetInt(fm.LoaderInterval))
		cfg.SetLoaderHttpRetryCount(viper.GetInt(fm.LoaderHttpRetryCount))
		cfg.SetLoaderHttpRetryDelay(viper.GetInt(fm.LoaderHttpRetryDelay))

		if err := cfg.Validate(ctx, fm); err != nil {
			log.Error("Error while validating the config", "error", err)
			os.Exit(1)
		}

		log.Info("Serving barry-smoke", "address", cfg.Api.ListeningAddress)
		if err := smoke.New(cfg).Serve(ctx); err != nil && ctx.Err() == nil {
			log.Error("Prober stopped", "error", err)
			os.Exit(1)
		}
	}
}
