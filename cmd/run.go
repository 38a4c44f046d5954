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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Hughmann42/barry-smoke/internal/logger"
	"github.com/Hughmann42/barry-smoke/pkg/config"
	"github.com/Hughmann42/barry-smoke/pkg/smoke"
)

// NewCmdRun creates a new run command
func NewCmdRun() *cobra.Command {
	flagMapping := config.RunFlagsNameMapping{
		BaseURL:       "baseUrl",
		SuiteName:     "suite",
		SuiteFilePath: "suiteFile",
		EnvFile:       "envFile",
		Timeout:       "timeout",
	}

	cmd := &cobra.Command{
		Use:   "run [base-url]",
		Short: "Run the probe suite once",
		Long: "Executes the selected probe suite once against the executor and prints one\n" +
			"verdict line per probe. Individual probe failures do not make the run fail.",
		Args: cobra.MaximumNArgs(1),
		Run:  run(&flagMapping),
	}

	cmd.PersistentFlags().String(flagMapping.BaseURL, config.DefaultBaseURL, "Base URL of the executor under test")
	cmd.PersistentFlags().StringP(flagMapping.SuiteName, "s", "smoke", "Name of the probe suite to run")
	cmd.PersistentFlags().String(flagMapping.SuiteFilePath, "", "Path to a yaml file with additional probe suites")
	cmd.PersistentFlags().String(flagMapping.EnvFile, "", "dotenv file to load before resolving the shared secret")
	cmd.PersistentFlags().Int(flagMapping.Timeout, 10, "Per-request timeout in seconds")

	return cmd
}

// bindFlags points viper at the invoked command's flag set. Binding at
// invocation time keeps run and serve, which share flag names, from
// shadowing each other.
func bindFlags(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = viper.BindPFlag(name, cmd.PersistentFlags().Lookup(name))
	}
}

// run is the entry point for a one-shot probe sweep
func run(fm *config.RunFlagsNameMapping) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		log := logger.NewLogger()
		ctx := logger.IntoContext(context.Background(), log)

		bindFlags(cmd, fm.BaseURL, fm.SuiteName, fm.SuiteFilePath, fm.EnvFile, fm.Timeout)

		cfg := config.NewConfig()

		cfg.SetBaseURL(viper.GetString(fm.BaseURL))
		if len(args) > 0 {
			cfg.SetBaseURL(args[0])
		}
		cfg.SetSuiteName(viper.GetString(fm.SuiteName))
		cfg.SetSuiteFilePath(viper.GetString(fm.SuiteFilePath))
		cfg.SetEnvFile(viper.GetString(fm.EnvFile))
		cfg.SetTimeout(viper.GetInt(fm.Timeout))

		if err := cfg.Validate(ctx, fm); err != nil {
			log.Error("Error while validating the config", "error", err)
			os.Exit(1)
		}

		if err := smoke.New(cfg).Run(ctx, os.Stdout); err != nil {
			log.Error("Smoke run failed", "error", err)
			os.Exit(1)
		}
	}
}
