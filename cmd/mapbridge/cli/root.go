// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli holds the root command and the flag values shared by the
// mapbridge subcommands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/mapbridge/config"
)

// RootCmd is the command every subcommand registers with.
var RootCmd = &cobra.Command{
	Use:          "mapbridge",
	Short:        "Import OpenStreetMap regions as 3D geometry",
	Long:         "Import the buildings, roads and sidewalks of an OpenStreetMap region as 3D geometry",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			verbose = false
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		config.LoadDotEnv(".env", ".env.local")
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "log debug information")
	flags.String("config", "", "YAML configuration file")
}

// LoadConfig loads the configuration named by the --config flag.
func LoadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	return config.Load(path)
}
