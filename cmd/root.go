/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/discogs-eda/internal/dashboard"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "discogs-eda",
	Short: "Exploratory analysis of the Discogs release catalogue",
	Long: `Loads a cleaned Discogs release export and prints the tables behind each
dashboard page: the whole catalogue, 90s electronic releases and their styles.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if viper.GetBool("verbose") {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := dashboard.DefaultOptions()

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.discogs-eda.yaml)")

	var databasePath string
	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "", "Path to the SQLite database of imported datasets; pages read CSV files when unset")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	var output string
	rootCmd.PersistentFlags().StringVarP(
		&output, "output", "o", "table", "Output format: table, yaml, json or html")
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	var yearCutoff int
	rootCmd.PersistentFlags().IntVar(
		&yearCutoff, "year_cutoff", defaults.YearCutoff, "Leave releases after this year out of trends over time")
	viper.BindPFlag("year_cutoff", rootCmd.PersistentFlags().Lookup("year_cutoff"))

	var genre string
	rootCmd.PersistentFlags().StringVar(&genre, "genre", defaults.Genre, "Genre to compare against the whole catalogue")
	viper.BindPFlag("genre", rootCmd.PersistentFlags().Lookup("genre"))

	var format string
	rootCmd.PersistentFlags().StringVar(&format, "format", defaults.Format, "Format to analyse in detail")
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

// initConfig reads in config file and ENV variables if set.
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

		// Search config in home directory with name ".discogs-eda" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".discogs-eda")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.PersistentFlags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// pageOptions returns the dashboard filters from flags and config.
func pageOptions() dashboard.Options {
	opts := dashboard.DefaultOptions()
	if v := viper.GetInt("year_cutoff"); v != 0 {
		opts.YearCutoff = v
	}
	if v := viper.GetString("genre"); v != "" {
		opts.Genre = v
	}
	if v := viper.GetString("format"); v != "" {
		opts.Format = v
	}
	return opts
}
