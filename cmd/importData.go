/*
Copyright 2026 Google LLC

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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/discogs-eda/internal/release"
	"github.com/ademuri/discogs-eda/internal/store"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <csv...>",
	Short: "Imports release files into the database",
	Long: `Stores the releases of each file as a dataset named after the file, replacing
any dataset of the same name. Pages read a dataset instead of the file when
--database is set.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: requireDatabase,
	Run: func(cmd *cobra.Command, args []string) {
		err := importData(cmd.Context(), viper.GetString("database"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func requireDatabase(cmd *cobra.Command, args []string) error {
	if viper.GetString("database") == "" {
		return fmt.Errorf("required flag(s) \"database\" not set")
	}
	return nil
}

func importData(ctx context.Context, dbPath string, paths []string) error {
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	logger := loggerFromContext(ctx)
	for _, path := range paths {
		p := newProgress(logger)
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		releases, err := release.Load(path)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}

		name := datasetName(path)
		err = s.SaveDataset(store.DatasetImport{
			Name:           name,
			Source:         path,
			SourceModified: info.ModTime(),
			Releases:       releases,
		})
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		p.done(fmt.Sprintf("Imported %d releases as %q", len(releases), name))
	}
	return nil
}
