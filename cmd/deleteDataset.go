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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/discogs-eda/internal/store"
)

// deleteDatasetCmd represents the deleteDataset command
var deleteDatasetCmd = &cobra.Command{
	Use:     "delete-dataset <name>",
	Short:   "Deletes an imported dataset",
	Long:    ``,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireDatabase,
	Run: func(cmd *cobra.Command, args []string) {
		err := deleteDataset(viper.GetString("database"), args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Deleted dataset %q\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteDatasetCmd)
}

func deleteDataset(dbPath string, name string) error {
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteDataset(name); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}
