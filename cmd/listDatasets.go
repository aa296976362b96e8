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
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/discogs-eda/internal/store"
)

// listDatasetsCmd represents the listDatasets command
var listDatasetsCmd = &cobra.Command{
	Use:     "list-datasets",
	Short:   "Lists all datasets imported into the database",
	Long:    ``,
	PreRunE: requireDatabase,
	Run: func(cmd *cobra.Command, args []string) {
		err := listDatasets(os.Stdout, viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listDatasetsCmd)
}

func listDatasets(out io.Writer, dbPath string) error {
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	datasets, err := s.Datasets()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROWS\tSOURCE\tSOURCE MODIFIED\tIMPORTED")
	for _, d := range datasets {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", d.Name, d.Rows, d.Source,
			d.SourceModified.Format("2006-01-02 15:04"), d.Imported.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
