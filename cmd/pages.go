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
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/discogs-eda/internal/dashboard"
	"github.com/ademuri/discogs-eda/internal/release"
)

// pageSource is a dashboard page and the file it reads by default.
type pageSource struct {
	Name  string
	Data  string
	Build func([]release.Release, dashboard.Options) dashboard.Page
}

var pageSources = []pageSource{
	{Name: "overview", Data: "data/discogs_clean.csv", Build: dashboard.Overview},
	{Name: "electronic", Data: "data/discogs_electr_90s_clean.csv", Build: dashboard.Electronic},
	{Name: "styles", Data: "data/discogs_electr_90s_clean.csv", Build: dashboard.Styles},
}

func pageNames() []string {
	names := make([]string, len(pageSources))
	for i, s := range pageSources {
		names[i] = s.Name
	}
	return names
}

func getPageFromName(name string) (pageSource, error) {
	for _, s := range pageSources {
		if s.Name == name {
			return s, nil
		}
	}
	return pageSource{}, fmt.Errorf("Invalid page name: %s (want one of %s)", name, strings.Join(pageNames(), ", "))
}

// dataKey is the config key naming the file a page reads, e.g. overview_data.
func (s pageSource) dataKey() string {
	return s.Name + "_data"
}

// pageDataPath picks the file a page reads: an explicit override, then the
// page's own config key, then the page's default.
func pageDataPath(source pageSource, override string) string {
	if override != "" {
		return override
	}
	if v := viper.GetString(source.dataKey()); v != "" {
		return v
	}
	return source.Data
}

// buildPage loads the page's data and computes its charts. An empty
// dataPath falls back to pageDataPath.
func buildPage(ctx context.Context, dbPath string, dataPath string, source pageSource, opts dashboard.Options) (dashboard.Page, error) {
	dataPath = pageDataPath(source, dataPath)
	releases, err := loadReleases(ctx, dbPath, dataPath)
	if err != nil {
		return dashboard.Page{}, err
	}

	p := newProgress(loggerFromContext(ctx))
	page := source.Build(releases, opts)
	for _, c := range page.Charts {
		if c.Err != nil && !c.Empty() {
			loggerFromContext(ctx).Warn("Chart failed", "page", page.Name, "chart", c.Title, "err", c.Err)
		}
	}
	p.done(fmt.Sprintf("Computed %d charts for %s", len(page.Charts), page.Name))
	return page, nil
}

// newPageCmd returns the command printing one dashboard page.
func newPageCmd(name string, short string) *cobra.Command {
	source, err := getPageFromName(name)
	if err != nil {
		panic(err)
	}

	var dataPath string
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override := ""
			if cmd.Flags().Changed("data") {
				override = dataPath
			}
			return printPage(cmd.Context(), cmd.OutOrStdout(), source, override)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", source.Data,
		fmt.Sprintf("CSV file to read, or the dataset imported from it with --database (config: %s)", source.dataKey()))
	return cmd
}

func printPage(ctx context.Context, w io.Writer, source pageSource, dataPath string) error {
	page, err := buildPage(ctx, viper.GetString("database"), dataPath, source, pageOptions())
	if err != nil {
		return err
	}
	return renderPages(w, []dashboard.Page{page}, viper.GetString("output"))
}
