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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/discogs-eda/internal/dashboard"
	"github.com/ademuri/discogs-eda/internal/store"
)

const testCSV = `release_id,country,label,format,genre,styles,release_year,have,want,lowest_price_(USD),median price_(USD),highest_price_(USD),mean_rating,num_ratings
1,UK,Warp Records,Vinyl,Electronic,"Techno, House",1995,120,300,2.5,10.0,55.0,4.2,31
2,Germany,Tresor,CD,Electronic,Techno,1995,40,,1.0,,9.99,,
3,US,Strictly Rhythm,Vinyl,Electronic,House,1996,15,22,0.5,3.0,12.0,3.9,7
`

func writeTestCSV(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(testCSV), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestDatasetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/discogs_clean.csv", "discogs_clean"},
		{"/tmp/electr.90s.csv", "electr.90s"},
		{"releases", "releases"},
	}
	for _, tt := range tests {
		if got := datasetName(tt.path); got != tt.want {
			t.Errorf("datasetName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadReleasesFromFileAndDatabase(t *testing.T) {
	ctx := context.Background()
	csvPath := writeTestCSV(t, "releases.csv")
	dbPath := filepath.Join(t.TempDir(), "test.db")

	fromFile, err := loadReleases(ctx, "", csvPath)
	if err != nil {
		t.Fatalf("loadReleases() from file error: %v", err)
	}
	if len(fromFile) != 3 {
		t.Fatalf("Expected 3 releases from file, got %d", len(fromFile))
	}

	if _, err := loadReleases(ctx, dbPath, csvPath); !errors.Is(err, store.ErrDatasetNotFound) {
		t.Fatalf("Expected ErrDatasetNotFound before import, got %v", err)
	}

	if err := importData(ctx, dbPath, []string{csvPath}); err != nil {
		t.Fatalf("importData() error: %v", err)
	}
	fromDb, err := loadReleases(ctx, dbPath, csvPath)
	if err != nil {
		t.Fatalf("loadReleases() from database error: %v", err)
	}
	if len(fromDb) != len(fromFile) {
		t.Fatalf("Expected %d releases from database, got %d", len(fromFile), len(fromDb))
	}
	for i := range fromFile {
		if fromDb[i] != fromFile[i] {
			t.Errorf("Release %d differs: file %+v, database %+v", i, fromFile[i], fromDb[i])
		}
	}
}

func TestListAndDeleteDatasets(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := importData(ctx, dbPath, []string{writeTestCSV(t, "electr_90s.csv")}); err != nil {
		t.Fatalf("importData() error: %v", err)
	}

	out := new(bytes.Buffer)
	if err := listDatasets(out, dbPath); err != nil {
		t.Fatalf("listDatasets() error: %v", err)
	}
	if !strings.Contains(out.String(), "electr_90s") {
		t.Errorf("Expected dataset in listing, got:\n%s", out)
	}

	if err := deleteDataset(dbPath, "electr_90s"); err != nil {
		t.Fatalf("deleteDataset() error: %v", err)
	}
	if err := deleteDataset(dbPath, "electr_90s"); !errors.Is(err, store.ErrDatasetNotFound) {
		t.Errorf("Expected ErrDatasetNotFound deleting twice, got %v", err)
	}

	// Verify it handles no datasets gracefully
	out.Reset()
	if err := listDatasets(out, dbPath); err != nil {
		t.Fatalf("listDatasets() should not fail even with no datasets: %v", err)
	}
}

func TestImportDataMissingFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	err := importData(context.Background(), dbPath, []string{filepath.Join(t.TempDir(), "missing.csv")})
	if err == nil {
		t.Fatal("Expected error importing a missing file, got nil")
	}
}

func testPage(t *testing.T) dashboard.Page {
	t.Helper()
	source, err := getPageFromName("overview")
	if err != nil {
		t.Fatalf("getPageFromName() error: %v", err)
	}
	page, err := buildPage(context.Background(), "", writeTestCSV(t, "releases.csv"), source, dashboard.DefaultOptions())
	if err != nil {
		t.Fatalf("buildPage() error: %v", err)
	}
	return page
}

func TestRenderPages(t *testing.T) {
	page := testPage(t)

	out := new(bytes.Buffer)
	if err := renderPages(out, []dashboard.Page{page}, "table"); err != nil {
		t.Fatalf("renderPages(table) error: %v", err)
	}
	if !strings.Contains(out.String(), "Top 10 Genres") || !strings.Contains(out.String(), "Electronic") {
		t.Errorf("Unexpected table output:\n%s", out)
	}

	out.Reset()
	if err := renderPages(out, []dashboard.Page{page}, "json"); err != nil {
		t.Fatalf("renderPages(json) error: %v", err)
	}
	var fromJSON pageDocument
	if err := json.Unmarshal(out.Bytes(), &fromJSON); err != nil {
		t.Fatalf("Invalid json: %v", err)
	}
	if fromJSON.Name != "overview" || len(fromJSON.Charts) != len(page.Charts) {
		t.Errorf("Unexpected json document: %+v", fromJSON)
	}
	if got := fromJSON.Charts[0].Rows; len(got) != 1 || got[0][0] != "Electronic" || got[0][1] != "3" {
		t.Errorf("Unexpected genre rows: %v", got)
	}

	out.Reset()
	if err := renderPages(out, []dashboard.Page{page}, "yaml"); err != nil {
		t.Fatalf("renderPages(yaml) error: %v", err)
	}
	var fromYAML pageDocument
	if err := yaml.Unmarshal(out.Bytes(), &fromYAML); err != nil {
		t.Fatalf("Invalid yaml: %v", err)
	}
	if fromYAML.Title != page.Title {
		t.Errorf("Expected title %q, got %q", page.Title, fromYAML.Title)
	}

	out.Reset()
	if err := renderPages(out, []dashboard.Page{page}, "html"); err != nil {
		t.Fatalf("renderPages(html) error: %v", err)
	}
	if !strings.Contains(out.String(), "<table>") {
		t.Errorf("Expected an html table, got:\n%s", out)
	}

	if err := renderPages(out, []dashboard.Page{page}, "csv"); err == nil {
		t.Error("Expected error for unknown output format, got nil")
	}
}

func TestRenderEmptyPage(t *testing.T) {
	page := dashboard.Styles(nil, dashboard.DefaultOptions())

	out := new(bytes.Buffer)
	if err := renderPages(out, []dashboard.Page{page}, "table"); err != nil {
		t.Fatalf("renderPages() error: %v", err)
	}
	if got := strings.Count(out.String(), noData); got != len(page.Charts) {
		t.Errorf("Expected %d %q markers, got %d:\n%s", len(page.Charts), noData, got, out)
	}

	doc := newPageDocument(page)
	for _, c := range doc.Charts {
		if !c.NoData || c.Error != "" {
			t.Errorf("Expected chart %q to have no data and no error, got %+v", c.Title, c)
		}
	}
}

func TestGetPageFromName(t *testing.T) {
	for _, name := range []string{"overview", "electronic", "styles"} {
		if _, err := getPageFromName(name); err != nil {
			t.Errorf("getPageFromName(%q) error: %v", name, err)
		}
	}
	if _, err := getPageFromName("intro"); err == nil {
		t.Error("Expected error for unknown page, got nil")
	}
}

func TestSendEmailDryRun(t *testing.T) {
	config := SendEmailConfig{
		DataPath: writeTestCSV(t, "releases.csv"),
		From:     "from@example.com",
		To:       "to@example.com",
		Pages:    []string{"overview", "styles"},
		Options:  dashboard.DefaultOptions(),
		DryRun:   true,
	}

	out := new(bytes.Buffer)
	if err := sendEmail(context.Background(), out, config); err != nil {
		t.Fatalf("sendEmail() error: %v", err)
	}
	body := out.String()
	if !strings.Contains(body, "subject: Discogs report: overview, styles") {
		t.Errorf("Expected subject in dry run output, got:\n%s", body)
	}
	if strings.Count(body, "<h1>") != 2 {
		t.Errorf("Expected one heading per page, got:\n%s", body)
	}
}

func TestSendEmailRequiresKey(t *testing.T) {
	config := SendEmailConfig{
		DataPath: writeTestCSV(t, "releases.csv"),
		From:     "from@example.com",
		To:       "to@example.com",
		Pages:    []string{"styles"},
		Options:  dashboard.DefaultOptions(),
	}
	if err := sendEmail(context.Background(), new(bytes.Buffer), config); err == nil {
		t.Error("Expected error without a sendgrid key, got nil")
	}
}

func TestGenerateEmailContentUnknownPage(t *testing.T) {
	config := SendEmailConfig{Pages: []string{"nope"}, Options: dashboard.DefaultOptions()}
	if _, _, err := generateEmailContent(context.Background(), config); err == nil {
		t.Error("Expected error for unknown page, got nil")
	}
}

func TestRequireDatabase(t *testing.T) {
	t.Cleanup(func() { viper.Set("database", "") })

	viper.Set("database", "")
	err := requireDatabase(importCmd, nil)
	if err == nil {
		t.Error("Expected error when database is missing, got nil")
	} else if err.Error() != "required flag(s) \"database\" not set" {
		t.Errorf("Expected 'required flag(s) \"database\" not set', got %v", err)
	}

	viper.Set("database", filepath.Join(t.TempDir(), "test.db"))
	if err := requireDatabase(importCmd, nil); err != nil {
		t.Errorf("Expected nil when database is set, got %v", err)
	}
}

func TestEmailRequiresFrom(t *testing.T) {
	t.Cleanup(func() { viper.Set("from", "") })

	viper.Set("from", "")
	if err := emailCmd.PreRunE(emailCmd, []string{"to@example.com", "overview"}); err == nil {
		t.Error("Expected error when from is missing, got nil")
	}

	viper.Set("from", "from@example.com")
	if err := emailCmd.PreRunE(emailCmd, []string{"to@example.com", "overview"}); err != nil {
		t.Errorf("Expected nil when from is set, got %v", err)
	}
}

type fakeSender struct {
	responses []*rest.Response
	errs      []error
	calls     int
}

func (f *fakeSender) Send(email *mail.SGMailV3) (*rest.Response, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], f.errs[i]
}

func useFakeSender(t *testing.T, sender *fakeSender) {
	t.Helper()
	oldSender, oldDelay := newMailSender, sendDelay
	t.Cleanup(func() { newMailSender, sendDelay = oldSender, oldDelay })
	newMailSender = func(string) mailSender { return sender }
	sendDelay = time.Millisecond
}

func sendConfig(t *testing.T) SendEmailConfig {
	return SendEmailConfig{
		DataPath:       writeTestCSV(t, "releases.csv"),
		From:           "from@example.com",
		To:             "to@example.com",
		Pages:          []string{"styles"},
		Options:        dashboard.DefaultOptions(),
		SendgridAPIKey: "key",
	}
}

func TestSendEmailRetries(t *testing.T) {
	tests := []struct {
		name      string
		responses []*rest.Response
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "server errors then accepted",
			responses: []*rest.Response{{StatusCode: 503}, {StatusCode: 500}, {StatusCode: 202}},
			errs:      []error{nil, nil, nil},
			wantCalls: 3,
		},
		{
			name:      "transport error then accepted",
			responses: []*rest.Response{nil, {StatusCode: 202}},
			errs:      []error{errors.New("connection reset"), nil},
			wantCalls: 2,
		},
		{
			name:      "client error",
			responses: []*rest.Response{{StatusCode: 400, Body: "bad request"}},
			errs:      []error{nil},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "server errors exhaust attempts",
			responses: []*rest.Response{{StatusCode: 502}},
			errs:      []error{nil},
			wantCalls: 3,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{responses: tt.responses, errs: tt.errs}
			useFakeSender(t, sender)

			err := sendEmail(context.Background(), new(bytes.Buffer), sendConfig(t))
			if (err != nil) != tt.wantErr {
				t.Errorf("sendEmail() error = %v, wantErr %v", err, tt.wantErr)
			}
			if sender.calls != tt.wantCalls {
				t.Errorf("Expected %d send attempts, got %d", tt.wantCalls, sender.calls)
			}
		})
	}
}

func setViper(t *testing.T, key string, value interface{}) {
	t.Helper()
	old := viper.Get(key)
	t.Cleanup(func() { viper.Set(key, old) })
	viper.Set(key, value)
}

func TestPageOptions(t *testing.T) {
	if got := pageOptions(); got != dashboard.DefaultOptions() {
		t.Errorf("Expected default options, got %+v", got)
	}

	setViper(t, "year_cutoff", 1999)
	setViper(t, "genre", "Jazz")
	setViper(t, "format", "CD")
	want := dashboard.DefaultOptions()
	want.YearCutoff, want.Genre, want.Format = 1999, "Jazz", "CD"
	if got := pageOptions(); got != want {
		t.Errorf("pageOptions() = %+v, want %+v", got, want)
	}
}

func TestPageDataPath(t *testing.T) {
	overview, _ := getPageFromName("overview")
	styles, _ := getPageFromName("styles")

	if got := pageDataPath(overview, ""); got != "data/discogs_clean.csv" {
		t.Errorf("Expected overview default file, got %q", got)
	}

	setViper(t, "overview_data", "catalogue.csv")
	if got := pageDataPath(overview, ""); got != "catalogue.csv" {
		t.Errorf("Expected overview_data from config, got %q", got)
	}
	if got := pageDataPath(styles, ""); got != styles.Data {
		t.Errorf("Expected styles to keep its default %q, got %q", styles.Data, got)
	}
	if got := pageDataPath(overview, "flag.csv"); got != "flag.csv" {
		t.Errorf("Expected override to win, got %q", got)
	}
}
