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
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/discogs-eda/internal/dashboard"
)

const noData = "No data."

// chartDocument is a chart as written to YAML, JSON and HTML.
type chartDocument struct {
	Title   string     `json:"title" yaml:"title"`
	Kind    string     `json:"kind" yaml:"kind"`
	Header  []string   `json:"header,omitempty" yaml:"header,omitempty"`
	Rows    [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
	Summary string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Note    string     `json:"note,omitempty" yaml:"note,omitempty"`
	NoData  bool       `json:"no_data,omitempty" yaml:"no_data,omitempty"`
	Error   string     `json:"error,omitempty" yaml:"error,omitempty"`
}

type pageDocument struct {
	Name   string          `json:"name" yaml:"name"`
	Title  string          `json:"title" yaml:"title"`
	Charts []chartDocument `json:"charts" yaml:"charts"`
}

func newPageDocument(p dashboard.Page) pageDocument {
	doc := pageDocument{Name: p.Name, Title: p.Title}
	for _, c := range p.Charts {
		table := c.Table()
		cd := chartDocument{
			Title:   c.Title,
			Kind:    string(c.Kind),
			Header:  table.Header,
			Rows:    table.Rows,
			Summary: c.Summary(),
			Note:    c.Note,
		}
		switch {
		case c.Empty():
			cd.NoData = true
		case c.Err != nil:
			cd.Error = c.Err.Error()
		case len(table.Rows) == 0:
			cd.NoData = true
		}
		doc.Charts = append(doc.Charts, cd)
	}
	return doc
}

// renderPages writes pages to w in the given output format.
func renderPages(w io.Writer, pages []dashboard.Page, format string) error {
	docs := make([]pageDocument, len(pages))
	for i, p := range pages {
		docs[i] = newPageDocument(p)
	}

	switch format {
	case "table", "":
		for _, doc := range docs {
			if err := renderTables(w, doc); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encoding yaml: %w", err)
			}
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encoding json: %w", err)
			}
		}
		return nil
	case "html":
		return renderHTML(w, docs)
	}
	return fmt.Errorf("unknown output format %q, want table, yaml, json or html", format)
}

func renderTables(w io.Writer, doc pageDocument) error {
	fmt.Fprintf(w, "%s\n\n", doc.Title)
	for _, c := range doc.Charts {
		fmt.Fprintf(w, "%s\n", c.Title)
		switch {
		case c.Error != "":
			fmt.Fprintf(w, "Error: %s\n\n", c.Error)
			continue
		case c.NoData:
			fmt.Fprintf(w, "%s\n\n", noData)
			continue
		}

		out := new(bytes.Buffer)
		table := tablewriter.NewWriter(out)
		table.Header(c.Header)
		for _, row := range c.Rows {
			if err := table.Append(row); err != nil {
				return fmt.Errorf("rendering %q: %w", c.Title, err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering %q: %w", c.Title, err)
		}
		if c.Summary != "" {
			fmt.Fprintf(out, "%s\n", c.Summary)
		}
		if c.Note != "" {
			fmt.Fprintf(out, "Note: %s\n", c.Note)
		}
		fmt.Fprintln(out)
		if _, err := w.Write(out.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

var reportTemplate = template.Must(template.New("report").Parse(`
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
{{- range .}}
    <h1>{{.Title}}</h1>
{{- range .Charts}}
    <div>
      <h2>{{.Title}}</h2>
{{- if .Error}}
      <div>Error: {{.Error}}</div>
{{- else if .NoData}}
      <div>` + noData + `</div>
{{- else}}
      <table>
        <thead>
          <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
        </thead>
        <tbody>
{{- range .Rows}}
          <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
        </tbody>
      </table>
{{- end}}
{{- if .Summary}}
      <div>{{.Summary}}</div>
{{- end}}
{{- if .Note}}
      <div>Note: {{.Note}}</div>
{{- end}}
    </div>
{{- end}}
{{- end}}
  </body>
</html>
`))

func renderHTML(w io.Writer, docs []pageDocument) error {
	if err := reportTemplate.Execute(w, docs); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}
