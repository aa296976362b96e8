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

// overviewCmd prints genre, format and country rankings for the whole catalogue
var overviewCmd = newPageCmd("overview", "Prints general insights into the Discogs catalogue")

func init() {
	overviewCmd.Long = `Prints the top genres, formats and countries of the catalogue, releases per
genre over the years, labels per genre and year, and how many distinct styles
of --genre appear each year.`
	rootCmd.AddCommand(overviewCmd)
}
