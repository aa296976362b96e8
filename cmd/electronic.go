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

var electronicCmd = newPageCmd("electronic", "Prints statistics for 90s electronic releases")

func init() {
	electronicCmd.Long = `Breaks the 90s electronic dataset down by label, country, style and format,
then looks at --format releases in detail: yearly averages of have, want and
median price, histograms of each metric, their correlation matrix and the
cheapest and most expensive record.`
	rootCmd.AddCommand(electronicCmd)
}
