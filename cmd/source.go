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
	"path/filepath"
	"strings"

	"github.com/ademuri/discogs-eda/internal/release"
	"github.com/ademuri/discogs-eda/internal/store"
)

// releaseCache is shared by every page rendered in one process, so an email
// with several pages reads each file once.
var releaseCache = release.NewCache()

// loadReleases reads the releases behind dataPath. With a database they come
// from the dataset imported from that file, otherwise from the file itself.
func loadReleases(ctx context.Context, dbPath string, dataPath string) ([]release.Release, error) {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	if dbPath != "" {
		s, err := store.New(dbPath)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		name := datasetName(dataPath)
		releases, err := s.Releases(name)
		if err != nil {
			return nil, fmt.Errorf("loading dataset %q from %s: %w", name, dbPath, err)
		}
		p.done(fmt.Sprintf("Loaded %d releases from dataset %q", len(releases), name))
		return releases, nil
	}

	releases, hit, err := releaseCache.Load(dataPath)
	if err != nil {
		return nil, err
	}
	if hit {
		logger.Debug("Release cache hit", "path", dataPath)
	}
	p.done(fmt.Sprintf("Loaded %d releases from %s", len(releases), dataPath))
	return releases, nil
}

// datasetName is the name a file is imported under: its base name without
// extension.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
