// Package collector materializes the final report. It runs strictly after
// the pool has terminated: a single reader draining the result store into a
// deterministic, persisted artifact.
package collector

import (
	"sort"

	"hashcrack/internal/jsonutil"
	"hashcrack/internal/logging"
	"hashcrack/internal/store"
	"hashcrack/pkg/api"
)

// Collect drains s into the stable report schema, ordered by worker id and
// then original candidate text so identical runs produce identical output.
// Matches is never nil: an empty store yields an empty array, not null.
func Collect(s *store.Store) api.ReportV1 {
	snap := s.Snapshot()
	matches := make([]api.MatchV1, 0, len(snap))
	for _, m := range snap {
		matches = append(matches, api.MatchV1{
			WorkerID:  m.WorkerID,
			Original:  m.Original,
			Hash:      m.Hash,
			Algorithm: m.Algorithm,
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].WorkerID != matches[j].WorkerID {
			return matches[i].WorkerID < matches[j].WorkerID
		}
		return matches[i].Original < matches[j].Original
	})
	return api.ReportV1{
		TotalMatches: len(matches),
		Matches:      matches,
	}
}

// Run collects and persists the report to path. A persistence failure is
// logged and returned, but it is a distinct outcome from processing
// success: the report itself is always valid and returned.
func Run(s *store.Store, path string, log *logging.Logger) (api.ReportV1, error) {
	report := Collect(s)
	if err := jsonutil.WriteFilePretty(path, report); err != nil {
		log.Errorf("error saving results to %s: %v", path, err)
		return report, err
	}
	log.Infof("saved %d results to %s", report.TotalMatches, path)
	return report, nil
}
