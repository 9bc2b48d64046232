// pkg/api/report_v1.go
package api

// MatchV1 is the stable JSON schema for a single discovered match.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type MatchV1 struct {
	WorkerID  int    `json:"worker_id"`
	Original  string `json:"original"`
	Hash      string `json:"hash"`
	Algorithm string `json:"algorithm"`
}

// ReportV1 is the stable schema of the persisted results artifact.
type ReportV1 struct {
	TotalMatches int       `json:"total_matches"`
	Matches      []MatchV1 `json:"matches"`
}
