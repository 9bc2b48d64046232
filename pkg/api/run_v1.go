package api

// RunRequestV1 is the web front-end request schema: inline CSV data plus
// optional overrides applied on top of the server's base configuration.
type RunRequestV1 struct {
	CSVData string `json:"csv_data"`

	Target     string `json:"target,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
	Workers    int    `json:"workers,omitempty"`
	ChunkSize  int    `json:"chunk_size,omitempty"`
	Iterations int    `json:"pbkdf2_iterations,omitempty"`
	SaltLength int    `json:"pbkdf2_salt_length,omitempty"`
}

// RunStatsV1 summarizes a finished run for the web front-end.
type RunStatsV1 struct {
	TotalItems     int     `json:"total_items"`
	MatchesFound   int     `json:"matches_found"`
	SkippedRecords int     `json:"skipped_records"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	ItemsPerSecond float64 `json:"items_per_second"`
}

// RunResponseV1 is the web front-end response schema.
type RunResponseV1 struct {
	Success      bool       `json:"success"`
	JobID        string     `json:"job_id"`
	MatchesFound int        `json:"matches_found"`
	Results      []MatchV1  `json:"results"`
	Stats        RunStatsV1 `json:"stats"`
	Error        string     `json:"error,omitempty"`
}
