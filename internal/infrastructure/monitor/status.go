package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Blob       bool      `json:"blob"`
	BlobCount  int       `json:"blob_count"`
	LastCheck  time.Time `json:"last_check"`
}
