package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Status records what the executor actually did with one plan entry.
type Status string

const (
	// StatusMoved means the source file was relocated to the target path.
	StatusMoved Status = "moved"
	// StatusCopied means the source file was duplicated at the target path.
	StatusCopied Status = "copied"
	// StatusMissing means the source no longer existed at execution time;
	// no filesystem mutation was performed.
	StatusMissing Status = "missing"
)

// JournalEntry is one executed (or attempted) relocation. The journal is
// append-only and is the sole durable record of what physically happened;
// rollback and reporting read it, nothing ever rewrites it.
type JournalEntry struct {
	OriginalPath string  `json:"original_path"`
	TargetPath   string  `json:"target_path"`
	DocID        string  `json:"doc_id"`
	Digest       string  `json:"digest"`
	ProjectID    string  `json:"project_id"`
	ProjectLabel string  `json:"project_label"`
	Bucket       string  `json:"bucket"`
	HashSuffix   string  `json:"hash_suffix"`
	Status       Status  `json:"status"`
	Timestamp    float64 `json:"timestamp"` // Unix seconds
}

// Validate rejects journal records missing the fields rollback depends on.
func (e JournalEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.OriginalPath, validation.Required),
		validation.Field(&e.TargetPath, validation.Required),
		validation.Field(&e.Status, validation.Required,
			validation.In(StatusMoved, StatusCopied, StatusMissing)),
	)
}
