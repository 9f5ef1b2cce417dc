package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OrganizePlan is one proposed relocation. Plans are advisory: only the
// journal records what physically happened.
type OrganizePlan struct {
	DocID        string `json:"doc_id"`
	ProjectID    string `json:"project_id"`
	ProjectLabel string `json:"project_label"`
	Bucket       string `json:"bucket"`
	SourcePath   string `json:"source_path"`
	TargetPath   string `json:"target_path"`
	Digest       string `json:"digest"`
	HashSuffix   string `json:"hash_suffix"` // First 7 hex chars of the digest
}

// Validate rejects plan records that could not be executed safely.
func (p OrganizePlan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.ProjectID, validation.Required),
		validation.Field(&p.Bucket, validation.Required),
		validation.Field(&p.SourcePath, validation.Required),
		validation.Field(&p.TargetPath, validation.Required),
	)
}
