package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ClusterProject is one inferred project grouping. Project ids are assigned
// in lexicographically sorted label order so repeated runs over the same
// input reproduce identical ids.
type ClusterProject struct {
	ProjectID     string            `json:"project_id"`
	ProjectLabel  string            `json:"project_label"`
	DocIDs        []string          `json:"doc_ids"`
	RoleBucketMap map[string]string `json:"role_bucket_map"`
	Confidence    float64           `json:"confidence"`
	Reasons       []string          `json:"reasons"`
}

// Validate rejects cluster records that are missing the fields the planner
// depends on. Records loaded from disk must pass this before use.
func (p ClusterProject) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ProjectID, validation.Required),
		validation.Field(&p.ProjectLabel, validation.Required),
		validation.Field(&p.DocIDs, validation.Required),
		validation.Field(&p.Confidence, validation.Min(0.0), validation.Max(1.0)),
	)
}

// ClusterResult wraps the full set of inferred projects for one run.
type ClusterResult struct {
	Projects []ClusterProject `json:"projects"`
}

// Validate validates every project in the result.
func (r ClusterResult) Validate() error {
	for _, project := range r.Projects {
		if err := project.Validate(); err != nil {
			return err
		}
	}
	return nil
}
