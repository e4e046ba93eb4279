package models

// BehaviorDefinition names a scored attribute of exactly one subject.
type BehaviorDefinition struct {
	DefinitionID int    `json:"definition_id"`
	SubjectID    int    `json:"subject_id"`
	BehaviorName string `json:"behavior_name"`
	Description  string `json:"description"`
}

// DefinitionFilter narrows definition listings.
type DefinitionFilter struct {
	SubjectID int
}
