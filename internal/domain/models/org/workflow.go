package org

// WorkflowKind partitions unit workflows by purpose.
type WorkflowKind string

const (
	WorkflowArchive   WorkflowKind = "archive"
	WorkflowSignature WorkflowKind = "signature"
)

// WorkflowStep is one stage in a unit workflow. Steps run in Order;
// a signing step may require a countersignature on legally binding acts.
type WorkflowStep struct {
	Order             int    `json:"order" yaml:"order"`
	Name              string `json:"name" yaml:"name"`
	Role              string `json:"role" yaml:"role"`
	RequiresSignature bool   `json:"requires_signature" yaml:"requires_signature"`
}

// UnitWorkflow is a workflow definition scoped to an organization unit
// (archive ingestion or signature routing).
type UnitWorkflow struct {
	Key   string         `json:"key" yaml:"key"`
	Name  string         `json:"name" yaml:"name"`
	Kind  WorkflowKind   `json:"kind" yaml:"kind"`
	Steps []WorkflowStep `json:"steps" yaml:"steps"`
}
