package schema

import "time"

// TaskState represents the lifecycle state of a task.
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
)

// TaskStatus holds the current state of a task and the agent message that
// produced it.
type TaskStatus struct {
	State TaskState `json:"state"`
	// UTC, ISO-8601.
	Timestamp time.Time `json:"timestamp"`
	Message   *Message  `json:"message,omitempty"`
}

// Artifact duplicates agent output under a named artifact for platform
// compatibility.
type Artifact struct {
	ArtifactID string `json:"artifactId"`
	Name       string `json:"name"`
	Parts      []Part `json:"parts"`
}

// Task is the outbound result envelope of a message/send call.
type Task struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts"`
	History   []Message  `json:"history"`
	// Object kind, always "task".
	Kind string `json:"kind"`
}
