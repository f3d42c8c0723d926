package agent

import (
	"time"

	"github.com/google/uuid"

	"github.com/telex-agents/fittip/a2a/schema"
)

// ArtifactName labels the artifact duplicating the agent's reply text.
const ArtifactName = "response"

// assemble wraps reply text into the strict outbound task envelope. All
// identifiers are freshly generated; nothing is derived from the inbound
// message (the RPC id echo happens at the transport).
func (d *Dispatcher) assemble(inbound schema.Message, text string) *schema.Task {
	taskID := uuid.NewString()

	reply := schema.Message{
		Kind:      "message",
		MessageID: uuid.NewString(),
		Role:      "agent",
		Parts:     []schema.Part{schema.NewTextPart(text)},
		TaskID:    taskID,
	}

	return &schema.Task{
		ID:        taskID,
		ContextID: uuid.NewString(),
		Status: schema.TaskStatus{
			State:     schema.TaskStateCompleted,
			Timestamp: time.Now().UTC(),
			Message:   &reply,
		},
		Artifacts: []schema.Artifact{{
			ArtifactID: uuid.NewString(),
			Name:       ArtifactName,
			Parts:      []schema.Part{schema.NewTextPart(text)},
		}},
		History: []schema.Message{inbound, reply},
		Kind:    "task",
	}
}
