package reminder

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskReminderSweep = "reminder.sweep"

// SweepPayload is intentionally empty. A sweep always covers the full
// backlog, and a constant payload lets asynq's uniqueness option collapse
// overlapping enqueues into one task.
type SweepPayload struct{}

func NewSweepTask(payload SweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReminderSweep, data), nil
}

func ParseSweepPayload(task *asynq.Task) (SweepPayload, error) {
	var payload SweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SweepPayload{}, err
	}
	return payload, nil
}
