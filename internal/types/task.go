//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Backend task states. Any other reported state (STARTED, RETRY, ...) means
// the task is still running.
const (
	TaskPending = "PENDING"
	TaskSuccess = "SUCCESS"
	TaskFailure = "FAILURE"
)

// TaskRef is returned by every endpoint that enqueues background work.
type TaskRef struct {
	TaskID string `json:"task_id"`
}

// TaskStatus is a snapshot of a background task.
type TaskStatus struct {
	TaskID string          `json:"task_id"`
	State  string          `json:"state"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *string         `json:"error,omitempty"`
}

// Terminal reports whether the task can no longer change state.
func (s TaskStatus) Terminal() bool {
	return s.State == TaskSuccess || s.State == TaskFailure
}

// RecomputeAllResponse carries the ids of the chained dev recompute tasks.
type RecomputeAllResponse struct {
	TaskIDs map[string]string `json:"task_ids"`
}

// FinalTaskID returns the id of the last task in the chain, whose completion
// implies completion of the whole chain. A nil response has none.
func (r *RecomputeAllResponse) FinalTaskID() string {
	if r == nil {
		return ""
	}
	return r.TaskIDs["compute_profile_recommendations"]
}
