package task

import (
	"encoding/json"
	"fmt"
)

// Stream entry field names
const (
	FieldType = "task_type"
	FieldData = "task_data"
)

// Task is a message published to a navigator event stream
type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// DefaultTaskValue provides a common implementation for TaskValue
func DefaultTaskValue(task any) ([]byte, error) {
	return json.Marshal(task)
}

// Fields renders task as the values of one stream entry
func Fields(task Task) (map[string]any, error) {
	value, err := task.TaskValue()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize task %s: %w", task.TaskType(), err)
	}
	return map[string]any{
		FieldType: task.TaskType(),
		FieldData: string(value),
	}, nil
}

func UnmarshalTask[T Task](data []byte) (T, error) {
	var t T
	err := json.Unmarshal(data, &t)
	return t, err
}
