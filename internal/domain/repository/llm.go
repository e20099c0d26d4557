package repository

import (
	"context"
)

// LLMClient defines the interface for generating text from a prompt. The
// filter extractor depends on this seam only, so the cloud and local backends
// stay interchangeable.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// TaskType defines the type of LLM task.
type TaskType string

// TaskFilterExtraction turns a free-text book query into structured filters.
const TaskFilterExtraction TaskType = "filter_extraction"

// LLMRouter routes a task to the appropriate LLM backend.
type LLMRouter interface {
	RouteLLMTask(task TaskType) LLMClient
}
