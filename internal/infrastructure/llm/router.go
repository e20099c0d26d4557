package llm

import (
	"log"

	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
)

// TaskType is a re-export of the domain task type for convenience.
type TaskType = repository.TaskType

const (
	TaskFilterExtraction = repository.TaskFilterExtraction
)

// Router determines the appropriate LLMClient based on the task's cognitive
// requirements. Filter extraction defaults to the cloud backend; when no
// cloud client is configured every task lands on the local one.
type Router struct {
	localClient repository.LLMClient
	cloudClient repository.LLMClient
}

// NewRouter initializes the LLM router with the specified backend clients.
func NewRouter(local repository.LLMClient, cloud repository.LLMClient) *Router {
	return &Router{
		localClient: local,
		cloudClient: cloud,
	}
}

// RouteLLMTask evaluates the task and routes it to the optimal backend.
func (r *Router) RouteLLMTask(task repository.TaskType) repository.LLMClient {
	var selected repository.LLMClient
	var icon string

	switch task {
	case TaskFilterExtraction:
		selected = r.cloudClient
		icon = "☁️"
	default:
		selected = r.localClient
		icon = "🏠"
	}

	if selected == nil {
		selected = r.localClient
		icon = "🏠"
	}

	log.Printf("[Router] 🛤️  Routing task '%s' to %s %s", task, icon, selected.Name())
	return selected
}
