package navigation

import "github.com/BearBump/ScanBox/internal/models"

type TargetType string

const (
	TargetDetail   TargetType = "detail"
	TargetCreate   TargetType = "create"
	TargetWorkflow TargetType = "workflow"
	TargetAdvisory TargetType = "advisory"
)

type AdvisoryState string

const (
	AdvisoryUnknown  AdvisoryState = "unknown"
	AdvisoryDisabled AdvisoryState = "disabled"
	AdvisoryError    AdvisoryState = "error"
)

// Target — навигационное намерение для presentation-слоя.
// Заполненные поля зависят от Type.
type Target struct {
	Type TargetType `json:"type"`

	Kind     models.Kind    `json:"kind,omitempty"`
	EntityID uint64         `json:"entityId,omitempty"`
	Workflow string         `json:"workflow,omitempty"`
	Prefill  map[string]any `json:"prefill,omitempty"`

	State   AdvisoryState `json:"state,omitempty"`
	Message string        `json:"message,omitempty"`

	// Unknown-tag advisory: raw UID plus whether the caller may register it.
	UID         string `json:"uid,omitempty"`
	CanRegister bool   `json:"canRegister,omitempty"`
}

func DetailView(kind models.Kind, id uint64) Target {
	return Target{Type: TargetDetail, Kind: kind, EntityID: id}
}

func CreationForm(kind models.Kind, prefill map[string]any) Target {
	return Target{Type: TargetCreate, Kind: kind, Prefill: prefill}
}

func WorkflowView(workflow string) Target {
	return Target{Type: TargetWorkflow, Workflow: workflow}
}

func Advisory(state AdvisoryState, message string) Target {
	return Target{Type: TargetAdvisory, State: state, Message: message}
}
