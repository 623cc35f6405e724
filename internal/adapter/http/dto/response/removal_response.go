package response

import (
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase"
)

// RemovalResponse is a removal plus the flags the UI derives from its status.
type RemovalResponse struct {
	entities.Removal
	Terminal bool `json:"terminal"`
}

func FromRemoval(r entities.Removal) RemovalResponse {
	if r.History == nil {
		r.History = []entities.HistoryEntry{}
	}
	return RemovalResponse{Removal: r, Terminal: r.IsTerminal()}
}

func FromRemovals(rs []entities.Removal) []RemovalResponse {
	out := make([]RemovalResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRemoval(r))
	}
	return out
}

// TransitionResponse is returned by operations that may also report stock warnings.
type TransitionResponse struct {
	Removal  RemovalResponse        `json:"removal"`
	Warnings []usecase.StockWarning `json:"warnings"`
}

func FromTransition(r entities.Removal, warnings []usecase.StockWarning) TransitionResponse {
	if warnings == nil {
		warnings = []usecase.StockWarning{}
	}
	return TransitionResponse{Removal: FromRemoval(r), Warnings: warnings}
}

type ActionsResponse struct {
	RemovalID string   `json:"removal_id"`
	Actions   []string `json:"actions"`
}

func FromActions(id string, ops []entities.Operation) ActionsResponse {
	actions := make([]string, 0, len(ops))
	for _, op := range ops {
		actions = append(actions, string(op))
	}
	return ActionsResponse{RemovalID: id, Actions: actions}
}
