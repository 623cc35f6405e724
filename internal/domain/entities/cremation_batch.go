package entities

import "time"

// MaxBatchItems is the furnace capacity of one cremation run.
const MaxBatchItems = 4

type FurnacePosition string

const (
	FurnacePositionFrenteEsquerda FurnacePosition = "frente_esquerda"
	FurnacePositionFrenteDireita  FurnacePosition = "frente_direita"
	FurnacePositionCentro         FurnacePosition = "centro"
	FurnacePositionFundoEsquerda  FurnacePosition = "fundo_esquerda"
	FurnacePositionFundoDireita   FurnacePosition = "fundo_direita"
)

func (p FurnacePosition) IsValid() bool {
	switch p {
	case FurnacePositionFrenteEsquerda, FurnacePositionFrenteDireita, FurnacePositionCentro,
		FurnacePositionFundoEsquerda, FurnacePositionFundoDireita:
		return true
	}
	return false
}

type BatchItem struct {
	RemovalCode string          `json:"removal_code"`
	PetName     string          `json:"pet_name"`
	Weight      string          `json:"weight"`
	Position    FurnacePosition `json:"position"`
}

// CremationBatch groups individual removals cremated together in one furnace run.
//
// Lifecycle: created (StartedAt nil) -> started -> finished.
type CremationBatch struct {
	ID           string      `json:"id"`
	Items        []BatchItem `json:"items"`
	OperatorName string      `json:"operator_name"`
	CreatedAt    time.Time   `json:"created_at"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	FinishedAt   *time.Time  `json:"finished_at,omitempty"`
}

func (b CremationBatch) IsStarted() bool {
	return b.StartedAt != nil
}

func (b CremationBatch) IsFinished() bool {
	return b.FinishedAt != nil
}

func (b CremationBatch) Codes() []string {
	codes := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		codes = append(codes, it.RemovalCode)
	}
	return codes
}
