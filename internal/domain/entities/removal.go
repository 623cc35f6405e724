package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemovalStatus represents the lifecycle of a removal (remoção).
//
// Domain notes:
//   - The service is the source of truth for removal state.
//   - Status transitions are driven by role-gated operations (see permissions.go).
//   - "finalizada" is terminal only once ClosedAt is set; an individual removal also passes through an
//     open "finalizada" while it waits for cremation.

type RemovalStatus string

const (
	RemovalStatusSolicitada                 RemovalStatus = "solicitada"
	RemovalStatusAgendada                   RemovalStatus = "agendada"
	RemovalStatusEmAndamento                RemovalStatus = "em_andamento"
	RemovalStatusACaminho                   RemovalStatus = "a_caminho"
	RemovalStatusRemovido                   RemovalStatus = "removido"
	RemovalStatusConcluida                  RemovalStatus = "concluida"
	RemovalStatusAguardandoFinanceiroJunior RemovalStatus = "aguardando_financeiro_junior"
	RemovalStatusAguardandoBaixaMaster      RemovalStatus = "aguardando_baixa_master"
	RemovalStatusAguardandoBoleto           RemovalStatus = "aguardando_boleto"
	RemovalStatusPagamentoConcluido         RemovalStatus = "pagamento_concluido"
	RemovalStatusFinalizada                 RemovalStatus = "finalizada"
	RemovalStatusEmLoteCremacao             RemovalStatus = "em_lote_cremacao"
	RemovalStatusCremado                    RemovalStatus = "cremado"
	RemovalStatusProntoParaEntrega          RemovalStatus = "pronto_para_entrega"
	RemovalStatusAguardandoRetirada         RemovalStatus = "aguardando_retirada"
	RemovalStatusEntregaAgendada            RemovalStatus = "entrega_agendada"
	RemovalStatusCancelada                  RemovalStatus = "cancelada"
)

// IsValid checks if the status is a known RemovalStatus.
func (s RemovalStatus) IsValid() bool {
	switch s {
	case RemovalStatusSolicitada, RemovalStatusAgendada, RemovalStatusEmAndamento, RemovalStatusACaminho,
		RemovalStatusRemovido, RemovalStatusConcluida, RemovalStatusAguardandoFinanceiroJunior,
		RemovalStatusAguardandoBaixaMaster, RemovalStatusAguardandoBoleto, RemovalStatusPagamentoConcluido,
		RemovalStatusFinalizada, RemovalStatusEmLoteCremacao, RemovalStatusCremado,
		RemovalStatusProntoParaEntrega, RemovalStatusAguardandoRetirada, RemovalStatusEntregaAgendada,
		RemovalStatusCancelada:
		return true
	}
	return false
}

type Modality string

const (
	ModalityColetivo        Modality = "coletivo"
	ModalityIndividualPrata Modality = "individual_prata"
	ModalityIndividualOuro  Modality = "individual_ouro"
)

// AllModalities lists the service tiers in display order.
func AllModalities() []Modality {
	return []Modality{ModalityColetivo, ModalityIndividualPrata, ModalityIndividualOuro}
}

func (m Modality) IsValid() bool {
	switch m {
	case ModalityColetivo, ModalityIndividualPrata, ModalityIndividualOuro:
		return true
	}
	return false
}

// IsIndividual reports whether the ashes are returned to the tutor.
func (m Modality) IsIndividual() bool {
	return m == ModalityIndividualPrata || m == ModalityIndividualOuro
}

const PaymentMethodFaturado = "faturado"

type Pet struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
	// Weight is the bracket label declared by the tutor (e.g. "0-5kg").
	Weight string `json:"weight"`
}

type Address struct {
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code,omitempty"`
}

// Additional is a fixed-catalog item chosen at intake.
type Additional struct {
	Type     string          `json:"type"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// CustomAdditional is an ad hoc item priced by financial staff. Value is the line total.
type CustomAdditional struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
	ProofURL  string          `json:"proof_url,omitempty"`
	FromStock bool            `json:"from_stock,omitempty"`
}

type BagItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type BagAssembly struct {
	Items    []BagItem `json:"items"`
	Urn      string    `json:"urn,omitempty"`
	PawPrint string    `json:"paw_print,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// HistoryEntry is one append-only audit line of a removal.
type HistoryEntry struct {
	Date     time.Time `json:"date"`
	Action   string    `json:"action"`
	User     string    `json:"user"`
	Reason   string    `json:"reason,omitempty"`
	ProofURL string    `json:"proof_url,omitempty"`
}

// Removal is one pet cremation case.
//
// Storage model (DynamoDB):
//   - removals table, PK: id, GSIs: code-index, status-index
//   - removal_history table, PK: removal_id, SK: seq
type Removal struct {
	ID       string        `json:"id"`
	Code     string        `json:"code"`
	Status   RemovalStatus `json:"status"`
	Modality Modality      `json:"modality,omitempty"`

	Pet     Pet     `json:"pet"`
	Address Address `json:"address"`

	Value               decimal.Decimal    `json:"value"`
	PaymentMethod       string             `json:"payment_method"`
	Additionals         []Additional       `json:"additionals,omitempty"`
	CustomAdditionals   []CustomAdditional `json:"custom_additionals,omitempty"`
	AdjustmentConfirmed bool               `json:"adjustment_confirmed"`

	RealWeight             decimal.Decimal `json:"real_weight"`
	AssignedDriverID       string          `json:"assigned_driver_id,omitempty"`
	AssignedDriverName     string          `json:"assigned_driver_name,omitempty"`
	IsPriority             bool            `json:"is_priority"`
	PriorityDeadline       string          `json:"priority_deadline,omitempty"`
	CremationCompany       string          `json:"cremation_company,omitempty"`
	CremationDate          *time.Time      `json:"cremation_date,omitempty"`
	BagAssembly            *BagAssembly    `json:"bag_assembly_details,omitempty"`
	PetCondition           string          `json:"pet_condition,omitempty"`
	FarewellSchedulingInfo string          `json:"farewell_scheduling_info,omitempty"`
	ScheduledDate          string          `json:"scheduled_date,omitempty"`
	ScheduledTime          string          `json:"scheduled_time,omitempty"`
	ScheduledDeliveryDate  string          `json:"scheduled_delivery_date,omitempty"`
	DeliveryAddress        string          `json:"delivery_address,omitempty"`
	CancellationReason     string          `json:"cancellation_reason,omitempty"`
	BatchID                string          `json:"batch_id,omitempty"`

	CreatedByID                string `json:"created_by_id"`
	CreatedByName              string `json:"created_by_name,omitempty"`
	AssignedFinanceiroJuniorID string `json:"assigned_financeiro_junior_id,omitempty"`
	AssignedFinanceiroMasterID string `json:"assigned_financeiro_master_id,omitempty"`

	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	History []HistoryEntry `json:"history"`
}

// IsTerminal reports whether no further status-changing operation is allowed.
func (r Removal) IsTerminal() bool {
	switch r.Status {
	case RemovalStatusCancelada:
		return true
	case RemovalStatusFinalizada:
		return r.ClosedAt != nil
	}
	return false
}

// IsFaturado reports whether the removal is billed to a clinic account.
func (r Removal) IsFaturado() bool {
	return r.PaymentMethod == PaymentMethodFaturado
}

// AllAdditionalNames lists fixed and custom additional names, in that order.
func (r Removal) AllAdditionalNames() []string {
	names := make([]string, 0, len(r.Additionals)+len(r.CustomAdditionals))
	for _, a := range r.Additionals {
		names = append(names, a.Type)
	}
	for _, c := range r.CustomAdditionals {
		names = append(names, c.Name)
	}
	return names
}

// Clone returns a copy that shares no slices or pointers with r.
func (r Removal) Clone() Removal {
	out := r
	out.Additionals = append([]Additional(nil), r.Additionals...)
	out.CustomAdditionals = append([]CustomAdditional(nil), r.CustomAdditionals...)
	out.History = append([]HistoryEntry(nil), r.History...)
	if r.BagAssembly != nil {
		bag := *r.BagAssembly
		bag.Items = append([]BagItem(nil), r.BagAssembly.Items...)
		out.BagAssembly = &bag
	}
	if r.CremationDate != nil {
		d := *r.CremationDate
		out.CremationDate = &d
	}
	if r.ClosedAt != nil {
		d := *r.ClosedAt
		out.ClosedAt = &d
	}
	return out
}
