package request

import (
	"errors"
	"strings"
	"time"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidModality    = errors.New("invalid modality")
	ErrInvalidAdditionals = errors.New("additional quantity and value must not be negative")
)

type PetRequest struct {
	Name    string `json:"name" binding:"required"`
	Species string `json:"species" binding:"required"`
	Breed   string `json:"breed"`
	Weight  string `json:"weight" binding:"required"`
}

type AddressRequest struct {
	Street   string `json:"street"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	ZipCode  string `json:"zip_code"`
}

type AdditionalRequest struct {
	Type     string          `json:"type" binding:"required"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// CreateRemovalRequest is the intake payload. Leaving value out prices the removal from the table.
type CreateRemovalRequest struct {
	Code                   string              `json:"code"`
	Pet                    PetRequest          `json:"pet"`
	Address                AddressRequest      `json:"address"`
	Modality               string              `json:"modality"`
	PaymentMethod          string              `json:"payment_method" binding:"required"`
	Additionals            []AdditionalRequest `json:"additionals"`
	Value                  *decimal.Decimal    `json:"value"`
	ScheduledDate          string              `json:"scheduled_date"`
	ScheduledTime          string              `json:"scheduled_time"`
	FarewellSchedulingInfo string              `json:"farewell_scheduling_info"`
}

func (r CreateRemovalRequest) ToCommand() (usecase.CreateRemovalCommand, error) {
	modality := entities.Modality(strings.TrimSpace(r.Modality))
	if modality != "" && !modality.IsValid() {
		return usecase.CreateRemovalCommand{}, ErrInvalidModality
	}
	additionals := make([]entities.Additional, 0, len(r.Additionals))
	for _, a := range r.Additionals {
		if a.Quantity < 0 || a.Value.IsNegative() {
			return usecase.CreateRemovalCommand{}, ErrInvalidAdditionals
		}
		additionals = append(additionals, entities.Additional{Type: strings.TrimSpace(a.Type), Quantity: a.Quantity, Value: a.Value})
	}
	return usecase.CreateRemovalCommand{
		Code: strings.TrimSpace(r.Code),
		Pet: entities.Pet{
			Name:    strings.TrimSpace(r.Pet.Name),
			Species: strings.TrimSpace(r.Pet.Species),
			Breed:   strings.TrimSpace(r.Pet.Breed),
			Weight:  strings.TrimSpace(r.Pet.Weight),
		},
		Address: entities.Address{
			Street:   r.Address.Street,
			Number:   r.Address.Number,
			District: r.Address.District,
			City:     strings.TrimSpace(r.Address.City),
			State:    strings.TrimSpace(r.Address.State),
			ZipCode:  r.Address.ZipCode,
		},
		Modality:               modality,
		PaymentMethod:          strings.TrimSpace(r.PaymentMethod),
		Additionals:            additionals,
		Value:                  r.Value,
		ScheduledDate:          strings.TrimSpace(r.ScheduledDate),
		ScheduledTime:          strings.TrimSpace(r.ScheduledTime),
		FarewellSchedulingInfo: r.FarewellSchedulingInfo,
	}, nil
}

// VersionRequest carries the version the client last read. Zero skips the staleness check.
type VersionRequest struct {
	Version int `json:"version"`
}

type AssignCodeRequest struct {
	VersionRequest
	Code string `json:"code" binding:"required"`
}

type DirectToDriverRequest struct {
	VersionRequest
	DriverID         string `json:"driver_id"`
	DriverName       string `json:"driver_name"`
	DriverPhone      string `json:"driver_phone"`
	IsPriority       bool   `json:"is_priority"`
	PriorityDeadline string `json:"priority_deadline"`
}

func (r DirectToDriverRequest) ToCommand() usecase.DirectToDriverCommand {
	return usecase.DirectToDriverCommand{
		DriverID:         strings.TrimSpace(r.DriverID),
		DriverName:       strings.TrimSpace(r.DriverName),
		DriverPhone:      strings.TrimSpace(r.DriverPhone),
		IsPriority:       r.IsPriority,
		PriorityDeadline: strings.TrimSpace(r.PriorityDeadline),
	}
}

type CancelRequest struct {
	VersionRequest
	Reason string `json:"reason"`
}

type ConfirmPickupRequest struct {
	VersionRequest
	PetCondition string `json:"pet_condition"`
}

type FinalizePickupRequest struct {
	VersionRequest
	RealWeight   decimal.Decimal `json:"real_weight"`
	PetCondition string          `json:"pet_condition"`
	Confirmed    bool            `json:"confirmed"`
}

func (r FinalizePickupRequest) ToCommand() usecase.FinalizePickupCommand {
	return usecase.FinalizePickupCommand{RealWeight: r.RealWeight, PetCondition: r.PetCondition, Confirmed: r.Confirmed}
}

type CremationCompanyRequest struct {
	VersionRequest
	Company string `json:"company"`
}

type CustomAdditionalRequest struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
	ProofURL  string          `json:"proof_url"`
	FromStock bool            `json:"from_stock"`
}

type CustomAdditionalsRequest struct {
	VersionRequest
	Items []CustomAdditionalRequest `json:"items"`
}

func (r CustomAdditionalsRequest) ToInputs() []usecase.CustomAdditionalInput {
	out := make([]usecase.CustomAdditionalInput, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, usecase.CustomAdditionalInput{
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			Value:     it.Value,
			ProofURL:  it.ProofURL,
			FromStock: it.FromStock,
		})
	}
	return out
}

type ChangeModalityRequest struct {
	VersionRequest
	Modality string `json:"modality" binding:"required"`
}

type DevolutionRequest struct {
	VersionRequest
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason"`
	ProofURL string          `json:"proof_url"`
}

func (r DevolutionRequest) ToCommand() usecase.DevolutionCommand {
	return usecase.DevolutionCommand{Amount: r.Amount, Reason: strings.TrimSpace(r.Reason), ProofURL: strings.TrimSpace(r.ProofURL)}
}

type FinalizeForMasterRequest struct {
	VersionRequest
	ApplyWeightDivergence bool `json:"apply_weight_divergence"`
}

// ReleaseForCremationRequest carries the operator's per-additional confirmation, keyed by name.
type ReleaseForCremationRequest struct {
	VersionRequest
	Confirmations map[string]bool `json:"confirmations"`
}

type MarkCrematedRequest struct {
	VersionRequest
	CremationDate *time.Time `json:"cremation_date"`
}

type BagItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type AssembleBagRequest struct {
	VersionRequest
	Items    []BagItemRequest `json:"items"`
	Urn      string           `json:"urn"`
	PawPrint string           `json:"paw_print"`
	Notes    string           `json:"notes"`
}

func (r AssembleBagRequest) ToBag() entities.BagAssembly {
	bag := entities.BagAssembly{
		Urn:      strings.TrimSpace(r.Urn),
		PawPrint: strings.TrimSpace(r.PawPrint),
		Notes:    r.Notes,
	}
	for _, it := range r.Items {
		bag.Items = append(bag.Items, entities.BagItem{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity})
	}
	return bag
}

type SchedulePickupRequest struct {
	VersionRequest
	Date string `json:"scheduled_date" binding:"required"`
	Time string `json:"scheduled_time" binding:"required"`
}

func (r SchedulePickupRequest) ToCommand() usecase.SchedulePickupCommand {
	return usecase.SchedulePickupCommand{Date: strings.TrimSpace(r.Date), Time: strings.TrimSpace(r.Time)}
}

type ScheduleDeliveryRequest struct {
	VersionRequest
	Date    string `json:"date" binding:"required"`
	Address string `json:"address"`
}

func (r ScheduleDeliveryRequest) ToCommand() usecase.ScheduleDeliveryCommand {
	return usecase.ScheduleDeliveryCommand{Date: strings.TrimSpace(r.Date), Address: strings.TrimSpace(r.Address)}
}
