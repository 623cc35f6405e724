package entities

// Operation names one role-gated action of the removal lifecycle.
type Operation string

const (
	OpAssignCode            Operation = "assign_code"
	OpDirectToDriver        Operation = "direct_to_driver"
	OpSchedulePickup        Operation = "schedule_pickup"
	OpCancel                Operation = "cancel"
	OpStartRoute            Operation = "start_route"
	OpConfirmPickup         Operation = "confirm_pickup"
	OpFinalizePickup        Operation = "finalize_pickup"
	OpSendToFinance         Operation = "send_to_finance"
	OpSetCremationCompany   Operation = "set_cremation_company"
	OpApplyWeightAdjustment Operation = "apply_weight_adjustment"
	OpAddCustomAdditionals  Operation = "add_custom_additionals"
	OpChangeModality        Operation = "change_modality"
	OpRegisterDevolution    Operation = "register_devolution"
	OpFinalizeForMaster     Operation = "finalize_for_master"
	OpReleaseForCremation   Operation = "release_for_cremation"
	OpMarkCremated          Operation = "mark_cremated"
	OpAssembleBag           Operation = "assemble_bag"
	OpScheduleDelivery      Operation = "schedule_delivery"
	OpAwaitPickup           Operation = "await_pickup"
	OpConfirmDelivery       Operation = "confirm_delivery"
	OpIssueBoleto           Operation = "issue_boleto"
	OpConfirmPayment        Operation = "confirm_payment"
	OpCloseLote             Operation = "close_lote"
	OpAddToBatch            Operation = "add_to_cremation_batch"
	OpFinishBatch           Operation = "finish_cremation_batch"
	OpPromoteScheduled      Operation = "promote_scheduled"
)

// TransitionRule is one row of the (role, status) -> operation table.
type TransitionRule struct {
	Operation Operation
	Roles     []Role
	// From lists the statuses the operation is legal in. Empty means any non-terminal status.
	From []RemovalStatus
	// To is the resulting status. Empty keeps the current status.
	To RemovalStatus
}

func (t TransitionRule) AllowsRole(role Role) bool {
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (t TransitionRule) AllowsStatus(status RemovalStatus) bool {
	if len(t.From) == 0 {
		return true
	}
	for _, s := range t.From {
		if s == status {
			return true
		}
	}
	return false
}

var preCremationStatuses = []RemovalStatus{
	RemovalStatusSolicitada, RemovalStatusAgendada, RemovalStatusEmAndamento, RemovalStatusACaminho,
	RemovalStatusRemovido, RemovalStatusConcluida, RemovalStatusAguardandoFinanceiroJunior,
	RemovalStatusAguardandoBaixaMaster, RemovalStatusAguardandoBoleto, RemovalStatusPagamentoConcluido,
	RemovalStatusFinalizada,
}

var transitionTable = []TransitionRule{
	{OpAssignCode, []Role{RoleReceptor, RoleAdmin}, nil, ""},
	{OpDirectToDriver, []Role{RoleReceptor, RoleAdmin}, []RemovalStatus{RemovalStatusSolicitada}, RemovalStatusEmAndamento},
	{OpSchedulePickup, []Role{RoleReceptor, RoleAdmin}, []RemovalStatus{RemovalStatusSolicitada}, RemovalStatusAgendada},
	{OpCancel, []Role{RoleReceptor, RoleAdmin, RoleCliente, RoleFinanceiroMaster}, []RemovalStatus{RemovalStatusSolicitada, RemovalStatusEmAndamento}, RemovalStatusCancelada},
	{OpStartRoute, []Role{RoleMotorista}, []RemovalStatus{RemovalStatusEmAndamento}, RemovalStatusACaminho},
	{OpConfirmPickup, []Role{RoleMotorista}, []RemovalStatus{RemovalStatusACaminho}, RemovalStatusRemovido},
	{OpFinalizePickup, []Role{RoleMotorista}, []RemovalStatus{RemovalStatusRemovido}, RemovalStatusConcluida},
	{OpSendToFinance, []Role{RoleOperacional, RoleAdmin}, []RemovalStatus{RemovalStatusConcluida}, RemovalStatusAguardandoFinanceiroJunior},
	{OpSetCremationCompany, []Role{RoleOperacional, RoleFinanceiroJunior, RoleAdmin}, preCremationStatuses, ""},
	{OpApplyWeightAdjustment, []Role{RoleFinanceiroJunior}, []RemovalStatus{RemovalStatusAguardandoFinanceiroJunior}, ""},
	{OpAddCustomAdditionals, []Role{RoleFinanceiroJunior}, []RemovalStatus{RemovalStatusAguardandoFinanceiroJunior}, ""},
	{OpChangeModality, []Role{RoleFinanceiroJunior}, []RemovalStatus{RemovalStatusAguardandoFinanceiroJunior}, ""},
	{OpRegisterDevolution, []Role{RoleFinanceiroJunior, RoleFinanceiroMaster}, []RemovalStatus{RemovalStatusAguardandoFinanceiroJunior, RemovalStatusAguardandoBaixaMaster}, ""},
	{OpFinalizeForMaster, []Role{RoleFinanceiroJunior}, []RemovalStatus{RemovalStatusAguardandoFinanceiroJunior}, RemovalStatusAguardandoBaixaMaster},
	{OpReleaseForCremation, []Role{RoleOperacional, RoleFinanceiroMaster, RoleAdmin}, []RemovalStatus{RemovalStatusAguardandoBaixaMaster}, RemovalStatusFinalizada},
	{OpMarkCremated, []Role{RoleOperacional}, []RemovalStatus{RemovalStatusFinalizada}, RemovalStatusCremado},
	{OpAssembleBag, []Role{RoleOperacional, RoleReceptor, RoleAdmin}, []RemovalStatus{RemovalStatusCremado}, RemovalStatusProntoParaEntrega},
	{OpScheduleDelivery, []Role{RoleReceptor, RoleAdmin}, []RemovalStatus{RemovalStatusProntoParaEntrega}, RemovalStatusEntregaAgendada},
	{OpAwaitPickup, []Role{RoleReceptor, RoleAdmin}, []RemovalStatus{RemovalStatusProntoParaEntrega}, RemovalStatusAguardandoRetirada},
	{OpConfirmDelivery, []Role{RoleReceptor, RoleMotorista, RoleAdmin}, []RemovalStatus{RemovalStatusEntregaAgendada, RemovalStatusAguardandoRetirada}, RemovalStatusFinalizada},
	{OpIssueBoleto, []Role{RoleFinanceiroMaster}, []RemovalStatus{RemovalStatusAguardandoBaixaMaster}, RemovalStatusAguardandoBoleto},
	{OpConfirmPayment, []Role{RoleFinanceiroMaster}, []RemovalStatus{RemovalStatusAguardandoBoleto}, RemovalStatusPagamentoConcluido},
	{OpCloseLote, []Role{RoleFinanceiroMaster}, []RemovalStatus{RemovalStatusPagamentoConcluido}, RemovalStatusFinalizada},
	{OpAddToBatch, []Role{RoleOperacional, RoleAdmin}, []RemovalStatus{RemovalStatusFinalizada}, RemovalStatusEmLoteCremacao},
	{OpFinishBatch, []Role{RoleOperacional, RoleAdmin}, []RemovalStatus{RemovalStatusEmLoteCremacao}, RemovalStatusCremado},
	{OpPromoteScheduled, []Role{RoleSystem}, []RemovalStatus{RemovalStatusAgendada}, RemovalStatusSolicitada},
}

var rulesByOperation = func() map[Operation]TransitionRule {
	m := make(map[Operation]TransitionRule, len(transitionTable))
	for _, rule := range transitionTable {
		m[rule.Operation] = rule
	}
	return m
}()

// RuleFor returns the transition rule for op.
func RuleFor(op Operation) (TransitionRule, bool) {
	rule, ok := rulesByOperation[op]
	return rule, ok
}

// TransitionRules returns a copy of the full table.
func TransitionRules() []TransitionRule {
	return append([]TransitionRule(nil), transitionTable...)
}

// PermittedOperations answers "what can this role do on a removal in this state".
//
// Modality-specific gates (e.g. mark_cremated is individual only) are applied here so the
// answer matches what the engine would accept, except for field validations that depend on
// the command payload.
func PermittedOperations(role Role, r Removal) []Operation {
	if r.IsTerminal() {
		return nil
	}
	ops := make([]Operation, 0, 4)
	for _, rule := range transitionTable {
		if !rule.AllowsRole(role) || !rule.AllowsStatus(r.Status) {
			continue
		}
		if !modalityAllows(rule.Operation, r) {
			continue
		}
		ops = append(ops, rule.Operation)
	}
	return ops
}

func modalityAllows(op Operation, r Removal) bool {
	switch op {
	case OpMarkCremated, OpAddToBatch:
		return r.Modality.IsIndividual()
	case OpIssueBoleto:
		return r.IsFaturado()
	}
	return true
}
