package entities

type Role string

const (
	RoleReceptor         Role = "receptor"
	RoleMotorista        Role = "motorista"
	RoleOperacional      Role = "operacional"
	RoleFinanceiroJunior Role = "financeiro_junior"
	RoleFinanceiroMaster Role = "financeiro_master"
	RoleAdmin            Role = "admin"
	RoleCliente          Role = "cliente"
	// RoleSystem authors autonomous transitions (scheduling sweep).
	RoleSystem Role = "sistema"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleReceptor, RoleMotorista, RoleOperacional, RoleFinanceiroJunior, RoleFinanceiroMaster,
		RoleAdmin, RoleCliente, RoleSystem:
		return true
	}
	return false
}

// Actor is whoever triggers an operation.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// SystemActor is the author of sweep-driven history entries.
var SystemActor = Actor{ID: "system", Name: "Sistema", Role: RoleSystem}

// DisplayName is the name written in history entries.
func (a Actor) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.ID != "" {
		return a.ID
	}
	return string(a.Role)
}
