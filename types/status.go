package types

import "fmt"

// LaptopStatus is the lifecycle state of a laptop.
type LaptopStatus string

const (
	LaptopPending     LaptopStatus = "pending"
	LaptopInQC        LaptopStatus = "dalam_qc"
	LaptopPassedQC    LaptopStatus = "lulus_qc"
	LaptopNeedsRepair LaptopStatus = "perlu_perbaikan"
	LaptopInRepair    LaptopStatus = "dalam_perbaikan"
)

// LaptopStatuses lists every laptop status in display order.
var LaptopStatuses = []LaptopStatus{LaptopPending, LaptopInQC, LaptopPassedQC, LaptopNeedsRepair, LaptopInRepair}

func (s LaptopStatus) Valid() bool {
	switch s {
	case LaptopPending, LaptopInQC, LaptopPassedQC, LaptopNeedsRepair, LaptopInRepair:
		return true
	}
	return false
}

// Label is the Indonesian caption used in reports.
func (s LaptopStatus) Label() string {
	switch s {
	case LaptopPending:
		return "Pending"
	case LaptopInQC:
		return "Dalam QC"
	case LaptopPassedQC:
		return "Lulus QC"
	case LaptopNeedsRepair:
		return "Perlu Perbaikan"
	case LaptopInRepair:
		return "Dalam Perbaikan"
	}
	return string(s)
}

func ParseLaptopStatus(raw string) (LaptopStatus, error) {
	s := LaptopStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status laptop tidak valid: %q", raw)
	}
	return s, nil
}

// SessionOutcome is the overall verdict of a QC session.
type SessionOutcome string

const (
	OutcomePending SessionOutcome = "pending"
	OutcomePass    SessionOutcome = "pass"
	OutcomeFail    SessionOutcome = "fail"
)

func (o SessionOutcome) Valid() bool {
	switch o {
	case OutcomePending, OutcomePass, OutcomeFail:
		return true
	}
	return false
}

func (o SessionOutcome) Terminal() bool {
	return o == OutcomePass || o == OutcomeFail
}

// LaptopStatus maps a submitted outcome onto the laptop lifecycle.
func (o SessionOutcome) LaptopStatus() LaptopStatus {
	switch o {
	case OutcomeFail:
		return LaptopNeedsRepair
	case OutcomePass:
		return LaptopPassedQC
	case OutcomePending:
		return LaptopInQC
	}
	panic(fmt.Sprintf("unhandled session outcome %q", string(o)))
}

func ParseSessionOutcome(raw string) (SessionOutcome, error) {
	o := SessionOutcome(raw)
	if !o.Valid() {
		return "", fmt.Errorf("status QC tidak valid: %q", raw)
	}
	return o, nil
}

// ItemStatus is the result of a single checklist item.
type ItemStatus string

const (
	ItemPending ItemStatus = "pending"
	ItemPass    ItemStatus = "pass"
	ItemFail    ItemStatus = "fail"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemPass, ItemFail:
		return true
	}
	return false
}

// ParseItemStatus treats an empty string as pending.
func ParseItemStatus(raw string) (ItemStatus, error) {
	if raw == "" {
		return ItemPending, nil
	}
	s := ItemStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status checklist tidak valid: %q", raw)
	}
	return s, nil
}

type Category string

const (
	CategoryHardware Category = "hardware"
	CategorySoftware Category = "software"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHardware, CategorySoftware:
		return true
	}
	return false
}

// ActionType classifies history entries.
type ActionType string

const (
	ActionStatusChange ActionType = "status_change"
	ActionQCStart      ActionType = "qc_start"
	ActionQCComplete   ActionType = "qc_complete"
	ActionQCEdit       ActionType = "qc_edit"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionStatusChange, ActionQCStart, ActionQCComplete, ActionQCEdit:
		return true
	}
	return false
}

func ParseActionType(raw string) (ActionType, error) {
	a := ActionType(raw)
	if !a.Valid() {
		return "", fmt.Errorf("action type tidak valid: %q", raw)
	}
	return a, nil
}

type Role string

const (
	RoleLeader Role = "leader"
	RoleStaff  Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleLeader, RoleStaff:
		return true
	}
	return false
}

func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", fmt.Errorf("role tidak valid (hanya leader atau staff): %q", raw)
	}
	return r, nil
}
