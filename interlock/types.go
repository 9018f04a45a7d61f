package interlock

// Validator block reasons.
const (
	ReasonFAILocked              = "FaiLocked"
	ReasonCompetencyInsufficient = "CompetencyInsufficient"
	ReasonInventoryShortage      = "InventoryShortage"
	ReasonMachineNotFound        = "MachineNotFound"
	ReasonOperatorNotFound       = "OperatorNotFound"
)

// Gate rejection codes, the machine-readable surface of a blocked start.
const (
	CodeFAILock           = "FAI_LOCK"
	CodeToolLife          = "TOOL_LIFE"
	CodeSkillCheck        = "SKILL_CHECK"
	CodeInventoryShortage = "INVENTORY_SHORTAGE"
	CodeNotFound          = "NOT_FOUND"
)

// Decision is the validator verdict. Domain blocks are data, never errors:
// a Decision with Allowed=false is an expected, user-recoverable outcome.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Allow returns a passing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Block returns a blocking decision with a structured reason.
func Block(reason, detail string) Decision {
	return Decision{Allowed: false, Reason: reason, Detail: detail}
}

// Rejection is the gate's structured refusal of a start-production request.
type Rejection struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// reasonToCode maps validator reasons onto gate rejection codes.
func reasonToCode(reason string) string {
	switch reason {
	case ReasonFAILocked:
		return CodeFAILock
	case ReasonCompetencyInsufficient:
		return CodeSkillCheck
	case ReasonInventoryShortage:
		return CodeInventoryShortage
	case ReasonMachineNotFound, ReasonOperatorNotFound:
		return CodeNotFound
	default:
		return CodeNotFound
	}
}
