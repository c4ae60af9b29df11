// Package access implements the project access rule model and the evaluator
// that combines explicit rules with the baseline security classification
// gate. Evaluation is a pure function over values already loaded from
// storage; callers must hand it a single consistent snapshot.
package access

import (
	"fmt"

	"github.com/ouroboros-foundation/portal/internal/clearance"
)

// Role is the project role granted to a qualifying requester.
type Role string

const (
	RoleLead       Role = "lead"
	RoleResearcher Role = "researcher"
	RoleObserver   Role = "observer"
	RoleConsultant Role = "consultant"
)

// rolePrecedence orders roles from most to least privileged. Ties between
// matching rules resolve toward the higher-privilege role.
var rolePrecedence = map[Role]int{
	RoleLead:       4,
	RoleResearcher: 3,
	RoleObserver:   2,
	RoleConsultant: 1,
}

// IsValid reports whether the role is one of the four project roles.
func (r Role) IsValid() bool {
	_, ok := rolePrecedence[r]
	return ok
}

// outranks reports whether r carries more privilege than other.
func (r Role) outranks(other Role) bool {
	return rolePrecedence[r] > rolePrecedence[other]
}

// RuleType discriminates the four access rule shapes.
type RuleType string

const (
	RuleTypeUser       RuleType = "user"
	RuleTypeDepartment RuleType = "department"
	RuleTypeRank       RuleType = "rank"
	RuleTypeClearance  RuleType = "clearance"
)

// Rule is an explicit grant attached to a project. It is a tagged union:
// user/department/rank rules carry a target id, clearance rules carry a
// minimum level instead. Construct rules through the New* helpers so the
// shape always matches the type.
type Rule struct {
	ID           int64
	ProjectID    int64
	Type         RuleType
	TargetID     int64
	MinClearance clearance.Level
	Role         Role
}

func NewUserRule(projectID, userID int64, role Role) Rule {
	return Rule{ProjectID: projectID, Type: RuleTypeUser, TargetID: userID, Role: normalizeRole(role)}
}

func NewDepartmentRule(projectID, departmentID int64, role Role) Rule {
	return Rule{ProjectID: projectID, Type: RuleTypeDepartment, TargetID: departmentID, Role: normalizeRole(role)}
}

func NewRankRule(projectID, rankID int64, role Role) Rule {
	return Rule{ProjectID: projectID, Type: RuleTypeRank, TargetID: rankID, Role: normalizeRole(role)}
}

func NewClearanceRule(projectID int64, minClearance clearance.Level, role Role) Rule {
	return Rule{ProjectID: projectID, Type: RuleTypeClearance, MinClearance: minClearance, Role: normalizeRole(role)}
}

// normalizeRole applies the researcher default for absent or unknown roles.
func normalizeRole(role Role) Role {
	if !role.IsValid() {
		return RoleResearcher
	}
	return role
}

// Validate rejects malformed rules at construction time so the evaluator
// never has to. Exactly one of target id / min clearance must be populated,
// selected by the rule type.
func (r Rule) Validate() error {
	if !r.Role.IsValid() {
		return fmt.Errorf("access rule: unknown role %q", r.Role)
	}
	switch r.Type {
	case RuleTypeUser, RuleTypeDepartment, RuleTypeRank:
		if r.TargetID <= 0 {
			return fmt.Errorf("access rule: %s rule requires a target id", r.Type)
		}
		if r.MinClearance != 0 {
			return fmt.Errorf("access rule: %s rule must not carry a min clearance", r.Type)
		}
	case RuleTypeClearance:
		if r.TargetID != 0 {
			return fmt.Errorf("access rule: clearance rule must not carry a target id")
		}
		if r.MinClearance < clearance.MinLevel || r.MinClearance > clearance.MaxLevel {
			return fmt.Errorf("access rule: min clearance %d outside 0-5", r.MinClearance)
		}
	default:
		return fmt.Errorf("access rule: unknown type %q", r.Type)
	}
	return nil
}
