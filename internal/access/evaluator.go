package access

import "github.com/ouroboros-foundation/portal/internal/clearance"

// Identity carries the requester attributes the evaluator needs. It is
// always passed explicitly; the evaluator never reads session state.
type Identity struct {
	UserID        int64
	Clearance     clearance.Level
	DepartmentIDs []int64
	RankID        int64
}

// InDepartment reports whether the identity belongs to the department.
func (i Identity) InDepartment(departmentID int64) bool {
	for _, id := range i.DepartmentIDs {
		if id == departmentID {
			return true
		}
	}
	return false
}

// Subject is the project view the evaluator needs: its classification and
// its explicit rule set.
type Subject struct {
	ProjectID     int64
	SecurityClass clearance.SecurityClass
	Rules         []Rule
}

// Decision is the evaluator's answer. Role is meaningful only when Allowed.
type Decision struct {
	Allowed bool
	Role    Role
}

// Evaluate decides whether the requester may access the project and with
// which role.
//
// The baseline gate admits anyone whose clearance meets the classification
// minimum, as researcher. Explicit rules can grant access below that floor
// but never revoke it above; when several rules match, the highest-privilege
// role wins, and a matching user-targeted rule overrides the baseline role.
func Evaluate(subject Subject, requester Identity) Decision {
	required := clearance.RequiredClearance(subject.SecurityClass)
	baseline := requester.Clearance.Meets(required)

	matched := false
	var role Role
	userTargeted := false
	for _, rule := range subject.Rules {
		if !ruleMatches(rule, requester) {
			continue
		}
		if !matched || rule.Role.outranks(role) {
			role = rule.Role
		}
		if rule.Type == RuleTypeUser {
			userTargeted = true
		}
		matched = true
	}

	switch {
	case matched && baseline:
		// Baseline already grants researcher; a matching rule only improves
		// on that unless it targets this user specifically.
		if !userTargeted && RoleResearcher.outranks(role) {
			role = RoleResearcher
		}
		return Decision{Allowed: true, Role: role}
	case matched:
		return Decision{Allowed: true, Role: role}
	case baseline:
		return Decision{Allowed: true, Role: RoleResearcher}
	default:
		return Decision{Allowed: false}
	}
}

func ruleMatches(rule Rule, requester Identity) bool {
	switch rule.Type {
	case RuleTypeUser:
		return rule.TargetID == requester.UserID
	case RuleTypeDepartment:
		return requester.InDepartment(rule.TargetID)
	case RuleTypeRank:
		return rule.TargetID == requester.RankID
	case RuleTypeClearance:
		return requester.Clearance.Meets(rule.MinClearance)
	default:
		return false
	}
}
