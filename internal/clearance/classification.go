package clearance

// SecurityClass is the sensitivity tier attached to a project.
type SecurityClass string

const (
	ClassGreen SecurityClass = "GREEN"
	ClassAmber SecurityClass = "AMBER"
	ClassRed   SecurityClass = "RED"
	ClassBlack SecurityClass = "BLACK"
)

var classMinimums = map[SecurityClass]Level{
	ClassGreen: LevelProvisional,
	ClassAmber: LevelStandard,
	ClassRed:   LevelDirector,
	ClassBlack: LevelOverseer,
}

// KnownClasses lists the documented tiers in ascending sensitivity order.
func KnownClasses() []SecurityClass {
	return []SecurityClass{ClassGreen, ClassAmber, ClassRed, ClassBlack}
}

// IsValid reports whether the class is one of the documented tiers.
func (c SecurityClass) IsValid() bool {
	_, ok := classMinimums[c]
	return ok
}

// RequiredClearance returns the minimum clearance level for a security
// class. Unrecognized classes fall back to the GREEN minimum so a data error
// never blocks low-sensitivity content; see the product note in DESIGN.md
// before tightening this.
func RequiredClearance(class SecurityClass) Level {
	if min, ok := classMinimums[class]; ok {
		return min
	}
	return LevelProvisional
}
