package sumonet

import (
	"strings"
)

// Allowance is a vehicle-class permission set. It is represented either as a
// whitelist (only the masked classes are permitted) or as a blacklist (every
// class except the masked ones is permitted). The blacklist form also permits
// class names outside the known vocabulary, which keeps membership queries
// total: an unknown name follows the all/none default of the set it is asked
// against.
type Allowance struct {
	mask     uint32
	inverted bool
}

// NewAllowance builds an Allowance from "allow" and "disallow" class-name
// lists (comma or space separated). A non-empty allow list wins over the
// disallow list. An empty allow list yields all-but-disallowed. The literal
// "all" permits everything, the literal "none" permits nothing. Unknown class
// names in either list are skipped.
func NewAllowance(allow, disallow string) Allowance {
	allowMask, allowAll, allowNone, allowAny := parseClassList(allow)
	if allowAny {
		if allowNone {
			return Allowance{}
		}
		if allowAll {
			return Allowance{inverted: true}
		}
		return Allowance{mask: allowMask}
	}
	disallowMask, disallowAll, _, disallowAny := parseClassList(disallow)
	if disallowAny && disallowAll {
		return Allowance{}
	}
	return Allowance{mask: disallowMask, inverted: true}
}

// AllowanceNone returns the empty permission set.
func AllowanceNone() Allowance {
	return Allowance{}
}

// AllowanceAll returns the permission set covering every class.
func AllowanceAll() Allowance {
	return Allowance{inverted: true}
}

func parseClassList(s string) (mask uint32, all bool, none bool, any bool) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, token := range tokens {
		any = true
		switch token {
		case "all":
			all = true
		case "none":
			none = true
		default:
			if class, ok := vehicleClassByName[token]; ok {
				mask |= class.bit()
			}
		}
	}
	return mask, all, none, any
}

// MemberClass reports whether the given vocabulary class is permitted.
func (a Allowance) MemberClass(class VehicleClass) bool {
	if a.inverted {
		return a.mask&class.bit() == 0
	}
	return a.mask&class.bit() != 0
}

// Member reports whether the class with the given name is permitted. The
// literal "all" asks whether every class is permitted. Names outside the
// vocabulary are governed by the all/none default of the set only.
func (a Allowance) Member(name string) bool {
	switch name {
	case "all":
		return a.PermitsAll()
	case "none":
		return false
	}
	if class, ok := vehicleClassByName[name]; ok {
		return a.MemberClass(class)
	}
	return a.inverted
}

// Union returns the accrual of both operands: the result permits a class iff
// either operand does.
func (a Allowance) Union(b Allowance) Allowance {
	switch {
	case !a.inverted && !b.inverted:
		return Allowance{mask: a.mask | b.mask}
	case a.inverted && !b.inverted:
		return Allowance{mask: a.mask &^ b.mask, inverted: true}
	case !a.inverted && b.inverted:
		return Allowance{mask: b.mask &^ a.mask, inverted: true}
	default:
		return Allowance{mask: a.mask & b.mask, inverted: true}
	}
}

// IsSupersetOf reports whether every class permitted by other is also
// permitted by a. Blacklist sets permit out-of-vocabulary classes, so a
// whitelist is never a superset of a blacklist.
func (a Allowance) IsSupersetOf(other Allowance) bool {
	switch {
	case !a.inverted && !other.inverted:
		return other.mask&^a.mask == 0
	case a.inverted && !other.inverted:
		return other.mask&a.mask == 0
	case !a.inverted && other.inverted:
		return false
	default:
		return a.mask&^other.mask == 0
	}
}

// IsExactly reports whether the set permits exactly the one given class.
func (a Allowance) IsExactly(class VehicleClass) bool {
	return !a.inverted && a.mask == class.bit()
}

// PermitsAll reports whether every class (including unknown names) is
// permitted.
func (a Allowance) PermitsAll() bool {
	return a.inverted && a.mask == 0
}

// PermitsNone reports whether no class at all is permitted.
func (a Allowance) PermitsNone() bool {
	if a.inverted {
		return false
	}
	return a.mask == 0
}

func (a Allowance) String() string {
	if a.PermitsAll() {
		return "all"
	}
	if a.PermitsNone() {
		return "none"
	}
	names := []string{}
	for class := CLASS_PRIVATE; class <= CLASS_CUSTOM2; class++ {
		if a.MemberClass(class) {
			names = append(names, class.String())
		}
	}
	return strings.Join(names, ",")
}
