package ast

// VisibilityKind qualifies declarations as public or private.
type VisibilityKind int

const (
	VisibilityPublic VisibilityKind = iota
	VisibilityPrivate
)

// String returns the lowercase name of the visibility.
func (v VisibilityKind) String() string {
	if v == VisibilityPrivate {
		return "private"
	}
	return "public"
}

// MutabilityKind qualifies declarations as constant or mutable.
type MutabilityKind int

const (
	MutabilityConstant MutabilityKind = iota
	MutabilityMutable
)

// String returns the lowercase name of the mutability.
func (m MutabilityKind) String() string {
	if m == MutabilityMutable {
		return "mutable"
	}
	return "constant"
}

// ScopeKind qualifies declarations as global or local.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeLocal
)

// String returns the lowercase name of the scope kind.
func (s ScopeKind) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

func visibilityFromString(s string) VisibilityKind {
	if s == "private" {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

func mutabilityFromString(s string) MutabilityKind {
	if s == "mutable" {
		return MutabilityMutable
	}
	return MutabilityConstant
}

func scopeFromString(s string) ScopeKind {
	if s == "local" {
		return ScopeLocal
	}
	return ScopeGlobal
}
