package vm

// ---------------------------------------------------------------------------
// Multiname: one local name, several candidate namespaces
// ---------------------------------------------------------------------------

// Multiname is an ambiguous name reference: a local name paired with the
// set of namespaces the referencing code is allowed to see. Resolution
// picks whichever stored QName matches first. A multiname built by the
// zero value has no local name and never matches anything.
type Multiname struct {
	name       string
	hasName    bool
	namespaces []Namespace
}

// NewMultiname creates a multiname for a local name and candidate set.
func NewMultiname(name string, namespaces ...Namespace) Multiname {
	return Multiname{
		name:       name,
		hasName:    true,
		namespaces: namespaces,
	}
}

// LocalName returns the unqualified name, and whether one is present.
func (m *Multiname) LocalName() (string, bool) {
	return m.name, m.hasName
}

// Namespaces returns the candidate namespace set.
func (m *Multiname) Namespaces() []Namespace {
	return m.namespaces
}

// ContainsNamespace reports whether ns is in the candidate set.
func (m *Multiname) ContainsNamespace(ns Namespace) bool {
	for _, cand := range m.namespaces {
		if cand == ns {
			return true
		}
	}
	return false
}

// String renders the multiname for diagnostics.
func (m *Multiname) String() string {
	if !m.hasName {
		return "<uninitiated>"
	}
	return m.name
}
