package vm

import "strings"

// ---------------------------------------------------------------------------
// QName: fully qualified (namespace, local name) identifier
// ---------------------------------------------------------------------------

// QName names exactly one definition: a local name inside one namespace.
// QNames are immutable value types and compare with ==.
type QName struct {
	ns   Namespace
	name string
}

// NewQName creates a qualified name.
func NewQName(ns Namespace, name string) QName {
	return QName{ns: ns, name: name}
}

// PublicQName creates a name in the top-level public namespace.
func PublicQName(name string) QName {
	return QName{ns: PackageNamespace(""), name: name}
}

// ParseQualifiedName interprets a textual qualified name of the form
// "pkg.path::Local" as a package-namespaced QName. Text without a "::"
// separator names the top-level public namespace. The split happens at the
// last separator so nested qualified text keeps its package intact.
func ParseQualifiedName(text string) QName {
	if idx := strings.LastIndex(text, "::"); idx >= 0 {
		return QName{ns: PackageNamespace(text[:idx]), name: text[idx+2:]}
	}
	return PublicQName(text)
}

// Namespace returns the namespace half of the name.
func (q QName) Namespace() Namespace { return q.ns }

// LocalName returns the unqualified half of the name.
func (q QName) LocalName() string { return q.name }

// Multiname converts the exact name into a single-candidate multiname.
func (q QName) Multiname() Multiname {
	return NewMultiname(q.name, q.ns)
}

// String renders the name in "pkg::Local" form.
func (q QName) String() string {
	if q.ns.Kind == NamespacePackage && q.ns.URI == "" {
		return q.name
	}
	return q.ns.URI + "::" + q.name
}
