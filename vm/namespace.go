package vm

// ---------------------------------------------------------------------------
// Namespace: visibility partition for qualified names
// ---------------------------------------------------------------------------

// NamespaceKind distinguishes the visibility category of a namespace.
type NamespaceKind uint8

const (
	// NamespacePackage is an ordinary public package namespace. The empty
	// URI is the top-level public namespace.
	NamespacePackage NamespaceKind = iota
	NamespacePackageInternal
	NamespacePrivate
	NamespaceProtected
	NamespaceExplicit
	NamespaceStaticProtected
)

var namespaceKindNames = [...]string{
	"package",
	"package-internal",
	"private",
	"protected",
	"explicit",
	"static-protected",
}

func (k NamespaceKind) String() string {
	if int(k) < len(namespaceKindNames) {
		return namespaceKindNames[k]
	}
	return "unknown"
}

// Namespace identifies one visibility partition. Namespaces are value
// types: two namespaces are the same partition iff kind and URI both match.
type Namespace struct {
	Kind NamespaceKind
	URI  string
}

// PackageNamespace returns the public package namespace for a URI.
func PackageNamespace(uri string) Namespace {
	return Namespace{Kind: NamespacePackage, URI: uri}
}

// PackageInternalNamespace returns the package-internal namespace for a URI.
func PackageInternalNamespace(uri string) Namespace {
	return Namespace{Kind: NamespacePackageInternal, URI: uri}
}

// PrivateNamespace returns a private namespace for a URI.
func PrivateNamespace(uri string) Namespace {
	return Namespace{Kind: NamespacePrivate, URI: uri}
}

// IsPublic returns true for package namespaces, which participate in
// unqualified public lookup.
func (n Namespace) IsPublic() bool {
	return n.Kind == NamespacePackage
}

// String renders the namespace for diagnostics.
func (n Namespace) String() string {
	if n.Kind == NamespacePackage && n.URI == "" {
		return "<public>"
	}
	if n.URI == "" {
		return "<" + n.Kind.String() + ">"
	}
	return n.URI
}

// VectorPackageURI is the reserved package holding the generic Vector
// container and its specializations.
const VectorPackageURI = "__AS3__.vec"
