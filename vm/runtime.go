package vm

// ---------------------------------------------------------------------------
// Runtime: shared resolution state for one running player
// ---------------------------------------------------------------------------

// Runtime holds the state every resolution consults: the well-known
// namespaces, the global domain at the root of the hierarchy, and the
// index of loaded units. One Runtime corresponds to one embedded player.
type Runtime struct {
	// PublicNamespace is the top-level public package namespace.
	PublicNamespace Namespace

	// VectorPublicNamespace and VectorInternalNamespace are the reserved
	// namespaces of the generic Vector container.
	VectorPublicNamespace   Namespace
	VectorInternalNamespace Namespace

	globalDomain *Domain

	// Units indexes every compiled unit loaded into this runtime.
	Units *UnitIndex
}

// NewRuntime creates a runtime with a fresh global domain. The global
// domain starts without memory; call InitGlobalDomainMemory once the
// ByteArray machinery is up, before any user script executes.
func NewRuntime() *Runtime {
	return &Runtime{
		PublicNamespace:         PackageNamespace(""),
		VectorPublicNamespace:   PackageNamespace(VectorPackageURI),
		VectorInternalNamespace: PackageInternalNamespace(VectorPackageURI),
		globalDomain:            NewGlobalDomain(),
		Units:                   NewUnitIndex(),
	}
}

// GlobalDomain returns the root of the domain hierarchy.
func (rt *Runtime) GlobalDomain() *Domain {
	return rt.globalDomain
}

// IsGlobalDomain reports whether d is this runtime's global domain.
func (rt *Runtime) IsGlobalDomain(d *Domain) bool {
	return d == rt.globalDomain
}

// InitGlobalDomainMemory completes global-domain bootstrap by
// provisioning default memory. Idempotent.
func (rt *Runtime) InitGlobalDomainMemory() {
	rt.globalDomain.InitDefaultMemory()
}

// DefineBuiltin installs a natively constructed value into a domain: it
// creates a script whose globals hold the value, exports the definition,
// and returns the script. This is how host-provided classes and
// functions enter the resolution namespace.
func (rt *Runtime) DefineBuiltin(d *Domain, name QName, value Value) *Script {
	script := NewScript(d, func(_ *Runtime, globals *ScriptObject) error {
		globals.SetProperty(name, value)
		return nil
	})
	d.ExportDefinition(name, script)
	return script
}

// InstallVector registers the generic Vector container class into a
// domain, both as a class and as a resolvable definition.
func (rt *Runtime) InstallVector(d *Domain, superclass *Class) *Class {
	vector := NewVectorClass(superclass)
	d.ExportClass(vector)
	rt.DefineBuiltin(d, vector.Name(), vector)
	return vector
}
