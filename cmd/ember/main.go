// Ember CLI - inspect and exercise the runtime's symbol-resolution core
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/emberscript/ember/manifest"
	"github.com/emberscript/ember/store"
	"github.com/emberscript/ember/vm"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("ember.cli")

func main() {
	dir := flag.String("C", ".", "Directory containing ember.toml")
	resolve := flag.String("r", "", "Resolve a qualified name (e.g. 'flash.utils::Dictionary')")
	list := flag.Bool("list", false, "List definitions exported into the global domain")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ember [options]\n\n")
		fmt.Fprintf(os.Stderr, "Loads compiled units per ember.toml and queries the domain hierarchy.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ember -list                      # Show global-domain exports\n")
		fmt.Fprintf(os.Stderr, "  ember -r 'flash.utils::Dictionary'  # Resolve one name\n")
		fmt.Fprintf(os.Stderr, "  ember -r 'Vector.<int>'          # Resolve a parameterized type\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	m, err := manifest.FindAndLoad(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}

	rt := vm.NewRuntime()
	rt.InitGlobalDomainMemory()
	global := rt.GlobalDomain()
	rt.InstallVector(global, nil)

	domains := map[string]*vm.Domain{"": global}
	if m != nil {
		if m.Runtime.DomainMemory != vm.DefaultDomainMemoryLength {
			global.Memory().SetLength(m.Runtime.DomainMemory)
		}
		for _, dc := range m.Domains {
			parent := domains[dc.Parent]
			domains[dc.Name] = vm.NewDomain(parent)
			log.Debugf("created domain %q under %q", dc.Name, dc.Parent)
		}
		if err := loadUnits(rt, global, m); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading units: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *resolve != "":
		name := vm.ParseQualifiedName(*resolve)
		value, err := global.DefinedValueHandlingVector(rt, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s = %v\n", name, value)
	case *list:
		global.EachDefinition(func(name vm.QName, script *vm.Script) {
			origin := "native"
			if u := script.Unit(); u != nil {
				origin = u.Name
			}
			fmt.Printf("%-40s %s\n", name, origin)
		})
	default:
		flag.Usage()
	}
}

// loadUnits indexes every compiled unit under the manifest's source dirs
// and registers one export-only script per unit. Parsing unit contents is
// the loader's job; here each file is treated as one opaque unit whose
// basename becomes a public definition.
func loadUnits(rt *vm.Runtime, domain *vm.Domain, m *manifest.Manifest) error {
	var cache *store.UnitStore
	if path := m.UnitCachePath(); path != "" {
		var err error
		cache, err = store.Open(path)
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	for _, dir := range m.SourceDirPaths() {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			unit := vm.NewUnit(entry.Name(), data)
			name := vm.PublicQName(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
			unit.AddDefinition(name)
			rt.Units.Add(unit)

			script := rt.DefineBuiltin(domain, name, unit)
			script.SetUnit(unit)
			log.Infof("loaded unit %s (%d bytes)", entry.Name(), len(data))

			if cache != nil {
				if err := cache.Put(unit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
