//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/leapmeta"

// TestGovernance_CoreCohesion verifies that types in pkg/core are shared by
// at least two packages. A type with a single consumer belongs in that
// consumer.
func TestGovernance_CoreCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	corePath := modulePath + "/pkg/core"
	coreTypes := make(map[types.Object]string)
	for _, p := range pkgs {
		if p.PkgPath != corePath {
			continue
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			if obj, ok := scope.Lookup(name).(*types.TypeName); ok && obj.Exported() {
				coreTypes[obj] = name
			}
		}
	}
	if len(coreTypes) == 0 {
		t.Fatal("Could not find pkg/core types")
	}

	importers := make(map[string]map[string]bool)
	for _, name := range coreTypes {
		importers[name] = make(map[string]bool)
	}
	for _, p := range pkgs {
		if p.PkgPath == corePath || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreTypes[obj]; ok {
				importers[name][strings.TrimPrefix(p.PkgPath, modulePath+"/")] = true
			}
		}
	}

	for name, users := range importers {
		switch len(users) {
		case 0:
			t.Logf("WARNING: unused core type %s", name)
		case 1:
			for user := range users {
				t.Errorf("COHESION VIOLATION: core.%s is used only by %s; move it there", name, user)
			}
		}
	}
}

// TestGovernance_NoCoreAliases ensures core types are referenced directly
// rather than re-exported as aliases from other packages.
func TestGovernance_NoCoreAliases(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	// config keys datasources by the shared struct for koanf decoding
	allowed := map[string]bool{
		modulePath + "/internal/cli/config.DataSourceConfig": true,
	}

	for _, p := range pkgs {
		if len(p.Errors) > 0 || p.PkgPath == modulePath+"/pkg/core" {
			continue
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !tn.Exported() || !tn.IsAlias() {
				continue
			}
			named, ok := types.Unalias(tn.Type()).(*types.Named)
			if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != modulePath+"/pkg/core" {
				continue
			}
			if allowed[p.PkgPath+"."+name] {
				continue
			}
			t.Errorf("PURITY VIOLATION: %s re-exports core.%s as an alias; use core.%s directly",
				strings.TrimPrefix(p.PkgPath, modulePath+"/"), named.Obj().Name(), named.Obj().Name())
		}
	}
}
