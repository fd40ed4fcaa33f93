// Package linker gathers a world file's standard library, transitive
// imports, and own declarations into one ordered function list, ready for
// compilation (spec.md §4.3 "Linker"). Grounded on the teacher's
// runtime/planner/resolver.go (depth-first dependency walk with a
// visiting-set for cycle detection, adapted here from command references
// to file imports) and original_source/src/ant/world/parser/compiler/stdlib.rs.
package linker

import (
	"path"
	"strings"

	"github.com/golang/glog"

	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/parser"
)

// Loader reads the raw contents of a world-file path. Import paths are
// resolved relative to the importing file (spec.md §6).
type Loader func(filePath string) (string, error)

// Linked is the fully-gathered, link-ordered set of declarations: stdlib
// (unless no_std), then transitively imported files depth-first, then the
// entry file's own declarations (spec.md §4.3).
type Linked struct {
	Settings    []parser.Setting
	Functions   []parser.Function
	AntBindings []parser.AntBinding
}

// Link parses entryPath/entrySource and gathers its full dependency graph
// via load.
func Link(entryPath, entrySource string, load Loader) (*Linked, error) {
	entry, err := parser.Parse(entryPath, entrySource)
	if err != nil {
		return nil, err
	}

	l := &linker{load: load, imported: map[string]bool{}, visiting: map[string]bool{}}

	var fns []parser.Function

	if !entry.NoStd {
		std, err := parser.Parse("stdlib.ant", stdlibSource)
		if err != nil {
			return nil, err
		}
		fns = append(fns, std.Functions...)
	}

	l.imported[entryPath] = true
	for _, imp := range entry.Imports {
		depFns, err := l.load_(entryPath, imp.Path)
		if err != nil {
			return nil, err
		}
		fns = append(fns, depFns...)
	}

	fns = append(fns, entry.Functions...)

	glog.V(1).Infof("linker: %s -> %d functions total (std=%v, imports=%d)",
		entryPath, len(fns), !entry.NoStd, len(entry.Imports))

	return &Linked{
		Settings:    entry.Settings,
		Functions:   fns,
		AntBindings: entry.AntBindings,
	}, nil
}

type linker struct {
	load     Loader
	imported map[string]bool
	visiting map[string]bool
}

// load_ resolves importPath relative to importerPath, validates its
// extension/name, loads and parses it, recurses into its own imports
// depth-first, renames its `main` function (and internal calls to it) to
// the file's stem, and returns the functions to splice into link order.
func (l *linker) load_(importerPath, importPath string) ([]parser.Function, error) {
	resolved := resolveImport(importerPath, importPath)

	if err := validateFileName(resolved); err != nil {
		return nil, err
	}

	if l.imported[resolved] {
		return nil, nil
	}
	if l.visiting[resolved] {
		return nil, errors.New(errors.LinkCycle, "cyclic import involving '"+resolved+"'")
	}
	l.visiting[resolved] = true
	defer delete(l.visiting, resolved)

	source, err := l.load(resolved)
	if err != nil {
		return nil, errors.Wrap(errors.LinkMissingFile, "could not load '"+resolved+"'", err)
	}

	world, perr := parser.Parse(resolved, source)
	if perr != nil {
		return nil, perr
	}

	var fns []parser.Function
	for _, imp := range world.Imports {
		depFns, err := l.load_(resolved, imp.Path)
		if err != nil {
			return nil, err
		}
		fns = append(fns, depFns...)
	}

	l.imported[resolved] = true

	stem := parser.Stem(resolved)
	renameMain(world.Functions, stem)

	return append(fns, world.Functions...), nil
}

func resolveImport(importerPath, importPath string) string {
	if strings.HasPrefix(importPath, "/") {
		return importPath
	}
	return path.Join(path.Dir(importerPath), importPath)
}

func validateFileName(filePath string) error {
	if !strings.HasSuffix(filePath, ".ant") {
		return errors.New(errors.LinkExtension, "import '"+filePath+"' must have a '.ant' extension")
	}
	stem := parser.Stem(filePath)
	if !isSnakeCase(stem) {
		return errors.New(errors.LinkName, "import filename '"+stem+"' must be snake_case")
	}
	return nil
}

func isSnakeCase(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if !isLower && !isDigit && r != '_' {
			return false
		}
	}
	return true
}

// renameMain renames a function literally named "main" to newName, and
// rewrites every call to "main" within this file's own functions to
// newName (spec.md §4.3: "each file's main renamed to the file's stem ...
// and every call to main within that file rewritten to the same stem").
func renameMain(fns []parser.Function, newName string) {
	for i := range fns {
		if fns[i].Signature.Name == "main" {
			fns[i].Signature.Name = newName
		}
		for j := range fns[i].Statements {
			renameCallTarget(&fns[i].Statements[j].Expression, newName)
		}
	}
}

func renameCallTarget(expr *parser.Expression, newName string) {
	if expr.IsCall() {
		if expr.Ident == "main" {
			expr.Ident = newName
		}
		for i := range expr.Params {
			renameCallTarget(&expr.Params[i], newName)
		}
	}
}
