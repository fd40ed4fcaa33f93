// Package antbyte wires the lexer/parser -> linker -> compiler -> assembler
// -> world pipeline into the single entry point every external collaborator
// (the CLI, tests, or any other embedder) uses instead of driving the five
// stages by hand. Grounded on the teacher's cli/main.go runCommand, which
// strings its own lex -> parse -> plan -> execute pipeline together behind
// one function the CLI layer calls without knowing the stages in between.
package antbyte

import (
	"os"

	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/linker"
	"github.com/cxrvus/antbyte/world"
)

// FileLoader reads a world-file import from disk. linker.Link resolves
// import paths relative to the importing file before calling it, so no
// further path handling belongs here.
func FileLoader(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.LinkMissingFile, "could not read '"+path+"'", err)
	}
	return string(b), nil
}

// BuildSource runs already-read source through the full pipeline. entryPath
// names the source for import resolution and error messages; it need not
// exist on disk (tests pass a synthetic name).
func BuildSource(entryPath, entrySource string) (*world.Properties, error) {
	linked, err := linker.Link(entryPath, entrySource, FileLoader)
	if err != nil {
		return nil, err
	}
	return world.NewProperties(linked)
}

// Build reads entryPath from disk and runs it through the full pipeline.
func Build(entryPath string) (*world.Properties, error) {
	source, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, errors.Wrap(errors.LinkMissingFile, "could not read '"+entryPath+"'", err)
	}
	return BuildSource(entryPath, string(source))
}

// NewWorld builds entryPath and constructs a ready-to-run simulation.
func NewWorld(entryPath string) (*world.State, error) {
	props, err := Build(entryPath)
	if err != nil {
		return nil, err
	}
	return world.NewState(props), nil
}
