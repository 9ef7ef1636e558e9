// Package translate wires the external parser, the target Emitter, and
// the Tree Walker together behind the single entry point an embedder
// needs. It plays the orchestration role cmd/able/main.go plays for the
// teacher's interpreter, minus that command's manifest/lockfile/CLI
// concerns — this module's surface is one pure function, not a runtime.
package translate

import (
	"fmt"

	"mongoxlate/pkg/emit"
	"mongoxlate/pkg/tsjs"
	"mongoxlate/pkg/walker"
)

// Target names a supported output language.
type Target string

const (
	Python Target = "python"
	Java   Target = "java"
)

// String parses source as a single MongoDB shell expression and returns
// its equivalent in target. Each call gets its own parser, Emitter, and
// Walker — nothing here is retained or shared across calls, so
// concurrent callers never contend on mutable state.
func String(source string, target Target) (string, error) {
	emitter, err := emitterFor(target)
	if err != nil {
		return "", err
	}

	parser, err := tsjs.New()
	if err != nil {
		return "", err
	}
	defer parser.Close()

	root, release, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	defer release()

	return walker.New(emitter).Translate(root)
}

func emitterFor(target Target) (*emit.Emitter, error) {
	switch target {
	case Python:
		return emit.Python()
	case Java:
		return emit.Java()
	default:
		return nil, fmt.Errorf("translate: unsupported target %q", target)
	}
}
