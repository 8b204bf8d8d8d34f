// Package schema is the validation boundary for every whole-aggregate write.
// Schemas are CUE definitions; unification gives both validation and
// defaulting in one mechanism, so "validate" and "fill in defaults" can never
// drift apart.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// Name selects one of the registered schemas.
type Name string

const (
	Quiz     Name = "quiz"
	Section  Name = "section"
	Question Name = "question"
)

// Validator is the schema contract the quiz core consumes. Implementations
// must be safe for concurrent use.
type Validator interface {
	// Validate checks a full value against the named schema.
	Validate(value any, name Name) error
	// WithDefaults unifies a partial value with the named schema, resolves
	// defaults, and decodes the completed value into out.
	WithDefaults(partial any, name Name, out any) error
}

// CUEValidator validates against the definitions in schemaSource.
type CUEValidator struct {
	mu   sync.Mutex
	cctx *cue.Context
	defs map[Name]cue.Value
}

var defPaths = map[Name]string{
	Quiz:     "#Quiz",
	Section:  "#Section",
	Question: "#QuestionRef",
}

func NewCUEValidator() (*CUEValidator, error) {
	cctx := cuecontext.New()
	root := cctx.CompileString(schemaSource)
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile schemas: %w", err)
	}
	defs := make(map[Name]cue.Value, len(defPaths))
	for name, path := range defPaths {
		v := root.LookupPath(cue.ParsePath(path))
		if !v.Exists() {
			return nil, fmt.Errorf("schema %q: definition %s missing", name, path)
		}
		defs[name] = v
	}
	return &CUEValidator{cctx: cctx, defs: defs}, nil
}

func (v *CUEValidator) Validate(value any, name Name) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	unified, err := v.unify(value, name)
	if err != nil {
		return err
	}
	// Concrete+Final: required fields must be present, defaults count as
	// concrete, conflicts surface as errors.
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("schema %q: %w", name, err)
	}
	return nil
}

func (v *CUEValidator) WithDefaults(partial any, name Name, out any) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	unified, err := v.unify(partial, name)
	if err != nil {
		return err
	}
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("schema %q: %w", name, err)
	}
	if err := unified.Decode(out); err != nil {
		return fmt.Errorf("schema %q: decode: %w", name, err)
	}
	return nil
}

// unify encodes value by way of JSON so whole numbers stay integers; a
// reflection-based encode would turn a json-round-tripped 0 (float64) into a
// CUE float and spuriously fail every int field.
func (v *CUEValidator) unify(value any, name Name) (cue.Value, error) {
	def, ok := v.defs[name]
	if !ok {
		return cue.Value{}, fmt.Errorf("unknown schema %q", name)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return cue.Value{}, fmt.Errorf("schema %q: encode: %w", name, err)
	}
	expr, err := cuejson.Extract("", b)
	if err != nil {
		return cue.Value{}, fmt.Errorf("schema %q: encode: %w", name, err)
	}
	enc := v.cctx.BuildExpr(expr)
	if err := enc.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("schema %q: encode: %w", name, err)
	}
	unified := def.Unify(enc)
	if err := unified.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("schema %q: %w", name, err)
	}
	return unified, nil
}
