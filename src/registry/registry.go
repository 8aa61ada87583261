// Package registry loads named descriptors and signatures from a YAML
// document so that contracts can be declared in configuration and shared by
// name. A document looks like:
//
//	descriptors:
//	  point: tuple(numeric, numeric)
//	  label: option(string)
//	signatures:
//	  distance:
//	    returns: numeric
//	    args: [point, point]
//
// Descriptor expressions may reference other named descriptors; definitions
// that reference themselves, directly or through other names, are rejected at
// load time since a descriptor graph must stay acyclic.
package registry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jbester/sig/src/contract"
	"github.com/jbester/sig/src/parse"
	"github.com/jbester/sig/src/types"
)

type (
	document struct {
		Descriptors map[string]string    `yaml:"descriptors"`
		Signatures  map[string]signature `yaml:"signatures"`
	}
	signature struct {
		Returns string   `yaml:"returns"`
		Args    []string `yaml:"args"`
	}
	// Registry holds named descriptors and contracts resolved from a document.
	Registry struct {
		descs map[string]types.Descriptor
		sigs  map[string]*contract.Contract
	}
	loader struct {
		exprs  map[string]string
		done   map[string]types.Descriptor
		seen   map[string]bool
		parser *parse.Parser
		err    error
	}
)

// Load reads a YAML registry document. Contracts are created on the given
// enforcer; a nil enforcer uses contract.Default.
func Load(src io.Reader, enforcer *contract.Enforcer) (*Registry, error) {
	var doc document
	if err := yaml.NewDecoder(src).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("registry: %w", err)
	}
	if enforcer == nil {
		enforcer = contract.Default
	}

	ld := &loader{
		exprs: doc.Descriptors,
		done:  map[string]types.Descriptor{},
		seen:  map[string]bool{},
	}
	ld.parser = parse.New(ld.lookup)

	reg := &Registry{
		descs: map[string]types.Descriptor{},
		sigs:  map[string]*contract.Contract{},
	}
	for _, name := range sortedKeys(doc.Descriptors) {
		defn, err := ld.descriptor(name)
		if err != nil {
			return nil, err
		}
		reg.descs[name] = defn
	}
	for _, name := range sortedKeys(doc.Signatures) {
		sig := doc.Signatures[name]
		ret, err := ld.parse(sig.Returns)
		if err != nil {
			return nil, fmt.Errorf("registry: signature %v: %w", name, err)
		}
		args := make([]any, len(sig.Args))
		for i, expr := range sig.Args {
			arg, err := ld.parse(expr)
			if err != nil {
				return nil, fmt.Errorf("registry: signature %v: %w", name, err)
			}
			args[i] = arg
		}
		reg.sigs[name] = enforcer.New(ret, args...)
	}
	return reg, nil
}

// LoadFile reads a YAML registry document from a file.
func LoadFile(path string, enforcer *contract.Enforcer) (*Registry, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return Load(src, enforcer)
}

// Descriptor returns a named descriptor.
func (r *Registry) Descriptor(name string) (types.Descriptor, bool) {
	defn, ok := r.descs[name]
	return defn, ok
}

// Contract returns a named signature's contract.
func (r *Registry) Contract(name string) (*contract.Contract, bool) {
	c, ok := r.sigs[name]
	return c, ok
}

// Names lists all descriptor and signature names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descs)+len(r.sigs))
	for name := range r.descs {
		names = append(names, name)
	}
	for name := range r.sigs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resolver exposes the registry's named descriptors to a parser.
func (r *Registry) Resolver() parse.Resolver {
	return func(name string) (types.Descriptor, bool) {
		defn, ok := r.descs[name]
		return defn, ok
	}
}

// parse resolves one expression, surfacing a cycle error over the parser's
// unknown-name error since the former is the root cause.
func (ld *loader) parse(expr string) (types.Descriptor, error) {
	ld.err = nil
	defn, err := ld.parser.Descriptor(expr)
	if ld.err != nil {
		return nil, ld.err
	}
	return defn, err
}

func (ld *loader) descriptor(name string) (types.Descriptor, error) {
	if defn, ok := ld.done[name]; ok {
		return defn, nil
	}
	if ld.seen[name] {
		return nil, fmt.Errorf("registry: descriptor %v is defined in terms of itself", name)
	}
	ld.seen[name] = true
	defer delete(ld.seen, name)

	defn, err := ld.parser.Descriptor(ld.exprs[name])
	if ld.err != nil {
		err = ld.err
	}
	if err != nil {
		return nil, fmt.Errorf("registry: descriptor %v: %w", name, err)
	}
	ld.done[name] = defn
	return defn, nil
}

func (ld *loader) lookup(name string) (types.Descriptor, bool) {
	if _, ok := ld.exprs[name]; !ok {
		return nil, false
	}
	defn, err := ld.descriptor(name)
	if err != nil {
		if ld.err == nil {
			ld.err = err
		}
		return nil, false
	}
	return defn, true
}
