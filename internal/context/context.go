// Package context implements JactlContext (spec §5 "Shared resources",
// §9 "Global mutable state"): the one piece of state threaded explicitly
// through every parser and resolver constructor instead of living as
// process-wide globals. It owns the source table, the class/package
// registry, the feature-flag set, and (in REPL mode) the mutable globals
// map, each behind its own synchronization so concurrent compilations can
// safely share one Context.
package context

import (
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/jactl-go/jactlc/pkg/ast"
)

// Flags are the feature switches spec §5 and §4.2 name explicitly:
// constant folding, forcing every function async for testing, REPL
// semantics (inner classes attached at top level, mutable globals), and
// checkpoint/restore support (an async source per spec §4.2).
type Flags struct {
	ConstantFolding   bool
	TestAsync         bool
	REPL              bool
	CheckpointRestore bool
}

// Config is the on-disk shape Flags can be loaded from, read with
// goccy/go-yaml the way the rest of the example pack loads structured
// configuration.
type Config struct {
	ConstantFolding   bool `yaml:"constantFolding"`
	TestAsync         bool `yaml:"testAsync"`
	REPL              bool `yaml:"repl"`
	CheckpointRestore bool `yaml:"checkpointRestore"`
}

// sourceEntry is one registered compilation unit's text and display name.
type sourceEntry struct {
	id   int
	uuid uuid.UUID
	name string
	text string
}

// Context is JactlContext: read-mostly lookups for classes and packages, a
// globals map mutated only in REPL mode, and the feature flags above.
type Context struct {
	flags Flags

	sourcesMu sync.RWMutex
	sources   []sourceEntry

	classesMu sync.RWMutex
	classes   map[string]*ast.ClassDescriptor // keyed by packaged name
	packages  map[string]bool

	globalsMu sync.Mutex
	globals   map[string]any
}

// New creates a Context with the given flags.
func New(flags Flags) *Context {
	return &Context{
		flags:    flags,
		classes:  make(map[string]*ast.ClassDescriptor),
		packages: make(map[string]bool),
		globals:  make(map[string]any),
	}
}

// NewFromConfig builds a Context from a Config value, e.g. one decoded with
// goccy/go-yaml from a compiler config file.
func NewFromConfig(cfg Config) *Context {
	return New(Flags{
		ConstantFolding:   cfg.ConstantFolding,
		TestAsync:         cfg.TestAsync,
		REPL:              cfg.REPL,
		CheckpointRestore: cfg.CheckpointRestore,
	})
}

// LoadConfig decodes a Config from YAML source text with goccy/go-yaml.
func LoadConfig(yamlText []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(yamlText, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding compiler config: %w", err)
	}
	return cfg, nil
}

// NewFromConfigFile builds a Context straight from a YAML config file's
// contents, the form cmd/jactlc reads from disk for `--config`.
func NewFromConfigFile(yamlText []byte) (*Context, error) {
	cfg, err := LoadConfig(yamlText)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg), nil
}

// Flags returns the context's feature flags.
func (c *Context) Flags() Flags { return c.flags }

// RegisterSource assigns the next SourceID to a compilation unit's text and
// display name, returning the id that every Token.SourceID in that unit's
// AST refers back to. Each registered source is also stamped with a UUID so
// external tooling (IDE integrations, caches) can refer to it independent
// of the in-process integer id, which is only stable for one Context's
// lifetime.
func (c *Context) RegisterSource(name, text string) int {
	c.sourcesMu.Lock()
	defer c.sourcesMu.Unlock()

	id := len(c.sources)
	c.sources = append(c.sources, sourceEntry{
		id:   id,
		uuid: uuid.New(),
		name: name,
		text: text,
	})
	return id
}

// Source returns the name and text registered for id, or ("", "", false) if
// id is out of range.
func (c *Context) Source(id int) (name, text string, ok bool) {
	c.sourcesMu.RLock()
	defer c.sourcesMu.RUnlock()
	if id < 0 || id >= len(c.sources) {
		return "", "", false
	}
	e := c.sources[id]
	return e.name, e.text, true
}

// SourceUUID returns the stable external identifier for a registered
// source.
func (c *Context) SourceUUID(id int) (uuid.UUID, bool) {
	c.sourcesMu.RLock()
	defer c.sourcesMu.RUnlock()
	if id < 0 || id >= len(c.sources) {
		return uuid.UUID{}, false
	}
	return c.sources[id].uuid, true
}

// RegisterClass adds a resolved class descriptor to the registry, keyed by
// its packaged name (spec §9: "Resolve into a registry keyed by packaged
// name; store links as indices into the registry, not as owning
// references").
func (c *Context) RegisterClass(desc *ast.ClassDescriptor) {
	c.classesMu.Lock()
	defer c.classesMu.Unlock()
	c.classes[desc.Packaged] = desc

	if i := lastDot(desc.Packaged); i >= 0 {
		c.packages[desc.Packaged[:i]] = true
	}
}

// ClassDescriptor looks up a class by packaged name (spec §6.2: "Class
// registry: class_descriptor(package, name)").
func (c *Context) ClassDescriptor(pkg, name string) (*ast.ClassDescriptor, bool) {
	c.classesMu.RLock()
	defer c.classesMu.RUnlock()
	key := name
	if pkg != "" {
		key = pkg + "." + name
	}
	d, ok := c.classes[key]
	return d, ok
}

// PackageExists reports whether any registered class lives under the given
// package path (spec §6.2: "package_exists(name)"), consumed by the
// parser's class-path-vs-field-access disambiguation (spec §4.1 rule 5).
func (c *Context) PackageExists(name string) bool {
	c.classesMu.RLock()
	defer c.classesMu.RUnlock()
	return c.packages[name]
}

// Global reads a REPL global by name.
func (c *Context) Global(name string) (any, bool) {
	c.globalsMu.Lock()
	defer c.globalsMu.Unlock()
	v, ok := c.globals[name]
	return v, ok
}

// SetGlobal writes a REPL global by name. Callers should only do this when
// Flags().REPL is true; the resolver rejects `def`-level globals mutation
// outside REPL mode (spec §5: "a mutable map of globals (only mutated in
// REPL mode)").
func (c *Context) SetGlobal(name string, value any) {
	c.globalsMu.Lock()
	defer c.globalsMu.Unlock()
	c.globals[name] = value
}

// GlobalNames returns a snapshot of every currently-bound global name, used
// by the resolver's "globals" fallback lookup tier (spec §4.2 "Symbol
// lookup").
func (c *Context) GlobalNames() []string {
	c.globalsMu.Lock()
	defer c.globalsMu.Unlock()
	names := make([]string, 0, len(c.globals))
	for k := range c.globals {
		names = append(names, k)
	}
	return names
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
