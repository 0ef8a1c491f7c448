package data

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"
	"gopkg.in/yaml.v3"
)

// ProjectileTemplate holds static data for one projectile type loaded from
// YAML. A template may extend another; unset fields inherit from the base
// (numeric zero and empty string mean "inherit", bools are OR-combined).
type ProjectileTemplate struct {
	Key        string  `yaml:"key"`
	Extends    string  `yaml:"extends"`
	GfxID      int32   `yaml:"gfx_id"`
	Speed      float64 `yaml:"speed"` // arena units per tick
	TTLTicks   int     `yaml:"ttl_ticks"`
	DamageMin  int     `yaml:"damage_min"`
	DamageMax  int     `yaml:"damage_max"`
	Pierce     bool    `yaml:"pierce"`
	Trail      bool    `yaml:"trail"`
	ImpactHook string  `yaml:"impact_hook"` // Lua global called on impact, optional
}

type templateListFile struct {
	Projectiles []ProjectileTemplate `yaml:"projectiles"`
}

// TemplateTable holds all raw projectile templates indexed by key.
type TemplateTable struct {
	templates map[string]*ProjectileTemplate
}

// LoadTemplateTable loads projectile templates from a YAML file.
func LoadTemplateTable(path string) (*TemplateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projectile_list: %w", err)
	}
	var f templateListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse projectile_list: %w", err)
	}
	t := &TemplateTable{templates: make(map[string]*ProjectileTemplate, len(f.Projectiles))}
	for i := range f.Projectiles {
		tmpl := &f.Projectiles[i]
		if tmpl.Key == "" {
			return nil, fmt.Errorf("projectile_list: template %d has no key", i)
		}
		if _, dup := t.templates[tmpl.Key]; dup {
			return nil, fmt.Errorf("projectile_list: duplicate key %q", tmpl.Key)
		}
		t.templates[tmpl.Key] = tmpl
	}
	return t, nil
}

// Get returns a raw (unmerged) template by key, or nil if not found.
func (t *TemplateTable) Get(key string) *ProjectileTemplate {
	return t.templates[key]
}

// Count returns the number of loaded templates.
func (t *TemplateTable) Count() int {
	return len(t.templates)
}

// TemplateSource resolves a template key into a fully merged template,
// walking extends chains. Resolved templates are cached, so repeated
// resolution of the same key — including the pool's exhaustion path — costs
// one cache hit.
type TemplateSource struct {
	table *TemplateTable
	cache otter.Cache[string, *ProjectileTemplate]
}

func NewTemplateSource(table *TemplateTable) (*TemplateSource, error) {
	cache, err := otter.MustBuilder[string, *ProjectileTemplate](256).Build()
	if err != nil {
		return nil, fmt.Errorf("template cache: %w", err)
	}
	return &TemplateSource{table: table, cache: cache}, nil
}

// Resolve returns the merged template for key. A missing key or a cyclic
// extends chain is a configuration error; callers treat it as fatal.
func (s *TemplateSource) Resolve(key string) (*ProjectileTemplate, error) {
	if tmpl, ok := s.cache.Get(key); ok {
		return tmpl, nil
	}
	merged, err := s.merge(key, make(map[string]bool, 4))
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, merged)
	return merged, nil
}

func (s *TemplateSource) merge(key string, visiting map[string]bool) (*ProjectileTemplate, error) {
	if visiting[key] {
		return nil, fmt.Errorf("projectile template %q: cyclic extends", key)
	}
	raw := s.table.Get(key)
	if raw == nil {
		return nil, fmt.Errorf("projectile template %q not found", key)
	}
	if raw.Extends == "" {
		out := *raw
		return &out, nil
	}

	visiting[key] = true
	base, err := s.merge(raw.Extends, visiting)
	if err != nil {
		return nil, fmt.Errorf("projectile template %q: %w", key, err)
	}
	delete(visiting, key)

	out := *base
	out.Key = raw.Key
	out.Extends = raw.Extends
	if raw.GfxID != 0 {
		out.GfxID = raw.GfxID
	}
	if raw.Speed != 0 {
		out.Speed = raw.Speed
	}
	if raw.TTLTicks != 0 {
		out.TTLTicks = raw.TTLTicks
	}
	if raw.DamageMin != 0 {
		out.DamageMin = raw.DamageMin
	}
	if raw.DamageMax != 0 {
		out.DamageMax = raw.DamageMax
	}
	out.Pierce = out.Pierce || raw.Pierce
	out.Trail = out.Trail || raw.Trail
	if raw.ImpactHook != "" {
		out.ImpactHook = raw.ImpactHook
	}
	return &out, nil
}

// Close releases the resolver cache.
func (s *TemplateSource) Close() {
	s.cache.Close()
}
