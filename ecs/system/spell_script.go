package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/prefabs"
)

// SpellCaster turns a finished cast into spell spawn descriptors. Spells
// with a script run it through tengo; the rest use an evenly spaced row.
type SpellCaster struct {
	spells   prefabs.SpellTable
	compiled map[string]*spellScript
	load     func(name string) ([]byte, error)
}

type spellScript struct {
	compiled *tengo.Compiled
	spawns   []component.SpellSpawn
}

func NewSpellCaster(spells prefabs.SpellTable) *SpellCaster {
	return &SpellCaster{
		spells:   spells,
		compiled: make(map[string]*spellScript),
		load:     prefabs.LoadScript,
	}
}

// Reload swaps the spell table and drops compiled scripts so edited files
// are picked up on the next cast.
func (c *SpellCaster) Reload(spells prefabs.SpellTable) {
	c.spells = spells
	c.compiled = make(map[string]*spellScript)
}

// Spec returns the spell definition for name.
func (c *SpellCaster) Spec(name string) (prefabs.SpellSpec, bool) {
	spec, ok := c.spells[name]
	return spec, ok
}

// Fan builds the spawn row for spell name centered on (x, y).
func (c *SpellCaster) Fan(name string, x, y float64) ([]component.SpellSpawn, error) {
	spec, ok := c.spells[name]
	if !ok {
		return nil, fmt.Errorf("spell: unknown spell %q", name)
	}
	if spec.Script == "" {
		return evenFan(name, spec, x, y), nil
	}

	rt, err := c.script(name, spec.Script)
	if err != nil {
		return nil, err
	}
	rt.spawns = rt.spawns[:0]
	if err := rt.compiled.Set("target_x", x); err != nil {
		return nil, err
	}
	if err := rt.compiled.Set("target_y", y); err != nil {
		return nil, err
	}
	if err := rt.compiled.Set("count", spec.Count); err != nil {
		return nil, err
	}
	if err := rt.compiled.Set("spacing", spec.Spacing); err != nil {
		return nil, err
	}
	if err := rt.compiled.Run(); err != nil {
		return nil, fmt.Errorf("spell: run %s: %w", spec.Script, err)
	}
	out := make([]component.SpellSpawn, len(rt.spawns))
	copy(out, rt.spawns)
	for i := range out {
		out[i].Name = name
	}
	return out, nil
}

func (c *SpellCaster) script(name, path string) (*spellScript, error) {
	if rt, ok := c.compiled[name]; ok {
		return rt, nil
	}
	src, err := c.load(path)
	if err != nil {
		return nil, fmt.Errorf("spell: load %s: %w", path, err)
	}

	rt := &spellScript{}
	script := tengo.NewScript(src)
	_ = script.Add("target_x", 0.0)
	_ = script.Add("target_y", 0.0)
	_ = script.Add("count", 0)
	_ = script.Add("spacing", 0.0)
	_ = script.Add("spawn", &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		sx, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		sy, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		rt.spawns = append(rt.spawns, component.SpellSpawn{X: sx, Y: sy})
		return tengo.UndefinedValue, nil
	}})
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spell: compile %s: %w", path, err)
	}
	rt.compiled = compiled
	c.compiled[name] = rt
	return rt, nil
}

// evenFan lays count spawns spacing px apart, centered on x.
func evenFan(name string, spec prefabs.SpellSpec, x, y float64) []component.SpellSpawn {
	count := spec.Count
	if count <= 0 {
		count = 1
	}
	half := float64(count-1) / 2
	out := make([]component.SpellSpawn, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, component.SpellSpawn{Name: name, X: x + (float64(i)-half)*spec.Spacing, Y: y})
	}
	return out
}
