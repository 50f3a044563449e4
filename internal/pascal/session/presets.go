// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     session
// Description: Loading of variable presets from TOML or YAML files
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package session

import (
	"sort"
	"strings"

	mdwexecutor "github.com/msto63/pascal/foundation/calc/executor"
	mdwparser "github.com/msto63/pascal/foundation/calc/parser"
	mdwconfig "github.com/msto63/pascal/foundation/core/config"
	mdwerror "github.com/msto63/pascal/foundation/core/error"
)

// LoadPresets reads name = number pairs from path and binds them in env.
// Nested tables flatten with "_" (constants.c becomes constants_c).
// Bindings are inserted in sorted name order; nothing is bound on error.
func LoadPresets(env *mdwexecutor.Environment, path string) (int, error) {
	cfg, err := mdwconfig.Load(path)
	if err != nil {
		return 0, err
	}
	return applyPresets(env, cfg, path)
}

func applyPresets(env *mdwexecutor.Environment, cfg *mdwconfig.Config, source string) (int, error) {
	type preset struct {
		name  string
		value float64
	}

	var presets []preset
	for _, key := range cfg.Keys() {
		name := strings.ReplaceAll(key, ".", "_")
		if !mdwparser.IsIdentifier(name) {
			return 0, mdwerror.Newf("invalid preset name %q", name).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("session.LoadPresets").
				WithDetail("source", source).
				WithDetail("format", cfg.Format().String())
		}
		value, ok := cfg.GetNumber(key)
		if !ok {
			return 0, mdwerror.Newf("preset %q is not a number", name).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("session.LoadPresets").
				WithDetail("source", source).
				WithDetail("format", cfg.Format().String())
		}
		presets = append(presets, preset{name: name, value: value})
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].name < presets[j].name })
	for _, p := range presets {
		env.Set(p.name, p.value)
	}
	return len(presets), nil
}
