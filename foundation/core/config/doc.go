// Package config provides a generic TOML/YAML key/value configuration loader.
//
// Package: config
// Title: Pascal Configuration Loader
// Description: Loads TOML or YAML documents into a nested map and offers
//              numeric lookups with dotted keys. The calculator uses it for variable preset files; the typed
//              application configuration lives in pkg/core/config.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-18 v0.2.0: Numeric lookups and key flattening; typed getters,
//   env overrides and watching removed
//
// Usage:
//   import mdwconfig "github.com/msto63/pascal/foundation/core/config"
//
//   cfg, err := mdwconfig.Load("constants.toml")
//   if err != nil {
//     return err
//   }
//   for _, key := range cfg.Keys() {
//     if v, ok := cfg.GetNumber(key); ok {
//       // bind key to v
//     }
//   }
package config
