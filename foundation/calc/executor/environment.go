// File: environment.go
// Title: Variable Environment
// Description: Name to number bindings of one session. Bindings keep their
//              insertion order; reassigning a name keeps its position.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package executor

import (
	"math"
	"sync"
)

// Binding is one variable of an environment
type Binding struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Environment maps variable names to values
type Environment struct {
	mu     sync.RWMutex
	names  []string
	values map[string]float64
}

// NewEnvironment returns an environment seeded with PI
func NewEnvironment() *Environment {
	env := NewEmptyEnvironment()
	env.Set("PI", math.Pi)
	return env
}

// NewEmptyEnvironment returns an environment without any bindings
func NewEmptyEnvironment() *Environment {
	return &Environment{values: make(map[string]float64)}
}

// Get returns the value bound to name
func (e *Environment) Get(name string) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.values[name]
	return v, ok
}

// Set binds name to value
func (e *Environment) Set(name string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}
	e.values[name] = value
}

// Delete removes name and reports whether it was bound
func (e *Environment) Delete(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.values[name]; !ok {
		return false
	}
	delete(e.values, name)
	for i, n := range e.names {
		if n == name {
			e.names = append(e.names[:i], e.names[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of bindings
func (e *Environment) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.names)
}

// Bindings returns all bindings in insertion order
func (e *Environment) Bindings() []Binding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	result := make([]Binding, len(e.names))
	for i, n := range e.names {
		result[i] = Binding{Name: n, Value: e.values[n]}
	}
	return result
}
