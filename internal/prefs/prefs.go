package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/logger"
)

// PreferencesPath is the document collection holding the durable tier.
const PreferencesPath = "preferences"

// Tier is a preference storage layer. Volatile lives for the process,
// session for one API session, local is durable.
type Tier string

const (
	TierVolatile Tier = "volatile"
	TierSession  Tier = "session"
	TierLocal    Tier = "local"
)

// tierPrecedence is the replace-merge order, strongest first.
var tierPrecedence = []Tier{TierVolatile, TierSession, TierLocal}

// EntryDef declares one preference entry within a store.
type EntryDef struct {
	// Key is the property key, the last segment of the full
	// <namespace>.<storeKey>.<propKey> key.
	Key string

	// Default is returned when no tier holds a valid value. Never written
	// back to storage.
	Default any

	// Validate parses a raw stored value into its typed form. An error
	// means the stored value is treated as absent.
	Validate func(raw json.RawMessage) (any, error)

	// Resolve overrides the replace merge. It receives the valid values
	// present per tier plus the default, and returns the effective value.
	// Nil means replace: strongest tier wins, then the default.
	Resolve func(values map[Tier]any, def any) any
}

// StoreDef declares a preference store: a named group of entries.
type StoreDef struct {
	Key     string
	Entries []EntryDef
}

type registeredStore struct {
	def     StoreDef
	entries map[string]EntryDef
}

// Manager owns all preference stores for one namespace. Registration
// happens at wiring time; duplicate or empty store keys are wiring bugs
// and panic. Safe for concurrent use after wiring.
type Manager struct {
	namespace string
	docs      *docstore.Store

	mu       sync.RWMutex
	stores   map[string]*registeredStore
	volatile map[string]json.RawMessage
	session  map[string]json.RawMessage

	watchMu  sync.RWMutex
	watchers map[int]func(fullKey string)
	nextID   int
}

// NewManager creates a Manager. docs persists the local tier; the volatile
// and session tiers are in-memory.
func NewManager(namespace string, docs *docstore.Store) *Manager {
	if namespace == "" {
		panic("prefs: empty namespace")
	}
	return &Manager{
		namespace: namespace,
		docs:      docs,
		stores:    make(map[string]*registeredStore),
		volatile:  make(map[string]json.RawMessage),
		session:   make(map[string]json.RawMessage),
		watchers:  make(map[int]func(string)),
	}
}

// Watch registers a callback fired after any successful Set, Clear, or
// ResetSession. ResetSession fires with key "*". The returned function
// unregisters.
func (m *Manager) Watch(fn func(fullKey string)) (unwatch func()) {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = fn
	return func() {
		m.watchMu.Lock()
		defer m.watchMu.Unlock()
		delete(m.watchers, id)
	}
}

func (m *Manager) notifyWatchers(fullKey string) {
	m.watchMu.RLock()
	fns := make([]func(string), 0, len(m.watchers))
	for _, fn := range m.watchers {
		fns = append(fns, fn)
	}
	m.watchMu.RUnlock()
	for _, fn := range fns {
		fn(fullKey)
	}
}

// Register adds a preference store. Panics on an empty or duplicate store
// key, or on an entry without a validator.
func (m *Manager) Register(def StoreDef) {
	if def.Key == "" {
		panic("prefs: store with empty key")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.stores[def.Key]; dup {
		panic(fmt.Sprintf("prefs: store %q registered twice", def.Key))
	}
	rs := &registeredStore{def: def, entries: make(map[string]EntryDef, len(def.Entries))}
	for _, e := range def.Entries {
		if e.Key == "" {
			panic(fmt.Sprintf("prefs: store %q has an entry with an empty key", def.Key))
		}
		if e.Validate == nil {
			panic(fmt.Sprintf("prefs: entry %q.%q has no validator", def.Key, e.Key))
		}
		if _, dup := rs.entries[e.Key]; dup {
			panic(fmt.Sprintf("prefs: entry %q.%q declared twice", def.Key, e.Key))
		}
		rs.entries[e.Key] = e
	}
	m.stores[def.Key] = rs
}

// FullKey builds the namespaced storage key for an entry.
func (m *Manager) FullKey(storeKey, propKey string) string {
	return m.namespace + "." + storeKey + "." + propKey
}

func (m *Manager) entry(storeKey, propKey string) (EntryDef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs, ok := m.stores[storeKey]
	if !ok {
		return EntryDef{}, errors.NewNotFoundError("preference store", storeKey)
	}
	e, ok := rs.entries[propKey]
	if !ok {
		return EntryDef{}, errors.NewNotFoundError("preference entry", storeKey+"."+propKey)
	}
	return e, nil
}

// Get resolves the effective value of an entry across tiers. A missing or
// invalid stored value falls back without being rewritten; the schema
// default is the final fallback.
func (m *Manager) Get(ctx context.Context, storeKey, propKey string) (any, error) {
	log := logger.FromContext(ctx).WithPrefix("prefs")

	e, err := m.entry(storeKey, propKey)
	if err != nil {
		return nil, err
	}
	key := m.FullKey(storeKey, propKey)

	values := make(map[Tier]any)
	for _, tier := range tierPrecedence {
		raw, ok := m.rawValue(ctx, tier, key)
		if !ok {
			continue
		}
		v, err := e.Validate(raw)
		if err != nil {
			log.Warn("invalid %s value for %s, falling back: %v", tier, key, err)
			continue
		}
		values[tier] = v
	}

	if e.Resolve != nil {
		return e.Resolve(values, e.Default), nil
	}
	for _, tier := range tierPrecedence {
		if v, ok := values[tier]; ok {
			return v, nil
		}
	}
	return e.Default, nil
}

// Set validates and writes an entry value into one tier.
func (m *Manager) Set(ctx context.Context, tier Tier, storeKey, propKey string, raw json.RawMessage) error {
	e, err := m.entry(storeKey, propKey)
	if err != nil {
		return err
	}
	if _, err := e.Validate(raw); err != nil {
		return errors.NewValidationError(m.FullKey(storeKey, propKey), err.Error())
	}
	key := m.FullKey(storeKey, propKey)

	switch tier {
	case TierVolatile:
		m.mu.Lock()
		m.volatile[key] = append(json.RawMessage(nil), raw...)
		m.mu.Unlock()
	case TierSession:
		m.mu.Lock()
		m.session[key] = append(json.RawMessage(nil), raw...)
		m.mu.Unlock()
	case TierLocal:
		if err := m.docs.Set(ctx, PreferencesPath, key, 1, raw); err != nil {
			return err
		}
	default:
		return errors.NewValidationError("tier", fmt.Sprintf("unknown tier %q", tier))
	}
	m.notifyWatchers(key)
	return nil
}

// Clear removes an entry value from one tier.
func (m *Manager) Clear(ctx context.Context, tier Tier, storeKey, propKey string) error {
	if _, err := m.entry(storeKey, propKey); err != nil {
		return err
	}
	key := m.FullKey(storeKey, propKey)
	switch tier {
	case TierVolatile:
		m.mu.Lock()
		delete(m.volatile, key)
		m.mu.Unlock()
	case TierSession:
		m.mu.Lock()
		delete(m.session, key)
		m.mu.Unlock()
	case TierLocal:
		if err := m.docs.Delete(ctx, PreferencesPath, key); err != nil {
			return err
		}
	default:
		return errors.NewValidationError("tier", fmt.Sprintf("unknown tier %q", tier))
	}
	m.notifyWatchers(key)
	return nil
}

// ResetSession drops every session-tier value, for a new API session.
func (m *Manager) ResetSession() {
	m.mu.Lock()
	m.session = make(map[string]json.RawMessage)
	m.mu.Unlock()
	m.notifyWatchers("*")
}

func (m *Manager) rawValue(ctx context.Context, tier Tier, key string) (json.RawMessage, bool) {
	switch tier {
	case TierVolatile:
		m.mu.RLock()
		raw, ok := m.volatile[key]
		m.mu.RUnlock()
		return raw, ok
	case TierSession:
		m.mu.RLock()
		raw, ok := m.session[key]
		m.mu.RUnlock()
		return raw, ok
	case TierLocal:
		doc, err := m.docs.Get(ctx, PreferencesPath, key)
		if err != nil {
			return nil, false
		}
		return doc.Data, true
	default:
		return nil, false
	}
}
