// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "sync/atomic"

// Handle is an external, read-only observer of one entity's lifetime.
// It is obtained once via NewHandle and polled with Valid;
// once an entity is destroyed by DelEntity (directly or via cascade), its
// flag flips false and stays false. A single model writer and many handle
// readers may use a Handle concurrently without further synchronisation,
// since the flag is backed by atomic.Bool and only ever transitions
// true → false, once.
type Handle struct {
	entity Entity
	valid  *atomic.Bool
}

// NewHandle attaches a new validity flag to e and returns a Handle
// observing it.
func NewHandle(e Entity) *Handle {
	return &Handle{entity: e, valid: e.Base().attachValidityFlag()}
}

// Valid reports whether the observed entity is still live.
func (h *Handle) Valid() bool {
	return h.valid.Load()
}

// Entity returns the observed entity, or nil once it has been destroyed.
func (h *Handle) Entity() Entity {
	if !h.Valid() {
		return nil
	}
	return h.entity
}
