// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

// NullEntity is the shell constructed for an entity-type code the registry
// does not recognise. It preserves the raw PD string verbatim so
// the file round-trips losslessly, but offers no typed accessors.
type NullEntity struct {
	EntityBase
	raw string
}

func newNullEntity() Entity { return &NullEntity{} }

func (e *NullEntity) readPD(raw string, g *Global) error {
	e.raw = raw
	return nil
}

func (e *NullEntity) formatPD(d delims, g *Global) (string, error) {
	return e.raw, nil
}

func (e *NullEntity) associate(index map[int]Entity) error { return nil }

func (e *NullEntity) unlinkChild(child Entity) bool { return false }

func (e *NullEntity) ownedChildren() []Entity { return nil }

func (e *NullEntity) rescale(factor float64) {}

func (e *NullEntity) formNumbers() []int { return nil }

func (e *NullEntity) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}
