// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "sync/atomic"

// Entity is the contract every directory/parameter-data variant honours
// The model is the only legitimate owner of any Entity; external
// code receives references, never ownership.
type Entity interface {
	// Base returns the common Directory-Entry/reference-list state every
	// entity carries.
	Base() *EntityBase

	// readPD consumes the raw parameter-data string for this entity. It
	// must not resolve pointers; they are recorded as integers for the
	// associate pass.
	readPD(raw string, g *Global) error

	// formatPD emits this entity's parameter-data payload (unsplit, before
	// 64-column wrapping).
	formatPD(d delims, g *Global) (string, error)

	// associate resolves every pointer integer this entity recorded
	// against the model's DE index, installing typed child pointers and
	// registering back-references.
	associate(index map[int]Entity) error

	// unlinkChild clears child if it is one of this entity's typed child
	// pointers; it reports whether it found and cleared it.
	unlinkChild(child Entity) bool

	// ownedChildren lists this entity's owning (non-extra) typed child
	// pointers, the edges the cycle detector walks.
	ownedChildren() []Entity

	// rescale multiplies every geometric coordinate this entity owns by
	// factor; a no-op for non-geometric variants.
	rescale(factor float64)

	// formNumbers is the whitelist of form numbers this variant accepts.
	// A nil/empty slice means "form 0 only".
	formNumbers() []int

	// SetHierarchy attempts to set the DE hierarchy sub-field; variants
	// that ignore it still return true with a logged warning.
	SetHierarchy(h HierarchyFlag) bool
}

// EntityBase holds the state common to every Entity: the Directory Entry,
// the back-reference list, extras, comments, and the validity-tracker
// flags external handles observe.
type EntityBase struct {
	DE    DirectoryEntry
	model *Model

	// refs lists entities that depend on this one via a typed child
	// pointer; mirrors some other entity's forward
	// pointer.
	refs []Entity

	extras Extras

	// comments are trailing PD text-comment lines carried verbatim.
	comments []string

	// degenerate is set when associate() fails to resolve one or more
	// pointers. No accessor checks it: typed fields of a degenerate entity
	// stay readable and writable.
	degenerate bool

	validityFlags []*atomic.Bool
}

// Base implements Entity.
func (b *EntityBase) Base() *EntityBase { return b }

// TypeCode returns the DE entity-type code.
func (b *EntityBase) TypeCode() int { return b.DE.TypeCode }

// Refs returns the parents depending on this entity.
func (b *EntityBase) Refs() []Entity {
	out := make([]Entity, len(b.refs))
	copy(out, b.refs)
	return out
}

// AddReference registers parent as depending on this entity. An entity with parents may not remain marked
// independent, so the subordinate status is raised to physically
// dependent if it still holds the default.
func (b *EntityBase) AddReference(parent Entity) {
	for _, r := range b.refs {
		if r == parent {
			return
		}
	}
	b.refs = append(b.refs, parent)
	if b.DE.Status.Subordinate == StatIndependent {
		b.DE.Status.Subordinate = StatPhysicallyDependent
	}
}

// DelReference removes parent from this entity's back-reference list.
func (b *EntityBase) DelReference(parent Entity) {
	for i, r := range b.refs {
		if r == parent {
			b.refs = append(b.refs[:i], b.refs[i+1:]...)
			return
		}
	}
}

// IsOrphaned reports whether this entity has no parents yet its DE still
// claims subordinate dependence.
func (b *EntityBase) IsOrphaned() bool {
	return len(b.refs) == 0 && b.DE.Status.Subordinate != StatIndependent
}

// IsDegenerate reports whether associate() failed to resolve one or more
// of this entity's pointers.
func (b *EntityBase) IsDegenerate() bool { return b.degenerate }

// Extras returns the optional property/associativity extras attached to
// this entity.
func (b *EntityBase) Extras() *Extras { return &b.extras }

// Comments returns the trailing text-comment lines carried with this
// entity.
func (b *EntityBase) Comments() []string { return b.comments }

// attachValidityFlag installs a new observer flag, initialised live
// (true), and returns it for the caller to poll. The flag is
// set and read with atomic.Bool rather than a bare bool: a Handle may be
// polled from a goroutine other than the one that eventually calls
// DelEntity, and the flag only ever transitions true -> false, once.
func (b *EntityBase) attachValidityFlag() *atomic.Bool {
	v := &atomic.Bool{}
	v.Store(true)
	b.validityFlags = append(b.validityFlags, v)
	return v
}

// invalidate flips every attached validity flag to false; called once, by
// the owning model, on destruction.
func (b *EntityBase) invalidate() {
	for _, f := range b.validityFlags {
		f.Store(false)
	}
}

// logViolation routes a structural-violation message (structure pointer
// cleared, dangling pointer, ...) through the owning model's logger, or is
// a no-op if this entity has not yet been attached to a model.
func (b *EntityBase) logViolation(format string, args ...interface{}) {
	if b.model != nil {
		b.model.logAnomaly(format, args...)
	}
}

// Extras carries the optional trailing PD pointers to associated property
// and general-note/associativity entities. These are non-owning
// references and may form arbitrary graphs.
type Extras struct {
	propertyPtrs      []int
	associativityPtrs []int

	Properties      []*Property
	Associativities []*AssociativityInstance
}

// associate resolves the raw extras pointers against the model index.
// Unlike owning child pointers, a dangling extras pointer is dropped with
// a logged anomaly rather than marking the owner degenerate, since extras
// are non-essential to the entity's own geometry.
func (e *Extras) associate(owner Entity, index map[int]Entity) {
	for _, p := range e.propertyPtrs {
		if p == 0 {
			continue
		}
		target, ok := index[absInt(p)]
		if !ok {
			owner.Base().logViolation(AnoDanglingPointerOnAssociate)
			continue
		}
		prop, ok := target.(*Property)
		if !ok {
			owner.Base().logViolation(AnoDanglingPointerOnAssociate)
			continue
		}
		e.Properties = append(e.Properties, prop)
		prop.Base().AddReference(owner)
	}
	for _, p := range e.associativityPtrs {
		if p == 0 {
			continue
		}
		target, ok := index[absInt(p)]
		if !ok {
			owner.Base().logViolation(AnoDanglingPointerOnAssociate)
			continue
		}
		assoc, ok := target.(*AssociativityInstance)
		if !ok {
			owner.Base().logViolation(AnoDanglingPointerOnAssociate)
			continue
		}
		e.Associativities = append(e.Associativities, assoc)
		assoc.Base().AddReference(owner)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// formAny is the formNumbers() sentinel for variants whose form number
// carries entity-specific data (e.g. an associativity class, a property
// kind) rather than selecting among a small fixed set of geometric
// variants, so no fixed whitelist applies.
const formAny = -1

// hasForm reports whether form is in the whitelist, treating a nil or
// empty whitelist as "form 0 only", and a whitelist containing formAny as
// "any form number accepted".
func hasForm(whitelist []int, form int) bool {
	if len(whitelist) == 0 {
		return form == 0
	}
	for _, f := range whitelist {
		if f == formAny || f == form {
			return true
		}
	}
	return false
}
