// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// AssociativityInstance is entity type 402: a named grouping that
// associates an ordered list of entities under a class number, attached
// as an extra on any entity.
type AssociativityInstance struct {
	EntityBase

	Class int

	itemPtrs []int
	Items    []Entity
}

// formNumbers is wide open: the DE form number is this entity's
// associativity class, not a fixed variant selector.
func (e *AssociativityInstance) formNumbers() []int { return []int{formAny} }

func (e *AssociativityInstance) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeAssociativityInstance {
		return fmt.Errorf("associativity instance: unexpected type code %d", typeCode)
	}
	e.Class = e.DE.FormNumber
	n, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.itemPtrs = make([]int, n)
	for i := range e.itemPtrs {
		if e.itemPtrs[i], _, err = fs.Pointer(); err != nil {
			return err
		}
	}
	return fs.Finish()
}

func (e *AssociativityInstance) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeAssociativityInstance)
	fw.Int(int64(len(e.Items)))
	for _, it := range e.Items {
		fw.Pointer(it.Base().DE.SequenceNumber)
	}
	return fw.String(), nil
}

func (e *AssociativityInstance) associate(index map[int]Entity) error {
	e.Items = nil
	for _, p := range e.itemPtrs {
		target, ok := index[absInt(p)]
		if !ok {
			e.logViolation(AnoDanglingPointerOnAssociate)
			continue
		}
		e.Items = append(e.Items, target)
	}
	return nil
}

func (e *AssociativityInstance) unlinkChild(child Entity) bool {
	for i, it := range e.Items {
		if it == child {
			e.Items = append(e.Items[:i], e.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ownedChildren is empty: the items an associativity instance names are
// not owned by it; item pointers are non-owning references, not
// parent/child edges.
func (e *AssociativityInstance) ownedChildren() []Entity { return nil }

func (e *AssociativityInstance) rescale(factor float64) {}

func (e *AssociativityInstance) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}

// Property is entity type 406: an arbitrary bag of values attached as an
// extra on any entity. The general note form (PD only carries a
// property count and then form-specific fields) is represented here as a
// flat list of raw text tokens, which is sufficient for every form since
// this codec does not interpret property semantics.
type Property struct {
	EntityBase

	Values []string
}

// formNumbers is wide open: a property entity's form selects which
// predefined property (or a general note) it carries, not a geometric
// variant this codec interprets.
func (e *Property) formNumbers() []int { return []int{formAny} }

func (e *Property) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeProperty {
		return fmt.Errorf("property: unexpected type code %d", typeCode)
	}
	n, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.Values = make([]string, n)
	for i := range e.Values {
		if e.Values[i], _, err = fs.token(); err != nil {
			return err
		}
	}
	return fs.Finish()
}

func (e *Property) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeProperty)
	fw.Int(int64(len(e.Values)))
	for _, v := range e.Values {
		fw.fields = append(fw.fields, v)
	}
	return fw.String(), nil
}

func (e *Property) associate(index map[int]Entity) error { return nil }
func (e *Property) unlinkChild(child Entity) bool         { return false }
func (e *Property) ownedChildren() []Entity               { return nil }
func (e *Property) rescale(factor float64)                {}

func (e *Property) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}
