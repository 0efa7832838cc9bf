// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// ColorDefinition is entity type 314: a CMY colour triple, each component
// in [0,100], with an optional colour name.
type ColorDefinition struct {
	EntityBase

	C, M, Y float64
	Name    string
}

func (e *ColorDefinition) formNumbers() []int { return []int{0} }

func (e *ColorDefinition) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeColorDefinition {
		return fmt.Errorf("color definition: unexpected type code %d", typeCode)
	}
	if e.C, _, err = fs.Real(); err != nil {
		return err
	}
	if e.M, _, err = fs.Real(); err != nil {
		return err
	}
	if e.Y, _, err = fs.Real(); err != nil {
		return err
	}
	// The colour name is an optional trailing field: the Y field may
	// itself already have consumed the record delimiter if the name was
	// omitted entirely rather than left blank.
	if fs.done {
		return fs.Finish()
	}
	if e.Name, _, err = fs.Hollerith(); err != nil {
		return err
	}
	return fs.Finish()
}

func (e *ColorDefinition) formatPD(d delims, g *Global) (string, error) {
	if e.C < 0 || e.C > 100 || e.M < 0 || e.M > 100 || e.Y < 0 || e.Y > 100 {
		return "", fmt.Errorf("%w: color component out of [0,100]", ErrInvalid)
	}
	fw := newFieldWriter(d)
	fw.Int(TypeColorDefinition)
	fw.Real(e.C, 0)
	fw.Real(e.M, 0)
	fw.Real(e.Y, 0)
	if e.Name != "" {
		fw.Hollerith(e.Name)
	}
	return fw.String(), nil
}

func (e *ColorDefinition) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	return nil
}

func (e *ColorDefinition) unlinkChild(child Entity) bool { return false }
func (e *ColorDefinition) ownedChildren() []Entity       { return nil }
func (e *ColorDefinition) rescale(factor float64)        {}

func (e *ColorDefinition) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}
