// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// SubfigureDefinition is entity type 308: a named, ordered collection of
// member entities that a SingularSubfigureInstance (408) places.
type SubfigureDefinition struct {
	EntityBase

	Depth int
	Name  string

	memberPtrs []int
	Members    []Entity
}

func (e *SubfigureDefinition) formNumbers() []int { return []int{0} }

func (e *SubfigureDefinition) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeSubfigureDefinition {
		return fmt.Errorf("subfigure definition: unexpected type code %d", typeCode)
	}
	depth, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.Depth = int(depth)
	if e.Name, _, err = fs.Hollerith(); err != nil {
		return err
	}
	n, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.memberPtrs = make([]int, n)
	for i := range e.memberPtrs {
		if e.memberPtrs[i], _, err = fs.Pointer(); err != nil {
			return err
		}
	}
	return fs.Finish()
}

func (e *SubfigureDefinition) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeSubfigureDefinition)
	fw.Int(int64(e.Depth))
	fw.Hollerith(e.Name)
	fw.Int(int64(len(e.Members)))
	for _, m := range e.Members {
		fw.Pointer(m.Base().DE.SequenceNumber)
	}
	return fw.String(), nil
}

func (e *SubfigureDefinition) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	e.Members = nil
	for _, p := range e.memberPtrs {
		target, ok := index[absInt(p)]
		if !ok {
			e.logViolation(AnoDanglingPointerOnAssociate)
			e.degenerate = true
			continue
		}
		e.Members = append(e.Members, target)
		target.Base().AddReference(e)
	}
	return nil
}

// AddMember appends child to the subfigure's member list and installs the
// back-reference.
func (e *SubfigureDefinition) AddMember(child Entity) {
	e.Members = append(e.Members, child)
	child.Base().AddReference(e)
}

func (e *SubfigureDefinition) unlinkChild(child Entity) bool {
	for i, m := range e.Members {
		if m == child {
			e.Members = append(e.Members[:i], e.Members[i+1:]...)
			return true
		}
	}
	return false
}

func (e *SubfigureDefinition) ownedChildren() []Entity {
	out := make([]Entity, len(e.Members))
	copy(out, e.Members)
	return out
}

func (e *SubfigureDefinition) rescale(factor float64) {}

func (e *SubfigureDefinition) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}

// SingularSubfigureInstance is entity type 408: one placement of a
// SubfigureDefinition at an offset and uniform scale.
type SingularSubfigureInstance struct {
	EntityBase

	defPtr int
	Def    *SubfigureDefinition

	X, Y, Z float64
	Scale   float64
}

func (e *SingularSubfigureInstance) formNumbers() []int { return []int{0} }

func (e *SingularSubfigureInstance) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeSingularSubfigInstance {
		return fmt.Errorf("singular subfigure instance: unexpected type code %d", typeCode)
	}
	if e.defPtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	if e.X, _, err = fs.Real(); err != nil {
		return err
	}
	if e.Y, _, err = fs.Real(); err != nil {
		return err
	}
	if e.Z, _, err = fs.Real(); err != nil {
		return err
	}
	scale, defaulted, err := fs.Real()
	if err != nil {
		return err
	}
	if defaulted {
		scale = 1.0
	}
	e.Scale = scale
	return fs.Finish()
}

func (e *SingularSubfigureInstance) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeSingularSubfigInstance)
	if e.Def != nil {
		fw.Pointer(e.Def.DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	fw.Real(e.X, g.MinResolution)
	fw.Real(e.Y, g.MinResolution)
	fw.Real(e.Z, g.MinResolution)
	fw.Real(e.Scale, g.MinResolution)
	return fw.String(), nil
}

func (e *SingularSubfigureInstance) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	target, ok := index[absInt(e.defPtr)]
	if !ok {
		e.logViolation(AnoDanglingPointerOnAssociate)
		e.degenerate = true
		return nil
	}
	def, ok := target.(*SubfigureDefinition)
	if !ok {
		e.logViolation(AnoWrongVariantOnAssociate)
		e.degenerate = true
		return nil
	}
	e.Def = def
	def.AddReference(e)
	return nil
}

func (e *SingularSubfigureInstance) unlinkChild(child Entity) bool {
	if def, ok := child.(*SubfigureDefinition); ok && e.Def == def {
		e.Def = nil
		return true
	}
	return false
}

func (e *SingularSubfigureInstance) ownedChildren() []Entity {
	if e.Def != nil {
		return []Entity{e.Def}
	}
	return nil
}

func (e *SingularSubfigureInstance) rescale(factor float64) {
	e.X *= factor
	e.Y *= factor
	e.Z *= factor
}

func (e *SingularSubfigureInstance) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}
