// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// isCurveType reports whether typeCode is one of the curve entity types a
// CompositeCurve may reference as a segment.
func isCurveType(typeCode int) bool {
	switch typeCode {
	case TypeCircularArc, TypeConic, TypeLine, TypeRationalBSplineCurve:
		return true
	default:
		return false
	}
}

// CompositeCurve is entity type 102: an ordered, contiguous chain of curve
// segments, each an owning child reference.
type CompositeCurve struct {
	EntityBase

	segmentPtrs []int
	Segments    []Entity
}

func (e *CompositeCurve) formNumbers() []int { return []int{0} }

func (e *CompositeCurve) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeCompositeCurve {
		return fmt.Errorf("composite curve: unexpected type code %d", typeCode)
	}
	n, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.segmentPtrs = make([]int, n)
	for i := range e.segmentPtrs {
		p, _, err := fs.Pointer()
		if err != nil {
			return err
		}
		e.segmentPtrs[i] = p
	}
	return fs.Finish()
}

func (e *CompositeCurve) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeCompositeCurve)
	fw.Int(int64(len(e.Segments)))
	for _, s := range e.Segments {
		fw.Pointer(s.Base().DE.SequenceNumber)
	}
	return fw.String(), nil
}

func (e *CompositeCurve) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	e.Segments = nil
	for _, p := range e.segmentPtrs {
		target, ok := index[absInt(p)]
		if !ok {
			e.logViolation(AnoDanglingPointerOnAssociate)
			e.degenerate = true
			continue
		}
		if !isCurveType(target.Base().DE.TypeCode) {
			e.logViolation(AnoWrongVariantOnAssociate)
			e.degenerate = true
			continue
		}
		e.Segments = append(e.Segments, target)
		target.Base().AddReference(e)
	}
	return nil
}

// AddSegment appends child to the composite curve's segment list and
// installs the back-reference, provided child is a recognised curve type.
func (e *CompositeCurve) AddSegment(child Entity) error {
	if !isCurveType(child.Base().DE.TypeCode) {
		return fmt.Errorf("%w: composite curve segment type %d", ErrWrongVariant, child.Base().DE.TypeCode)
	}
	e.Segments = append(e.Segments, child)
	child.Base().AddReference(e)
	return nil
}

func (e *CompositeCurve) unlinkChild(child Entity) bool {
	for i, s := range e.Segments {
		if s == child {
			e.Segments = append(e.Segments[:i], e.Segments[i+1:]...)
			return true
		}
	}
	return false
}

func (e *CompositeCurve) ownedChildren() []Entity {
	out := make([]Entity, len(e.Segments))
	copy(out, e.Segments)
	return out
}

func (e *CompositeCurve) rescale(factor float64) {
	// Geometry lives on the segments themselves; the resolver rescales
	// every entity once, so the composite has nothing additional to scale.
}

func (e *CompositeCurve) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}
