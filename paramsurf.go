// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// CurveOnParametricSurface is entity type 142: a curve lying on a
// parametric surface, optionally carrying both a parameter-space and a
// model-space representation.
type CurveOnParametricSurface struct {
	EntityBase

	Create CurveCreateFlag
	Pref   BoundPrefFlag

	surfacePtr int
	paramPtr   int
	modelPtr   int

	Surface    Entity
	ParamCurve Entity
	ModelCurve Entity // nil if not supplied (CPTR == 0)
}

func (e *CurveOnParametricSurface) formNumbers() []int { return []int{0, 1} }

func (e *CurveOnParametricSurface) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeCurveOnParametricSurf {
		return fmt.Errorf("curve on parametric surface: unexpected type code %d", typeCode)
	}
	create, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.Create = CurveCreateFlag(create)
	if e.surfacePtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	if e.paramPtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	if e.modelPtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	pref, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.Pref = BoundPrefFlag(pref)
	return fs.Finish()
}

func (e *CurveOnParametricSurface) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeCurveOnParametricSurf)
	fw.Int(int64(e.Create))
	if e.Surface != nil {
		fw.Pointer(e.Surface.Base().DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	if e.ParamCurve != nil {
		fw.Pointer(e.ParamCurve.Base().DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	if e.ModelCurve != nil {
		fw.Pointer(e.ModelCurve.Base().DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	fw.Int(int64(e.Pref))
	return fw.String(), nil
}

func (e *CurveOnParametricSurface) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}

	surf, ok := index[absInt(e.surfacePtr)]
	if !ok {
		e.logViolation(AnoDanglingPointerOnAssociate)
		e.degenerate = true
	} else {
		e.Surface = surf
		surf.Base().AddReference(e)
	}

	param, ok := index[absInt(e.paramPtr)]
	if !ok {
		e.logViolation(AnoDanglingPointerOnAssociate)
		e.degenerate = true
	} else {
		e.ParamCurve = param
		param.Base().AddReference(e)
	}

	if e.modelPtr != 0 {
		model, ok := index[absInt(e.modelPtr)]
		if !ok {
			e.logViolation(AnoDanglingPointerOnAssociate)
			e.degenerate = true
		} else {
			e.ModelCurve = model
			model.Base().AddReference(e)
		}
	}
	return nil
}

func (e *CurveOnParametricSurface) unlinkChild(child Entity) bool {
	switch {
	case child == e.Surface:
		e.Surface = nil
	case child == e.ParamCurve:
		e.ParamCurve = nil
	case child == e.ModelCurve:
		e.ModelCurve = nil
	default:
		return false
	}
	return true
}

func (e *CurveOnParametricSurface) ownedChildren() []Entity {
	var out []Entity
	if e.Surface != nil {
		out = append(out, e.Surface)
	}
	if e.ParamCurve != nil {
		out = append(out, e.ParamCurve)
	}
	if e.ModelCurve != nil {
		out = append(out, e.ModelCurve)
	}
	return out
}

func (e *CurveOnParametricSurface) rescale(factor float64) {}

func (e *CurveOnParametricSurface) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}

// TrimmedParametricSurface is entity type 144: a parametric surface
// trimmed by an outer boundary and zero or more inner (hole) boundaries,
// each a composite curve.
type TrimmedParametricSurface struct {
	EntityBase

	Pref BoundPrefFlag

	surfacePtr int
	outerPtr   int
	innerPtrs  []int

	Surface Entity
	// Outer is nil when the surface's own natural boundary is used as
	// the outer boundary (N1 == 1 on read).
	Outer  Entity
	Inners []Entity
}

func (e *TrimmedParametricSurface) formNumbers() []int { return []int{0} }

func (e *TrimmedParametricSurface) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeTrimmedParametricSurf {
		return fmt.Errorf("trimmed parametric surface: unexpected type code %d", typeCode)
	}
	if e.surfacePtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	n1, _, err := fs.Int()
	if err != nil {
		return err
	}
	n2, _, err := fs.Int()
	if err != nil {
		return err
	}
	if e.outerPtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	if n1 == 1 {
		e.outerPtr = 0
	}
	e.innerPtrs = make([]int, n2)
	for i := range e.innerPtrs {
		if e.innerPtrs[i], _, err = fs.Pointer(); err != nil {
			return err
		}
	}
	pref, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.Pref = BoundPrefFlag(pref)
	return fs.Finish()
}

func (e *TrimmedParametricSurface) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeTrimmedParametricSurf)
	if e.Surface != nil {
		fw.Pointer(e.Surface.Base().DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	if e.Outer == nil {
		fw.Int(1)
	} else {
		fw.Int(0)
	}
	fw.Int(int64(len(e.Inners)))
	if e.Outer != nil {
		fw.Pointer(e.Outer.Base().DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	for _, inner := range e.Inners {
		fw.Pointer(inner.Base().DE.SequenceNumber)
	}
	fw.Int(int64(e.Pref))
	return fw.String(), nil
}

func (e *TrimmedParametricSurface) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}

	surf, ok := index[absInt(e.surfacePtr)]
	if !ok {
		e.logViolation(AnoDanglingPointerOnAssociate)
		e.degenerate = true
	} else {
		e.Surface = surf
		surf.Base().AddReference(e)
	}

	if e.outerPtr != 0 {
		outer, ok := index[absInt(e.outerPtr)]
		if !ok {
			e.logViolation(AnoDanglingPointerOnAssociate)
			e.degenerate = true
		} else {
			e.Outer = outer
			outer.Base().AddReference(e)
		}
	}

	e.Inners = nil
	for _, p := range e.innerPtrs {
		inner, ok := index[absInt(p)]
		if !ok {
			e.logViolation(AnoDanglingPointerOnAssociate)
			e.degenerate = true
			continue
		}
		e.Inners = append(e.Inners, inner)
		inner.Base().AddReference(e)
	}
	return nil
}

func (e *TrimmedParametricSurface) unlinkChild(child Entity) bool {
	if child == e.Surface {
		e.Surface = nil
		return true
	}
	if child == e.Outer {
		e.Outer = nil
		return true
	}
	for i, inner := range e.Inners {
		if inner == child {
			e.Inners = append(e.Inners[:i], e.Inners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *TrimmedParametricSurface) ownedChildren() []Entity {
	var out []Entity
	if e.Surface != nil {
		out = append(out, e.Surface)
	}
	if e.Outer != nil {
		out = append(out, e.Outer)
	}
	out = append(out, e.Inners...)
	return out
}

func (e *TrimmedParametricSurface) rescale(factor float64) {}

func (e *TrimmedParametricSurface) SetHierarchy(h HierarchyFlag) bool {
	e.DE.Status.Hierarchy = h
	return true
}
