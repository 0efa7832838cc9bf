// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// SurfaceOfRevolution is entity type 120: the surface generated by
// revolving a generatrix curve about an axis line, between a start and
// terminate angle (radians).
type SurfaceOfRevolution struct {
	EntityBase

	axisPtr  int
	curvePtr int

	Axis  *Line
	Curve Entity

	StartAngle     float64
	TerminateAngle float64
}

func (e *SurfaceOfRevolution) formNumbers() []int { return []int{0} }

func (e *SurfaceOfRevolution) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeSurfaceOfRevolution {
		return fmt.Errorf("surface of revolution: unexpected type code %d", typeCode)
	}
	if e.axisPtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	if e.curvePtr, _, err = fs.Pointer(); err != nil {
		return err
	}
	if e.StartAngle, _, err = fs.Real(); err != nil {
		return err
	}
	if e.TerminateAngle, _, err = fs.Real(); err != nil {
		return err
	}
	return fs.Finish()
}

func (e *SurfaceOfRevolution) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeSurfaceOfRevolution)
	if e.Axis != nil {
		fw.Pointer(e.Axis.DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	if e.Curve != nil {
		fw.Pointer(e.Curve.Base().DE.SequenceNumber)
	} else {
		fw.Int(0)
	}
	fw.Real(e.StartAngle, g.MinResolution)
	fw.Real(e.TerminateAngle, g.MinResolution)
	return fw.String(), nil
}

func (e *SurfaceOfRevolution) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}

	axisTarget, ok := index[absInt(e.axisPtr)]
	if !ok {
		e.logViolation(AnoDanglingPointerOnAssociate)
		e.degenerate = true
	} else if axis, ok := axisTarget.(*Line); ok {
		e.Axis = axis
		axis.AddReference(e)
	} else {
		e.logViolation(AnoWrongVariantOnAssociate)
		e.degenerate = true
	}

	curveTarget, ok := index[absInt(e.curvePtr)]
	if !ok {
		e.logViolation(AnoDanglingPointerOnAssociate)
		e.degenerate = true
	} else if !isCurveType(curveTarget.Base().DE.TypeCode) {
		e.logViolation(AnoWrongVariantOnAssociate)
		e.degenerate = true
	} else {
		e.Curve = curveTarget
		curveTarget.Base().AddReference(e)
	}
	return nil
}

func (e *SurfaceOfRevolution) unlinkChild(child Entity) bool {
	if child == Entity(e.Axis) {
		e.Axis = nil
		return true
	}
	if child == e.Curve {
		e.Curve = nil
		return true
	}
	return false
}

func (e *SurfaceOfRevolution) ownedChildren() []Entity {
	var out []Entity
	if e.Axis != nil {
		out = append(out, e.Axis)
	}
	if e.Curve != nil {
		out = append(out, e.Curve)
	}
	return out
}

func (e *SurfaceOfRevolution) rescale(factor float64) {}

func (e *SurfaceOfRevolution) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}

// RationalBSplineSurface is entity type 128.
type RationalBSplineSurface struct {
	EntityBase

	DegreeU, DegreeV     int
	ClosedU, ClosedV     bool
	Polynomial           bool
	PeriodicU, PeriodicV bool

	KnotsU, KnotsV []float64
	Weights        [][]float64
	ControlPts     [][][3]float64

	U0, U1, V0, V1 float64
}

func (e *RationalBSplineSurface) formNumbers() []int { return []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9} }

func (e *RationalBSplineSurface) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeRationalBSplineSurface {
		return fmt.Errorf("rational b-spline surface: unexpected type code %d", typeCode)
	}

	k1, _, err := fs.Int()
	if err != nil {
		return err
	}
	k2, _, err := fs.Int()
	if err != nil {
		return err
	}
	m1, _, err := fs.Int()
	if err != nil {
		return err
	}
	m2, _, err := fs.Int()
	if err != nil {
		return err
	}
	prop1, _, err := fs.Int()
	if err != nil {
		return err
	}
	prop2, _, err := fs.Int()
	if err != nil {
		return err
	}
	prop3, _, err := fs.Int()
	if err != nil {
		return err
	}
	prop4, _, err := fs.Int()
	if err != nil {
		return err
	}
	prop5, _, err := fs.Int()
	if err != nil {
		return err
	}
	e.DegreeU, e.DegreeV = int(m1), int(m2)
	e.ClosedU, e.ClosedV = prop1 == 1, prop2 == 1
	e.Polynomial = prop3 == 1
	e.PeriodicU, e.PeriodicV = prop4 == 1, prop5 == 1

	numU := int(k1) + 1
	numV := int(k2) + 1

	e.KnotsU = make([]float64, numU+int(m1)+1)
	for i := range e.KnotsU {
		if e.KnotsU[i], _, err = fs.Real(); err != nil {
			return err
		}
	}
	e.KnotsV = make([]float64, numV+int(m2)+1)
	for i := range e.KnotsV {
		if e.KnotsV[i], _, err = fs.Real(); err != nil {
			return err
		}
	}

	e.Weights = make([][]float64, numU)
	for i := range e.Weights {
		e.Weights[i] = make([]float64, numV)
		for j := range e.Weights[i] {
			if e.Weights[i][j], _, err = fs.Real(); err != nil {
				return err
			}
		}
	}

	e.ControlPts = make([][][3]float64, numU)
	for i := range e.ControlPts {
		e.ControlPts[i] = make([][3]float64, numV)
		for j := range e.ControlPts[i] {
			for c := 0; c < 3; c++ {
				if e.ControlPts[i][j][c], _, err = fs.Real(); err != nil {
					return err
				}
			}
		}
	}

	if e.U0, _, err = fs.Real(); err != nil {
		return err
	}
	if e.U1, _, err = fs.Real(); err != nil {
		return err
	}
	if e.V0, _, err = fs.Real(); err != nil {
		return err
	}
	if e.V1, _, err = fs.Real(); err != nil {
		return err
	}
	return fs.Finish()
}

func (e *RationalBSplineSurface) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeRationalBSplineSurface)
	numU := len(e.ControlPts)
	numV := 0
	if numU > 0 {
		numV = len(e.ControlPts[0])
	}
	fw.Int(int64(numU - 1))
	fw.Int(int64(numV - 1))
	fw.Int(int64(e.DegreeU))
	fw.Int(int64(e.DegreeV))
	fw.Int(boolToInt(e.ClosedU))
	fw.Int(boolToInt(e.ClosedV))
	fw.Int(boolToInt(e.Polynomial))
	fw.Int(boolToInt(e.PeriodicU))
	fw.Int(boolToInt(e.PeriodicV))
	for _, v := range e.KnotsU {
		fw.Real(v, g.MinResolution)
	}
	for _, v := range e.KnotsV {
		fw.Real(v, g.MinResolution)
	}
	for _, row := range e.Weights {
		for _, v := range row {
			fw.Real(v, g.MinResolution)
		}
	}
	for _, row := range e.ControlPts {
		for _, p := range row {
			fw.Real(p[0], g.MinResolution)
			fw.Real(p[1], g.MinResolution)
			fw.Real(p[2], g.MinResolution)
		}
	}
	fw.Real(e.U0, g.MinResolution)
	fw.Real(e.U1, g.MinResolution)
	fw.Real(e.V0, g.MinResolution)
	fw.Real(e.V1, g.MinResolution)
	return fw.String(), nil
}

func (e *RationalBSplineSurface) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	return nil
}

func (e *RationalBSplineSurface) unlinkChild(child Entity) bool { return false }
func (e *RationalBSplineSurface) ownedChildren() []Entity       { return nil }

func (e *RationalBSplineSurface) rescale(factor float64) {
	for i := range e.ControlPts {
		for j := range e.ControlPts[i] {
			e.ControlPts[i][j][0] *= factor
			e.ControlPts[i][j][1] *= factor
			e.ControlPts[i][j][2] *= factor
		}
	}
}

func (e *RationalBSplineSurface) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}
