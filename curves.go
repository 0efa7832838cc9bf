// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// CircularArc is entity type 100: a circular arc in a plane parallel to
// XY, at height ZT, given by its center and its start/end points.
type CircularArc struct {
	EntityBase

	ZT               float64
	CenterX, CenterY float64
	StartX, StartY   float64
	EndX, EndY       float64
}

func (e *CircularArc) formNumbers() []int { return []int{0} }

func (e *CircularArc) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeCircularArc {
		return fmt.Errorf("circular arc: unexpected type code %d", typeCode)
	}
	vals := make([]float64, 7)
	for i := range vals {
		v, _, err := fs.Real()
		if err != nil {
			return err
		}
		vals[i] = v
	}
	if err := fs.Finish(); err != nil {
		return err
	}
	e.ZT, e.CenterX, e.CenterY, e.StartX, e.StartY, e.EndX, e.EndY =
		vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6]
	return nil
}

func (e *CircularArc) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeCircularArc)
	for _, v := range []float64{e.ZT, e.CenterX, e.CenterY, e.StartX, e.StartY, e.EndX, e.EndY} {
		fw.Real(v, g.MinResolution)
	}
	return fw.String(), nil
}

func (e *CircularArc) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	return nil
}

func (e *CircularArc) unlinkChild(child Entity) bool { return false }
func (e *CircularArc) ownedChildren() []Entity       { return nil }

func (e *CircularArc) rescale(factor float64) {
	e.ZT *= factor
	e.CenterX *= factor
	e.CenterY *= factor
	e.StartX *= factor
	e.StartY *= factor
	e.EndX *= factor
	e.EndY *= factor
}

func (e *CircularArc) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}

// Conic is entity type 104: a conic arc defined by the implicit equation
// A·x² + B·xy + C·y² + D·x + E·y + F = 0 in the plane Z = ZT, bounded by a
// start and end point. FormNumber selects 0=ellipse, 1=hyperbola,
// 2=parabola.
type Conic struct {
	EntityBase

	A, B, C, D, E, F float64
	ZT               float64
	StartX, StartY   float64
	EndX, EndY       float64
}

const (
	ConicEllipse   = 0
	ConicHyperbola = 1
	ConicParabola  = 2
)

func (e *Conic) formNumbers() []int { return []int{ConicEllipse, ConicHyperbola, ConicParabola} }

func (e *Conic) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeConic {
		return fmt.Errorf("conic: unexpected type code %d", typeCode)
	}
	vals := make([]float64, 11)
	for i := range vals {
		v, _, err := fs.Real()
		if err != nil {
			return err
		}
		vals[i] = v
	}
	if err := fs.Finish(); err != nil {
		return err
	}
	e.A, e.B, e.C, e.D, e.E, e.F = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	e.ZT, e.StartX, e.StartY, e.EndX, e.EndY = vals[6], vals[7], vals[8], vals[9], vals[10]
	return nil
}

func (e *Conic) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeConic)
	for _, v := range []float64{e.A, e.B, e.C, e.D, e.E, e.F, e.ZT, e.StartX, e.StartY, e.EndX, e.EndY} {
		fw.Real(v, g.MinResolution)
	}
	return fw.String(), nil
}

func (e *Conic) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	return nil
}

func (e *Conic) unlinkChild(child Entity) bool { return false }
func (e *Conic) ownedChildren() []Entity       { return nil }

// rescale rescales a conic's implicit-equation coefficients consistently
// with its coordinate-bearing fields: for A x² + B xy + C y² + D x + E y +
// F = 0 to describe the same curve under x,y → factor·x,factor·y, D and E
// scale by factor and F by factor².
func (e *Conic) rescale(factor float64) {
	e.D *= factor
	e.E *= factor
	e.F *= factor * factor
	e.ZT *= factor
	e.StartX *= factor
	e.StartY *= factor
	e.EndX *= factor
	e.EndY *= factor
}

func (e *Conic) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}

// Line is entity type 110: a bounded, semi-bounded, or unbounded line
// segment from (X1,Y1,Z1) to (X2,Y2,Z2).
type Line struct {
	EntityBase

	X1, Y1, Z1 float64
	X2, Y2, Z2 float64
}

const (
	LineBounded     = 0
	LineSemiBounded = 1
	LineUnbounded   = 2
)

func (e *Line) formNumbers() []int { return []int{LineBounded, LineSemiBounded, LineUnbounded} }

func (e *Line) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeLine {
		return fmt.Errorf("line: unexpected type code %d", typeCode)
	}
	vals := make([]float64, 6)
	for i := range vals {
		v, _, err := fs.Real()
		if err != nil {
			return err
		}
		vals[i] = v
	}
	if err := fs.Finish(); err != nil {
		return err
	}
	e.X1, e.Y1, e.Z1, e.X2, e.Y2, e.Z2 = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	return nil
}

func (e *Line) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeLine)
	for _, v := range []float64{e.X1, e.Y1, e.Z1, e.X2, e.Y2, e.Z2} {
		fw.Real(v, g.MinResolution)
	}
	return fw.String(), nil
}

func (e *Line) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	return nil
}

func (e *Line) unlinkChild(child Entity) bool { return false }
func (e *Line) ownedChildren() []Entity       { return nil }

func (e *Line) rescale(factor float64) {
	e.X1 *= factor
	e.Y1 *= factor
	e.Z1 *= factor
	e.X2 *= factor
	e.Y2 *= factor
	e.Z2 *= factor
}

func (e *Line) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}

// Interpolate would return the point at parameter t along the line. The
// intended parametrisation for the semi-bounded and unbounded forms was
// never pinned down upstream, so this stays unimplemented rather than
// guessing.
func (e *Line) Interpolate(t float64) (x, y, z float64, err error) {
	return 0, 0, 0, fmt.Errorf("iges: Line.Interpolate is not implemented")
}

// RationalBSplineCurve is entity type 126.
type RationalBSplineCurve struct {
	EntityBase

	Degree     int
	Planar     bool
	Closed     bool
	Polynomial bool
	Periodic   bool

	Knots       []float64
	Weights     []float64
	ControlPts  [][3]float64
	StartParam  float64
	EndParam    float64
	Normal      [3]float64
	HasNormal   bool
}

func (e *RationalBSplineCurve) formNumbers() []int { return []int{0, 1, 2, 3, 4, 5} }

func (e *RationalBSplineCurve) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeRationalBSplineCurve {
		return fmt.Errorf("rational b-spline curve: unexpected type code %d", typeCode)
	}

	k, _, err := fs.Int()
	if err != nil {
		return err
	}
	m, _, err := fs.Int()
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
	e.Degree = int(m)
	e.Planar = prop1 == 1
	e.Closed = prop2 == 1
	e.Polynomial = prop3 == 1
	e.Periodic = prop4 == 1

	numCtrl := int(k) + 1
	numKnots := numCtrl + int(m) + 1

	e.Knots = make([]float64, numKnots)
	for i := range e.Knots {
		v, _, err := fs.Real()
		if err != nil {
			return err
		}
		e.Knots[i] = v
	}

	e.Weights = make([]float64, numCtrl)
	for i := range e.Weights {
		v, _, err := fs.Real()
		if err != nil {
			return err
		}
		e.Weights[i] = v
	}

	e.ControlPts = make([][3]float64, numCtrl)
	for i := range e.ControlPts {
		for j := 0; j < 3; j++ {
			v, _, err := fs.Real()
			if err != nil {
				return err
			}
			e.ControlPts[i][j] = v
		}
	}

	if e.StartParam, _, err = fs.Real(); err != nil {
		return err
	}
	if e.EndParam, _, err = fs.Real(); err != nil {
		return err
	}

	if e.Planar {
		for i := 0; i < 3; i++ {
			v, defaulted, err := fs.Real()
			if err != nil {
				return err
			}
			if !defaulted {
				e.HasNormal = true
			}
			e.Normal[i] = v
		}
	}

	return fs.Finish()
}

func (e *RationalBSplineCurve) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeRationalBSplineCurve)
	fw.Int(int64(len(e.ControlPts) - 1))
	fw.Int(int64(e.Degree))
	fw.Int(boolToInt(e.Planar))
	fw.Int(boolToInt(e.Closed))
	fw.Int(boolToInt(e.Polynomial))
	fw.Int(boolToInt(e.Periodic))
	for _, v := range e.Knots {
		fw.Real(v, g.MinResolution)
	}
	for _, v := range e.Weights {
		fw.Real(v, g.MinResolution)
	}
	for _, p := range e.ControlPts {
		fw.Real(p[0], g.MinResolution)
		fw.Real(p[1], g.MinResolution)
		fw.Real(p[2], g.MinResolution)
	}
	fw.Real(e.StartParam, g.MinResolution)
	fw.Real(e.EndParam, g.MinResolution)
	if e.Planar {
		fw.Real(e.Normal[0], g.MinResolution)
		fw.Real(e.Normal[1], g.MinResolution)
		fw.Real(e.Normal[2], g.MinResolution)
	}
	return fw.String(), nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (e *RationalBSplineCurve) associate(index map[int]Entity) error {
	if e.DE.Structure != 0 {
		e.DE.Structure = 0
		e.logViolation(AnoStructurePointerCleared)
	}
	return nil
}

func (e *RationalBSplineCurve) unlinkChild(child Entity) bool { return false }
func (e *RationalBSplineCurve) ownedChildren() []Entity       { return nil }

func (e *RationalBSplineCurve) rescale(factor float64) {
	for i := range e.ControlPts {
		e.ControlPts[i][0] *= factor
		e.ControlPts[i][1] *= factor
		e.ControlPts[i][2] *= factor
	}
	// The unit normal is a direction, not a coordinate; it does not scale.
}

func (e *RationalBSplineCurve) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}
