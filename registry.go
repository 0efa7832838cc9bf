// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

// constructor builds a zero-value typed Entity for one type code.
type constructor func() Entity

// registry is the closed type-code → constructor mapping. It is the
// only legitimate path for allocating a typed entity; Model.NewEntity and
// the resolver's shell pass both go through it.
var registry = map[int]constructor{
	TypeCircularArc:            func() Entity { return &CircularArc{} },
	TypeCompositeCurve:         func() Entity { return &CompositeCurve{} },
	TypeConic:                  func() Entity { return &Conic{} },
	TypeLine:                   func() Entity { return &Line{} },
	TypeSurfaceOfRevolution:    func() Entity { return &SurfaceOfRevolution{} },
	TypeTransformationMatrix:   func() Entity { return &TransformationMatrix{} },
	TypeRationalBSplineCurve:   func() Entity { return &RationalBSplineCurve{} },
	TypeRationalBSplineSurface: func() Entity { return &RationalBSplineSurface{} },
	TypeCurveOnParametricSurf:  func() Entity { return &CurveOnParametricSurface{} },
	TypeTrimmedParametricSurf:  func() Entity { return &TrimmedParametricSurface{} },
	TypeSubfigureDefinition:    func() Entity { return &SubfigureDefinition{} },
	TypeColorDefinition:        func() Entity { return &ColorDefinition{} },
	TypeAssociativityInstance:  func() Entity { return &AssociativityInstance{} },
	TypeProperty:               func() Entity { return &Property{} },
	TypeSingularSubfigInstance: func() Entity { return &SingularSubfigureInstance{} },
}

// construct allocates a typed Entity for typeCode, or a NullEntity if the
// code is not in the registry; an unknown type code is recoverable, not
// an error.
func construct(typeCode int) Entity {
	if ctor, ok := registry[typeCode]; ok {
		return ctor()
	}
	return newNullEntity()
}
