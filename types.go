// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// Entity-type integer codes from IGES 5.3. Only a subset has a typed Go
// variant; the remainder are handled by NullEntity.
const (
	TypeCircularArc            = 100
	TypeCompositeCurve         = 102
	TypeConic                  = 104
	TypeLine                   = 110
	TypeSurfaceOfRevolution    = 120
	TypeTransformationMatrix   = 124
	TypeRationalBSplineCurve   = 126
	TypeRationalBSplineSurface = 128
	TypeOffsetCurve            = 141
	TypeCurveOnParametricSurf  = 142
	TypeBoundedSurface         = 143
	TypeTrimmedParametricSurf  = 144
	TypeRightCircularCylinder  = 154
	TypeSolidOfRevolution      = 164
	TypePlane                  = 180
	TypeManifestSolidBRep      = 186
	TypeSubfigureDefinition    = 308
	TypeColorDefinition        = 314
	TypeAssociativityInstance  = 402
	TypeProperty               = 406
	TypeSingularSubfigInstance = 408
	TypeViewEntity             = 410
	TypeColorTableAssoc        = 502
	TypeAssociativityDef       = 504
	TypeLineFontDefinition     = 508
	TypeMacroDefinition        = 510
	TypeSubfigureDefinitionAlt = 514
)

// typedTypeCodes lists every code the registry constructs a typed
// variant for; everything else resolves to NullEntity.
var typedTypeCodes = map[int]bool{
	TypeCircularArc:            true,
	TypeCompositeCurve:         true,
	TypeConic:                  true,
	TypeLine:                   true,
	TypeSurfaceOfRevolution:    true,
	TypeTransformationMatrix:   true,
	TypeRationalBSplineCurve:   true,
	TypeRationalBSplineSurface: true,
	TypeCurveOnParametricSurf:  true,
	TypeTrimmedParametricSurf:  true,
	TypeSubfigureDefinition:    true,
	TypeColorDefinition:        true,
	TypeAssociativityInstance:  true,
	TypeProperty:               true,
	TypeSingularSubfigInstance: true,
}

// BlankStatus is the first status sub-field.
type BlankStatus int

const (
	BlankVisible BlankStatus = 0
	BlankBlanked BlankStatus = 1
)

// SubordinateStatus is the second status sub-field.
type SubordinateStatus int

const (
	StatIndependent         SubordinateStatus = 0
	StatPhysicallyDependent SubordinateStatus = 1
	StatLogicallyDependent  SubordinateStatus = 2
	StatPhysAndLogDependent SubordinateStatus = 3
)

// EntityUseFlag is the third status sub-field.
type EntityUseFlag int

const (
	UseGeometry            EntityUseFlag = 0
	UseAnnotation          EntityUseFlag = 1
	UseDefinition          EntityUseFlag = 2
	UseOther               EntityUseFlag = 3
	UseLogicalOrPositional EntityUseFlag = 4
	Use2DParametric        EntityUseFlag = 5
	UseConstructionGeom    EntityUseFlag = 6
)

// HierarchyFlag is the fourth status sub-field.
type HierarchyFlag int

const (
	HierarchyGlobalTopDown HierarchyFlag = 0
	HierarchyGlobalDefer   HierarchyFlag = 1
	HierarchyUseAttribute  HierarchyFlag = 2
)

func (b BlankStatus) String() string {
	switch b {
	case BlankVisible:
		return "Visible"
	case BlankBlanked:
		return "Blanked"
	default:
		return fmt.Sprintf("BlankStatus(%d)", int(b))
	}
}

func (s SubordinateStatus) String() string {
	switch s {
	case StatIndependent:
		return "Independent"
	case StatPhysicallyDependent:
		return "PhysicallyDependent"
	case StatLogicallyDependent:
		return "LogicallyDependent"
	case StatPhysAndLogDependent:
		return "PhysAndLogDependent"
	default:
		return fmt.Sprintf("SubordinateStatus(%d)", int(s))
	}
}

func (u EntityUseFlag) String() string {
	switch u {
	case UseGeometry:
		return "Geometry"
	case UseAnnotation:
		return "Annotation"
	case UseDefinition:
		return "Definition"
	case UseOther:
		return "Other"
	case UseLogicalOrPositional:
		return "LogicalOrPositional"
	case Use2DParametric:
		return "2DParametric"
	case UseConstructionGeom:
		return "ConstructionGeometry"
	default:
		return fmt.Sprintf("EntityUseFlag(%d)", int(u))
	}
}

func (h HierarchyFlag) String() string {
	switch h {
	case HierarchyGlobalTopDown:
		return "GlobalTopDown"
	case HierarchyGlobalDefer:
		return "GlobalDefer"
	case HierarchyUseAttribute:
		return "UseAttribute"
	default:
		return fmt.Sprintf("HierarchyFlag(%d)", int(h))
	}
}

// Status is the decomposed 8-digit DE status number.
type Status struct {
	Blank       BlankStatus
	Subordinate SubordinateStatus
	Use         EntityUseFlag
	Hierarchy   HierarchyFlag
}

// parseStatus decodes the 4 two-digit sub-fields of the DE status number.
func parseStatus(n int64) Status {
	return Status{
		Blank:       BlankStatus((n / 1000000) % 100),
		Subordinate: SubordinateStatus((n / 10000) % 100),
		Use:         EntityUseFlag((n / 100) % 100),
		Hierarchy:   HierarchyFlag(n % 100),
	}
}

// encode packs the 4 two-digit sub-fields back into a single integer.
func (s Status) encode() int64 {
	return int64(s.Blank)*1000000 + int64(s.Subordinate)*10000 + int64(s.Use)*100 + int64(s.Hierarchy)
}

// CurveCreateFlag is the curve-on-surface creation-method enumeration for
// entity 142.
type CurveCreateFlag int

const (
	CurveCreateUnspecified CurveCreateFlag = 0
	CurveCreateProjection  CurveCreateFlag = 1
	CurveCreateTangential  CurveCreateFlag = 2
)

// BoundPrefFlag is the trim-boundary preference enumeration for entity
// 144.
type BoundPrefFlag int

const (
	BoundPrefUnspecified BoundPrefFlag = 0
	BoundPrefModelSpace  BoundPrefFlag = 1
	BoundPrefParametric  BoundPrefFlag = 2
	BoundPrefEqual       BoundPrefFlag = 3
)
