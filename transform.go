// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "fmt"

// TransformationMatrix is entity type 124: a 3×3 rotation matrix plus a
// 3-vector translation. If the DE's own transform pointer (field 7) is
// non-zero, it names a parent TransformationMatrix this one composes with.
type TransformationMatrix struct {
	EntityBase

	R [3][3]float64
	T [3]float64

	Parent *TransformationMatrix
}

func (e *TransformationMatrix) formNumbers() []int { return []int{0, 1, 2, 10, 11, 12} }

func (e *TransformationMatrix) readPD(raw string, g *Global) error {
	fs := newFieldScanner(raw, g.delims())
	typeCode, _, err := fs.Int()
	if err != nil {
		return err
	}
	if int(typeCode) != TypeTransformationMatrix {
		return fmt.Errorf("transformation matrix: unexpected type code %d", typeCode)
	}

	vals := make([]float64, 12)
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

	e.R[0] = [3]float64{vals[0], vals[1], vals[2]}
	e.T[0] = vals[3]
	e.R[1] = [3]float64{vals[4], vals[5], vals[6]}
	e.T[1] = vals[7]
	e.R[2] = [3]float64{vals[8], vals[9], vals[10]}
	e.T[2] = vals[11]
	return nil
}

func (e *TransformationMatrix) formatPD(d delims, g *Global) (string, error) {
	fw := newFieldWriter(d)
	fw.Int(TypeTransformationMatrix)
	fw.Real(e.R[0][0], g.MinResolution)
	fw.Real(e.R[0][1], g.MinResolution)
	fw.Real(e.R[0][2], g.MinResolution)
	fw.Real(e.T[0], g.MinResolution)
	fw.Real(e.R[1][0], g.MinResolution)
	fw.Real(e.R[1][1], g.MinResolution)
	fw.Real(e.R[1][2], g.MinResolution)
	fw.Real(e.T[1], g.MinResolution)
	fw.Real(e.R[2][0], g.MinResolution)
	fw.Real(e.R[2][1], g.MinResolution)
	fw.Real(e.R[2][2], g.MinResolution)
	fw.Real(e.T[2], g.MinResolution)
	return fw.String(), nil
}

func (e *TransformationMatrix) associate(index map[int]Entity) error {
	if e.DE.TransformPointer != 0 {
		target, ok := index[absInt(e.DE.TransformPointer)]
		if !ok {
			e.logViolation(AnoDanglingPointerOnAssociate)
			e.degenerate = true
			return nil
		}
		parent, ok := target.(*TransformationMatrix)
		if !ok {
			e.logViolation(AnoWrongVariantOnAssociate)
			e.degenerate = true
			return nil
		}
		e.Parent = parent
		parent.AddReference(e)
	}
	return nil
}

func (e *TransformationMatrix) unlinkChild(child Entity) bool {
	if tm, ok := child.(*TransformationMatrix); ok && e.Parent == tm {
		e.Parent = nil
		e.DE.TransformPointer = 0
		return true
	}
	return false
}

func (e *TransformationMatrix) ownedChildren() []Entity {
	if e.Parent != nil {
		return []Entity{e.Parent}
	}
	return nil
}

// rescale scales the translation component only; a rotation matrix is
// dimensionless.
func (e *TransformationMatrix) rescale(factor float64) {
	e.T[0] *= factor
	e.T[1] *= factor
	e.T[2] *= factor
}

func (e *TransformationMatrix) SetHierarchy(h HierarchyFlag) bool {
	e.logViolation(AnoHierarchyIgnored)
	return true
}

// GetTransformMatrix returns the rotation and translation composed with
// every ancestor transform, applying the parent transform first: a point p
// maps to R·(R_parent·p + T_parent) + T.
func (e *TransformationMatrix) GetTransformMatrix() (r [3][3]float64, t [3]float64) {
	if e.Parent == nil {
		return e.R, e.T
	}
	pr, pt := e.Parent.GetTransformMatrix()
	r = matMul(e.R, pr)
	t = matVecAdd(matVecMul(e.R, pt), e.T)
	return r, t
}

func matMul(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func matVecMul(a [3][3]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = a[i][0]*v[0] + a[i][1]*v[1] + a[i][2]*v[2]
	}
	return out
}

func matVecAdd(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}
