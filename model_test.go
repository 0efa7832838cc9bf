// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import (
	"path/filepath"
	"strings"
	"testing"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(Options{ProductID: "TESTPART"})
}

// TestRoundTripLine writes a single Line entity to disk and reads it back,
// checking that its geometry and directory fields survive unchanged.
func TestRoundTripLine(t *testing.T) {
	m := newTestModel(t)
	l := m.NewEntity(TypeLine).(*Line)
	l.X1, l.Y1, l.Z1 = 0, 0, 0
	l.X2, l.Y2, l.Z2 = 1, 2, 3
	l.DE.Color = 2
	l.DE.LineWeightNumber = 1

	path := filepath.Join(t.TempDir(), "line.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := NewModel(Options{})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	ents := got.Entities()
	if len(ents) != 1 {
		t.Fatalf("got %d entities, want 1", len(ents))
	}
	gotLine, ok := ents[0].(*Line)
	if !ok {
		t.Fatalf("got %T, want *Line", ents[0])
	}
	if gotLine.X2 != 1 || gotLine.Y2 != 2 || gotLine.Z2 != 3 {
		t.Fatalf("line endpoint = (%v,%v,%v), want (1,2,3)", gotLine.X2, gotLine.Y2, gotLine.Z2)
	}
	if gotLine.DE.Color != 2 || gotLine.DE.LineWeightNumber != 1 {
		t.Fatalf("directory fields did not round-trip: %+v", gotLine.DE)
	}
}

// TestUnitConversionOnRead writes a model declared in inches and confirms
// a fresh Read through bare Options rescales geometry to millimetres by
// default and normalises the Global section's units flag.
func TestUnitConversionOnRead(t *testing.T) {
	m := newTestModel(t)
	m.Global.UnitsFlag = UnitsInches
	m.Global.UnitsName = "IN"
	l := m.NewEntity(TypeLine).(*Line)
	l.X2, l.Y2, l.Z2 = 1, 0, 0

	path := filepath.Join(t.TempDir(), "inches.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// ConvertUnits left unset: conversion on read is the default.
	got := NewModel(Options{})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Global.UnitsFlag != UnitsMillimeters {
		t.Fatalf("units flag = %v, want Millimeters", got.Global.UnitsFlag)
	}
	gotLine := got.Entities()[0].(*Line)
	if gotLine.X2 != 25.4 {
		t.Fatalf("X2 = %v, want 25.4 (1 inch in mm)", gotLine.X2)
	}

	// A second conversion must be a no-op (idempotent).
	got.ConvertToMillimetres()
	if gotLine.X2 != 25.4 {
		t.Fatalf("second ConvertToMillimetres changed X2 to %v", gotLine.X2)
	}
}

// TestUnitConversionDisabled confirms an explicit ConvertUnits=false
// leaves inch geometry untouched on Read.
func TestUnitConversionDisabled(t *testing.T) {
	m := newTestModel(t)
	m.Global.UnitsFlag = UnitsInches
	m.Global.UnitsName = "IN"
	l := m.NewEntity(TypeLine).(*Line)
	l.X2 = 1

	path := filepath.Join(t.TempDir(), "rawinches.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	noConvert := false
	got := NewModel(Options{ConvertUnits: &noConvert})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Global.UnitsFlag != UnitsInches {
		t.Fatalf("units flag = %v, want Inches preserved", got.Global.UnitsFlag)
	}
	gotLine := got.Entities()[0].(*Line)
	if gotLine.X2 != 1 {
		t.Fatalf("X2 = %v, want 1 (unconverted inches)", gotLine.X2)
	}
}

// TestCompositeCurveIntegrity builds a three-segment composite curve and
// verifies the segment order and back-references survive a round-trip.
func TestCompositeCurveIntegrity(t *testing.T) {
	m := newTestModel(t)

	seg1 := m.NewEntity(TypeLine).(*Line)
	seg1.X2, seg1.Y2 = 1, 0
	seg2 := m.NewEntity(TypeLine).(*Line)
	seg2.X1, seg2.Y1 = 1, 0
	seg2.X2, seg2.Y2 = 1, 1
	seg3 := m.NewEntity(TypeCircularArc).(*CircularArc)

	cc := m.NewEntity(TypeCompositeCurve).(*CompositeCurve)
	for _, s := range []Entity{seg1, seg2, seg3} {
		if err := cc.AddSegment(s); err != nil {
			t.Fatalf("AddSegment: %v", err)
		}
	}
	if len(seg1.Refs()) != 1 || seg1.Refs()[0] != Entity(cc) {
		t.Fatalf("segment 1 missing back-reference to composite curve")
	}

	path := filepath.Join(t.TempDir(), "composite.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := NewModel(Options{})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	var gotCC *CompositeCurve
	for _, e := range got.Entities() {
		if cc, ok := e.(*CompositeCurve); ok {
			gotCC = cc
		}
	}
	if gotCC == nil {
		t.Fatal("composite curve missing after round-trip")
	}
	if len(gotCC.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(gotCC.Segments))
	}
	if _, ok := gotCC.Segments[2].(*CircularArc); !ok {
		t.Fatalf("segment order not preserved: segment 2 is %T", gotCC.Segments[2])
	}
}

// TestDeleteCascadeClearsDependents builds a SurfaceOfRevolution referenced
// by a TrimmedParametricSurface and a CurveOnParametricSurface, then
// deletes the surface and checks the dependents are cleared or removed.
func TestDeleteCascadeClearsDependents(t *testing.T) {
	m := newTestModel(t)

	axis := m.NewEntity(TypeLine).(*Line)
	axis.X2, axis.Y2, axis.Z2 = 0, 0, 1
	generatrix := m.NewEntity(TypeLine).(*Line)
	generatrix.X2 = 1

	surf := m.NewEntity(TypeSurfaceOfRevolution).(*SurfaceOfRevolution)
	surf.Axis = axis
	surf.Curve = generatrix
	axis.AddReference(surf)
	generatrix.AddReference(surf)

	outer := m.NewEntity(TypeCompositeCurve).(*CompositeCurve)
	boundarySeg := m.NewEntity(TypeLine).(*Line)
	if err := outer.AddSegment(boundarySeg); err != nil {
		t.Fatalf("AddSegment: %v", err)
	}

	trimmed := m.NewEntity(TypeTrimmedParametricSurf).(*TrimmedParametricSurface)
	trimmed.Surface = surf
	trimmed.Outer = outer
	surf.AddReference(trimmed)
	outer.AddReference(trimmed)

	cos := m.NewEntity(TypeCurveOnParametricSurf).(*CurveOnParametricSurface)
	cos.Surface = surf
	cos.ParamCurve = boundarySeg
	surf.AddReference(cos)
	boundarySeg.AddReference(cos)

	if err := m.DelEntity(surf); err != nil {
		t.Fatalf("DelEntity: %v", err)
	}

	if trimmed.Surface == Entity(surf) {
		t.Fatal("trimmed surface still references the deleted surface")
	}
	if cos.Surface == Entity(surf) {
		t.Fatal("curve on surface still references the deleted surface")
	}
	if cos.ParamCurve != Entity(boundarySeg) {
		t.Fatal("curve on surface lost its parameter curve; only the deleted surface should be cleared")
	}
	for _, e := range m.Entities() {
		if e == Entity(surf) {
			t.Fatal("deleted surface still present in model entity list")
		}
	}
}

// TestDelimiterOverrideRoundTrip writes and rereads a model configured
// with non-default parameter and record delimiters.
func TestDelimiterOverrideRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m.Global.ParamDelim = '/'
	m.Global.RecordDelim = '#'
	m.Global.ProductID = "A/B,C"
	l := m.NewEntity(TypeLine).(*Line)
	l.X2, l.Y2, l.Z2 = 4, 5, 6

	path := filepath.Join(t.TempDir(), "delim.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := NewModel(Options{})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read with custom delimiters: %v", err)
	}
	if got.Global.ParamDelim != '/' || got.Global.RecordDelim != '#' {
		t.Fatalf("delimiters did not round-trip: %+v", got.Global)
	}
	if got.Global.ProductID != "A/B,C" {
		t.Fatalf("ProductID = %q, want %q", got.Global.ProductID, "A/B,C")
	}
	gotLine := got.Entities()[0].(*Line)
	if gotLine.X2 != 4 || gotLine.Y2 != 5 || gotLine.Z2 != 6 {
		t.Fatalf("line geometry did not round-trip: %+v", gotLine)
	}
}

// TestUnknownTypeCodeBecomesNullEntity confirms that an entity whose
// directory type code is not in the registry decodes as a byte-faithful
// NullEntity and re-emits identical parameter data.
func TestUnknownTypeCodeBecomesNullEntity(t *testing.T) {
	m := newTestModel(t)
	const unknownType = 9999
	ne := m.NewEntity(unknownType).(*NullEntity)
	ne.raw = "9999,1,2,3;"

	path := filepath.Join(t.TempDir(), "unknown.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := NewModel(Options{})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	ents := got.Entities()
	if len(ents) != 1 {
		t.Fatalf("got %d entities, want 1", len(ents))
	}
	gotNull, ok := ents[0].(*NullEntity)
	if !ok {
		t.Fatalf("got %T, want *NullEntity", ents[0])
	}
	if gotNull.Base().TypeCode() != unknownType {
		t.Fatalf("type code = %d, want %d", gotNull.Base().TypeCode(), unknownType)
	}
	if got := strings.TrimRight(gotNull.raw, " "); got != ne.raw {
		t.Fatalf("raw PD = %q, want %q", got, ne.raw)
	}
}

func TestNewEntitySequenceNumbersAreOddAndIncreasing(t *testing.T) {
	m := newTestModel(t)
	a := m.NewEntity(TypeLine)
	b := m.NewEntity(TypeLine)
	if a.Base().DE.SequenceNumber%2 == 0 || b.Base().DE.SequenceNumber%2 == 0 {
		t.Fatalf("sequence numbers must be odd: %d, %d", a.Base().DE.SequenceNumber, b.Base().DE.SequenceNumber)
	}
	if b.Base().DE.SequenceNumber <= a.Base().DE.SequenceNumber {
		t.Fatalf("sequence numbers must increase: %d, %d", a.Base().DE.SequenceNumber, b.Base().DE.SequenceNumber)
	}
}

// TestWriteRenumbersForwardReferences deletes an entity ahead of a
// composite curve in the file order, forcing every surviving DE to shift
// down on Write, and confirms the composite's segment pointer follows the
// renumbering.
func TestWriteRenumbersForwardReferences(t *testing.T) {
	m := newTestModel(t)
	doomed := m.NewEntity(TypeLine)
	cc := m.NewEntity(TypeCompositeCurve).(*CompositeCurve)
	seg := m.NewEntity(TypeLine).(*Line)
	seg.X2 = 9
	if err := cc.AddSegment(seg); err != nil {
		t.Fatalf("AddSegment: %v", err)
	}
	if err := m.DelEntity(doomed); err != nil {
		t.Fatalf("DelEntity: %v", err)
	}

	path := filepath.Join(t.TempDir(), "renumber.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := NewModel(Options{})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	var gotCC *CompositeCurve
	for _, e := range got.Entities() {
		if c, ok := e.(*CompositeCurve); ok {
			gotCC = c
		}
	}
	if gotCC == nil {
		t.Fatal("composite curve missing after round-trip")
	}
	if gotCC.IsDegenerate() {
		t.Fatal("composite curve degenerate: segment pointer not renumbered on write")
	}
	if len(gotCC.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(gotCC.Segments))
	}
	if gotSeg := gotCC.Segments[0].(*Line); gotSeg.X2 != 9 {
		t.Fatalf("segment X2 = %v, want 9", gotSeg.X2)
	}
}

// TestReadErrorLeavesModelEmpty feeds a malformed image to a populated
// model and confirms the failed Read wipes it rather than leaving stale
// entities behind.
func TestReadErrorLeavesModelEmpty(t *testing.T) {
	m := newTestModel(t)
	m.NewEntity(TypeLine)

	if err := m.ReadBytes([]byte("this is not an IGES file\n")); err == nil {
		t.Fatal("expected a decode error")
	}
	if len(m.Entities()) != 0 {
		t.Fatalf("model still holds %d entities after a fatal Read", len(m.Entities()))
	}
}

func TestStartTextRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m.StartText = "exported from unit test"
	m.NewEntity(TypeLine)

	path := filepath.Join(t.TempDir(), "start.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := NewModel(Options{})
	if err := got.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.StartText != m.StartText {
		t.Fatalf("StartText = %q, want %q", got.StartText, m.StartText)
	}
}

func TestWriteRefusesToOverwriteWithoutFlag(t *testing.T) {
	m := newTestModel(t)
	m.NewEntity(TypeLine)
	path := filepath.Join(t.TempDir(), "once.igs")
	if err := m.Write(path, false); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := m.Write(path, false); err == nil {
		t.Fatal("expected an error writing over an existing file without overwrite=true")
	}
	if err := m.Write(path, true); err != nil {
		t.Fatalf("Write with overwrite=true: %v", err)
	}
}
