// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "testing"

func TestDirectoryEntryRoundTrip(t *testing.T) {
	de := DirectoryEntry{
		TypeCode:          TypeLine,
		ParameterData:     5,
		Structure:         0,
		LineFontPattern:   1,
		Level:             2,
		View:              0,
		TransformPointer:  7,
		LabelDisplayAssoc: 0,
		Status: Status{
			Blank:       BlankVisible,
			Subordinate: StatPhysicallyDependent,
			Use:         UseGeometry,
			Hierarchy:   HierarchyGlobalTopDown,
		},
		LineWeightNumber: 3,
		Color:            2,
		ParamLineCount:   1,
		FormNumber:       0,
		Label:            "LINEA",
		Subscript:        1,
	}

	lines := de.format(11)
	if len(lines) != 2 {
		t.Fatalf("got %d DE records, want 2", len(lines))
	}
	for _, l := range lines {
		if len(l) != 80 {
			t.Fatalf("DE record is %d columns, want 80", len(l))
		}
	}

	got, err := parseDirectoryEntry(lines[0][:72], lines[1][:72])
	if err != nil {
		t.Fatalf("parseDirectoryEntry: %v", err)
	}
	got.SequenceNumber = 11

	if got.TypeCode != de.TypeCode || got.ParameterData != de.ParameterData ||
		got.TransformPointer != de.TransformPointer || got.LineWeightNumber != de.LineWeightNumber ||
		got.Color != de.Color || got.FormNumber != de.FormNumber || got.Subscript != de.Subscript {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, de)
	}
	if got.Label != de.Label {
		t.Fatalf("label = %q, want %q", got.Label, de.Label)
	}
	if got.Status != de.Status {
		t.Fatalf("status = %+v, want %+v", got.Status, de.Status)
	}
}

func TestStatusEncodeDecodeRoundTrip(t *testing.T) {
	tests := []Status{
		{Blank: BlankVisible, Subordinate: StatIndependent, Use: UseGeometry, Hierarchy: HierarchyGlobalTopDown},
		{Blank: BlankBlanked, Subordinate: StatPhysAndLogDependent, Use: UseConstructionGeom, Hierarchy: HierarchyUseAttribute},
		{Blank: BlankVisible, Subordinate: StatLogicallyDependent, Use: UseAnnotation, Hierarchy: HierarchyGlobalDefer},
	}
	for _, s := range tests {
		encoded := s.encode()
		got := parseStatus(encoded)
		if got != s {
			t.Errorf("parseStatus(%d) = %+v, want %+v", encoded, got, s)
		}
	}
}

func TestDirectoryEntryTypeCodeMismatchIsAnError(t *testing.T) {
	rec1 := fixedField(TypeLine, 8) + fixedField(0, 8*8)
	rec2 := fixedField(TypeCircularArc, 8) + fixedField(0, 8*8) // mismatched type code
	_, err := parseDirectoryEntry(rec1, rec2)
	if err == nil {
		t.Fatal("expected a type-code-mismatch error")
	}
}

func TestFixedFieldTruncatesOverflow(t *testing.T) {
	got := fixedField(123456789, 8)
	if len(got) != 8 {
		t.Fatalf("got length %d, want 8", len(got))
	}
}

func TestFixedStringFieldPadsAndTruncates(t *testing.T) {
	if got := fixedStringField("AB", 5); got != "AB   " {
		t.Fatalf("got %q, want %q", got, "AB   ")
	}
	if got := fixedStringField("TOOLONGNAME", 5); got != "TOOLO" {
		t.Fatalf("got %q, want %q", got, "TOOLO")
	}
}
