// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import (
	"fmt"
	"strings"
	"testing"
)

// TestBreakCyclesOnOwningChain builds two transformation matrices that
// each name the other as parent transform, forming a 2-cycle in the
// owning-child graph, and confirms breakCycles removes the closing edge
// rather than recursing forever.
func TestBreakCyclesOnOwningChain(t *testing.T) {
	m := NewModel(Options{})

	a := m.NewEntity(TypeTransformationMatrix).(*TransformationMatrix)
	b := m.NewEntity(TypeTransformationMatrix).(*TransformationMatrix)
	a.R = identity3()
	b.R = identity3()

	// A transformation's only owned child is its parent transform; chain
	// a -> parent b -> parent a to form a 2-cycle.
	a.Parent = b
	b.AddReference(a)
	b.Parent = a
	a.AddReference(b)

	entities := []Entity{a, b}
	breakCycles(entities, m)

	if a.Parent != nil && b.Parent != nil {
		t.Fatal("breakCycles left a 2-cycle intact")
	}
}

func identity3() [3][3]float64 {
	return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// TestResolveContentEnforcesFormNumberWhitelist confirms a Line entity
// with a form number outside its whitelist is rejected.
func TestResolveContentEnforcesFormNumberWhitelist(t *testing.T) {
	m := NewModel(Options{})
	l := m.NewEntity(TypeLine).(*Line)
	l.DE.FormNumber = 99 // not in {0, 1, 2}

	pRecords, index := encodeForResolve(t, m, l)
	err := resolveContent([]Entity{l}, pRecords, index, &m.Global, m)
	if err == nil {
		t.Fatal("expected a form-number rejection")
	}
}

// TestResolveContentAcceptsAnyFormForAssociativityInstance confirms the
// formAny whitelist lets an AssociativityInstance's form number through
// unchecked, since that field carries the associativity class rather than
// a geometric variant selector.
func TestResolveContentAcceptsAnyFormForAssociativityInstance(t *testing.T) {
	m := NewModel(Options{})
	ai := m.NewEntity(TypeAssociativityInstance).(*AssociativityInstance)
	ai.DE.FormNumber = 7
	ai.itemPtrs = nil

	pRecords, index := encodeForResolve(t, m, ai)
	if err := resolveContent([]Entity{ai}, pRecords, index, &m.Global, m); err != nil {
		t.Fatalf("resolveContent rejected a non-zero associativity form: %v", err)
	}
	if ai.Class != 7 {
		t.Fatalf("Class = %d, want 7", ai.Class)
	}
}

// TestResolveContentDanglingPointerMarksDegenerate confirms a surface of
// revolution whose axis pointer does not resolve is marked degenerate
// rather than causing a hard parse failure.
func TestResolveContentDanglingPointerMarksDegenerate(t *testing.T) {
	m := NewModel(Options{})
	surf := m.NewEntity(TypeSurfaceOfRevolution).(*SurfaceOfRevolution)
	surf.axisPtr = 999999 // does not exist
	curve := m.NewEntity(TypeLine).(*Line)
	surf.curvePtr = curve.Base().DE.SequenceNumber

	index := map[int]Entity{
		surf.Base().DE.SequenceNumber:  surf,
		curve.Base().DE.SequenceNumber: curve,
	}
	if err := surf.associate(index); err != nil {
		t.Fatalf("associate: %v", err)
	}
	if !surf.IsDegenerate() {
		t.Fatal("expected the surface to be marked degenerate")
	}
}

// TestSweepOrphansPrunesOrphanedEntities confirms an entity with no
// references and no longer reachable is removed by sweepOrphans.
func TestSweepOrphansPrunesOrphanedEntities(t *testing.T) {
	m := NewModel(Options{})
	keep := m.NewEntity(TypeLine)
	orphan := m.NewEntity(TypeLine)
	orphan.Base().DE.Status.Subordinate = StatPhysicallyDependent

	orphanSeq := orphan.Base().DE.SequenceNumber

	kept := sweepOrphans([]Entity{keep, orphan}, m)
	if len(kept) != 1 || kept[0] != keep {
		t.Fatalf("got %d kept entities, want 1 (keep)", len(kept))
	}
	if len(m.Anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(m.Anomalies))
	}
	wantSeq := fmt.Sprintf("DE %d", orphanSeq)
	if !strings.Contains(m.Anomalies[0].Message, wantSeq) {
		t.Fatalf("anomaly message %q does not identify the pruned sequence number %s", m.Anomalies[0].Message, wantSeq)
	}
}

// encodeForResolve formats e's parameter data the way Model.Write would
// and slices it back into parameter records resolveContent can consume,
// letting these tests exercise resolveContent without a full file
// round-trip through disk.
func encodeForResolve(t *testing.T, m *Model, e Entity) ([]record, map[int]Entity) {
	t.Helper()
	d := m.Global.delims()
	payload, err := e.formatPD(d, &m.Global)
	if err != nil {
		t.Fatalf("formatPD: %v", err)
	}
	chunks := splitIntoPDRecords(payload)
	e.Base().DE.ParameterData = 1
	e.Base().DE.ParamLineCount = len(chunks)

	var recs []record
	for i, c := range chunks {
		padded := c
		if len(padded) < 64 {
			padded += strings.Repeat(" ", 64-len(padded))
		}
		line := formatRecord(padded+fixedField(e.Base().DE.SequenceNumber, 8), sectionParameter, i+1)
		rec, err := parseRecord(line)
		if err != nil {
			t.Fatalf("parseRecord: %v", err)
		}
		recs = append(recs, rec)
	}

	index := map[int]Entity{e.Base().DE.SequenceNumber: e}
	return recs, index
}
