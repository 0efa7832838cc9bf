// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import (
	"fmt"
	"strings"
)

// buildDirectory is the shell pass: every Directory Entry is
// parsed and a typed shell allocated via the registry, but no Parameter
// Data is touched yet. This lets the content pass resolve pointers
// against a complete, stable index of every entity in the file.
func buildDirectory(dRecords []record) ([]Entity, map[int]Entity, error) {
	if len(dRecords)%2 != 0 {
		return nil, nil, fmt.Errorf("iges: directory section has an odd record count (%d)", len(dRecords))
	}

	entities := make([]Entity, 0, len(dRecords)/2)
	index := make(map[int]Entity, len(dRecords)/2)

	for i := 0; i+1 < len(dRecords); i += 2 {
		seqNo := dRecords[i].seq
		de, err := parseDirectoryEntry(dRecords[i].payloadString(), dRecords[i+1].payloadString())
		if err != nil {
			return nil, nil, fmt.Errorf("DE %d: %w", seqNo, err)
		}
		de.SequenceNumber = seqNo

		ent := construct(de.TypeCode)
		ent.Base().DE = de

		entities = append(entities, ent)
		index[seqNo] = ent
	}

	return entities, index, nil
}

// resolveContent is the content pass: parse every entity's
// Parameter Data, enforce its form-number whitelist, then resolve every
// recorded pointer integer into a typed reference, mirroring back-
// references as it goes. Finally it walks the owning-child graph looking
// for cycles, breaking any it finds.
func resolveContent(entities []Entity, pRecords []record, index map[int]Entity, g *Global, m *Model) error {
	pIndex := make(map[int]record, len(pRecords))
	for _, rec := range pRecords {
		pIndex[rec.seq] = rec
	}

	for _, e := range entities {
		de := e.Base().DE

		if !typedTypeCodes[de.TypeCode] {
			m.logAnomaly(AnoUnknownTypeCode)
		}

		var raw strings.Builder
		for i := 0; i < de.ParamLineCount; i++ {
			rec, ok := pIndex[de.ParameterData+i]
			if !ok {
				return fmt.Errorf("DE %d: missing parameter data line %d", de.SequenceNumber, de.ParameterData+i)
			}
			payload := rec.payloadString()
			raw.WriteString(payload[:64])
		}

		if err := e.readPD(raw.String(), g); err != nil {
			return fmt.Errorf("DE %d: %w", de.SequenceNumber, err)
		}

		if _, isNull := e.(*NullEntity); !isNull && !hasForm(e.formNumbers(), de.FormNumber) {
			return fmt.Errorf("DE %d: %w: form %d", de.SequenceNumber, ErrInvalidFormNumber, de.FormNumber)
		}
	}

	for _, e := range entities {
		if err := e.associate(index); err != nil {
			return fmt.Errorf("DE %d: %w", e.Base().DE.SequenceNumber, err)
		}
		e.Base().extras.associate(e, index)
	}

	breakCycles(entities, m)

	return nil
}

// breakCycles walks the owning-child graph (ownedChildren) with the
// classic white/gray/black DFS colouring and clears any edge that closes
// a cycle, since an owning reference chain must be a DAG. Non-owning
// references (extras, back-pointers) are untouched: only
// they may legitimately form arbitrary graphs.
func breakCycles(entities []Entity, m *Model) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[Entity]int, len(entities))

	var visit func(e Entity)
	visit = func(e Entity) {
		color[e] = gray
		for _, child := range e.ownedChildren() {
			switch color[child] {
			case white:
				visit(child)
			case gray:
				e.unlinkChild(child)
				child.Base().DelReference(e)
				m.logAnomaly(AnoCycleBroken)
			}
		}
		color[e] = black
	}

	for _, e := range entities {
		if color[e] == white {
			visit(e)
		}
	}
}

// sweepOrphans removes every entity whose refs list is empty yet whose DE
// still declares subordinate dependence, returning
// the surviving entities in original order. Each pruned entity is reported
// as a logged anomaly naming its DE sequence number.
func sweepOrphans(entities []Entity, m *Model) []Entity {
	kept := entities[:0:0]
	for _, e := range entities {
		if e.Base().IsOrphaned() {
			m.logAnomaly("%s: DE %d", AnoOrphanPruned, e.Base().DE.SequenceNumber)
			for _, child := range e.ownedChildren() {
				child.Base().DelReference(e)
			}
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
