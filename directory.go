// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import (
	"fmt"
	"strconv"
	"strings"
)

// DirectoryEntry is the fixed 20-field, two-record header every entity
// carries. Field names follow the IGES 5.3 directory-entry listing.
type DirectoryEntry struct {
	SequenceNumber int // this DE's own odd sequence number, assigned on Write

	TypeCode          int
	ParameterData     int // P-section start line of this entity's PD block
	Structure         int // DE pointer, 0 if absent
	LineFontPattern   int
	Level             int
	View              int
	TransformPointer  int // DE pointer to entity 124
	LabelDisplayAssoc int

	Status Status

	LineWeightNumber int
	Color            int // DE pointer if negative-of-color-entity convention, or a predefined color number
	ParamLineCount   int // computed on write, never user-set
	FormNumber       int

	Label     string
	Subscript int
}

// parseDirectoryEntry decodes one DE (two physical 72-column records) per
// the standard IGES column layout: 9 fields of 8 columns on each record.
func parseDirectoryEntry(rec1, rec2 string) (DirectoryEntry, error) {
	var de DirectoryEntry

	f1 := splitFixedFields(rec1, 8, 9)
	f2 := splitFixedFields(rec2, 8, 9)

	var err error
	if de.TypeCode, err = atoiField(f1[0]); err != nil {
		return de, fmt.Errorf("DE type code: %w", err)
	}
	if de.ParameterData, err = atoiField(f1[1]); err != nil {
		return de, fmt.Errorf("DE parameter data pointer: %w", err)
	}
	if de.Structure, err = atoiField(f1[2]); err != nil {
		return de, fmt.Errorf("DE structure: %w", err)
	}
	if de.LineFontPattern, err = atoiField(f1[3]); err != nil {
		return de, fmt.Errorf("DE line font pattern: %w", err)
	}
	if de.Level, err = atoiField(f1[4]); err != nil {
		return de, fmt.Errorf("DE level: %w", err)
	}
	if de.View, err = atoiField(f1[5]); err != nil {
		return de, fmt.Errorf("DE view: %w", err)
	}
	if de.TransformPointer, err = atoiField(f1[6]); err != nil {
		return de, fmt.Errorf("DE transform pointer: %w", err)
	}
	if de.LabelDisplayAssoc, err = atoiField(f1[7]); err != nil {
		return de, fmt.Errorf("DE label display assoc: %w", err)
	}
	statusRaw, err := atoiField(f1[8])
	if err != nil {
		return de, fmt.Errorf("DE status number: %w", err)
	}
	de.Status = parseStatus(int64(statusRaw))

	typeCode2, err := atoiField(f2[0])
	if err != nil {
		return de, fmt.Errorf("DE type code (record 2): %w", err)
	}
	if typeCode2 != de.TypeCode {
		return de, fmt.Errorf("DE type code mismatch between records: %d vs %d", de.TypeCode, typeCode2)
	}
	if de.LineWeightNumber, err = atoiField(f2[1]); err != nil {
		return de, fmt.Errorf("DE line weight: %w", err)
	}
	if de.Color, err = atoiField(f2[2]); err != nil {
		return de, fmt.Errorf("DE color: %w", err)
	}
	if de.ParamLineCount, err = atoiField(f2[3]); err != nil {
		return de, fmt.Errorf("DE param line count: %w", err)
	}
	if de.FormNumber, err = atoiField(f2[4]); err != nil {
		return de, fmt.Errorf("DE form number: %w", err)
	}
	de.Label = strings.TrimRight(f2[7], " ")
	if de.Subscript, err = atoiField(f2[8]); err != nil {
		return de, fmt.Errorf("DE subscript: %w", err)
	}

	return de, nil
}

// format renders the two DE records for seqNo (this entity's own odd
// sequence number).
func (de *DirectoryEntry) format(seqNo int) []string {
	rec1 := fixedField(de.TypeCode, 8) +
		fixedField(de.ParameterData, 8) +
		fixedField(de.Structure, 8) +
		fixedField(de.LineFontPattern, 8) +
		fixedField(de.Level, 8) +
		fixedField(de.View, 8) +
		fixedField(de.TransformPointer, 8) +
		fixedField(de.LabelDisplayAssoc, 8) +
		fixedField(int(de.Status.encode()), 8)

	rec2 := fixedField(de.TypeCode, 8) +
		fixedField(de.LineWeightNumber, 8) +
		fixedField(de.Color, 8) +
		fixedField(de.ParamLineCount, 8) +
		fixedField(de.FormNumber, 8) +
		fixedField(0, 8) +
		fixedField(0, 8) +
		fixedStringField(de.Label, 8) +
		fixedField(de.Subscript, 8)

	return []string{
		formatRecord(rec1, sectionDirectory, seqNo),
		formatRecord(rec2, sectionDirectory, seqNo+1),
	}
}

func splitFixedFields(s string, width, count int) []string {
	fields := make([]string, count)
	for i := 0; i < count; i++ {
		start := i * width
		end := start + width
		if start >= len(s) {
			fields[i] = ""
			continue
		}
		if end > len(s) {
			end = len(s)
		}
		fields[i] = s[start:end]
	}
	return fields
}

func atoiField(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func fixedField(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func fixedStringField(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
