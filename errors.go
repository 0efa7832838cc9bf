// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import "errors"

// Errors of the record, lexical, global, resolver and model layers. Any of
// these returned by Read or Write is fatal to that call. ErrWrongVariant and
// ErrNotOwned come from AddSegment and DelEntity; the notes below mark the
// ones no function returns.
var (
	// ErrShortRecord is returned when a physical record is narrower than
	// the fixed 80-column (or 72+8 split) layout requires.
	ErrShortRecord = errors.New("iges: short record, expected 80 columns")

	// ErrBadSectionLetter is returned when column 73 does not hold one of
	// S, G, D, P, T, or holds a section letter that would move the reader
	// backwards through the S → G → D → P → T progression.
	ErrBadSectionLetter = errors.New("iges: bad or out-of-order section letter")

	// ErrBadSequenceNumber is returned when columns 74-80 are not a
	// positive integer.
	ErrBadSequenceNumber = errors.New("iges: sequence number is not a positive integer")

	// ErrSequenceGap is returned when a record's sequence number is not
	// contiguous with the previous record in its section.
	ErrSequenceGap = errors.New("iges: sequence number gap within section")

	// ErrTerminatorMalformed is returned when the T-section record is not
	// of the form S<sss>G<ggg>D<ddd>P<ppp>.
	ErrTerminatorMalformed = errors.New("iges: malformed terminator record")

	// ErrTerminatorMismatch is returned when the terminator's section
	// counts disagree with the number of records actually read.
	ErrTerminatorMismatch = errors.New("iges: terminator section counts do not match records read")

	// ErrUnterminatedRecord is returned when a parameter-data block ends
	// without encountering the record delimiter.
	ErrUnterminatedRecord = errors.New("iges: parameter data block has no record delimiter")

	// ErrTrailingContent is returned when non-blank content follows the
	// record delimiter within the same parameter-data block.
	ErrTrailingContent = errors.New("iges: content follows record delimiter in the same block")

	// ErrHollerithLength is returned when a Hollerith string's declared
	// byte count cannot be satisfied by the remaining buffer, or is not
	// immediately followed by a delimiter.
	ErrHollerithLength = errors.New("iges: Hollerith string length mismatch")

	// ErrUnparseableField is returned when an integer, real, or logical
	// primitive cannot be parsed from its token.
	ErrUnparseableField = errors.New("iges: unparseable field")

	// ErrInvalidFormNumber is returned when an entity's form number is
	// not in the variant's declared whitelist.
	ErrInvalidFormNumber = errors.New("iges: invalid form number for entity type")

	// ErrWrongVariant is returned by CompositeCurve.AddSegment when the
	// child is not a curve type. During associate a wrong-variant target is
	// logged as AnoWrongVariantOnAssociate instead.
	ErrWrongVariant = errors.New("iges: referenced entity is the wrong variant")

	// ErrDanglingPointer describes a recorded pointer that does not resolve
	// to any known directory entry. No function returns it: associate logs
	// such a pointer as AnoDanglingPointerOnAssociate.
	ErrDanglingPointer = errors.New("iges: pointer does not resolve to a known entity")

	// ErrCycleDetected describes an owning reference chain that forms a
	// cycle. No function returns it: breakCycles clears the closing edge
	// and logs AnoCycleBroken.
	ErrCycleDetected = errors.New("iges: cyclic owning reference detected")

	// ErrDegenerate describes typed access to an entity that failed to
	// associate and was marked degenerate. No function returns it: no
	// accessor checks the degenerate flag.
	ErrDegenerate = errors.New("iges: entity is degenerate, repair required before typed access")

	// ErrUnknownTypeCode describes a type code with no constructor. No
	// function returns it: the registry constructs a NullEntity for such a
	// code and the resolver logs AnoUnknownTypeCode.
	ErrUnknownTypeCode = errors.New("iges: unknown entity type code")

	// ErrNotOwned is returned when an operation is attempted on an entity
	// that does not belong to the model performing it.
	ErrNotOwned = errors.New("iges: entity is not owned by this model")

	// ErrInvalid is returned when a parameter value lies outside its legal
	// range, such as a ColorDefinition component outside [0,100].
	ErrInvalid = errors.New("iges: parameter value out of range")
)

// Anomalies are recoverable conditions appended to Model.Anomalies rather
// than returned as errors; they do not abort the Read/Write in progress.
const (
	AnoStructurePointerCleared    = "structure pointer cleared: entity type forbids a structure reference"
	AnoDanglingPointerOnAssociate = "pointer did not resolve during associate"
	AnoWrongVariantOnAssociate    = "pointer resolved to the wrong entity variant, entity marked degenerate"
	AnoCycleBroken                = "cyclic owning reference detected and cleared"
	AnoOrphanPruned               = "orphaned entity pruned before write"
	AnoUnknownTypeCode            = "unknown entity type code, preserved as NullEntity"
	AnoHierarchyIgnored           = "SetHierarchy is a no-op for this entity type"
)
