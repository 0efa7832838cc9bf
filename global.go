// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import (
	"fmt"
	"strings"
)

// UnitsFlag enumerates the IGES global-section units flag.
type UnitsFlag int

// Recognised units flags and their conversion factor to millimetres.
const (
	UnitsInches      UnitsFlag = 1
	UnitsMillimeters UnitsFlag = 2
	UnitsCustom      UnitsFlag = 3 // see UnitsName
	UnitsFeet        UnitsFlag = 4
	UnitsMiles       UnitsFlag = 5
	UnitsMeters      UnitsFlag = 6
	UnitsKilometers  UnitsFlag = 7
	UnitsMils        UnitsFlag = 8
	UnitsMicrons     UnitsFlag = 9
	UnitsCentimeters UnitsFlag = 10
	UnitsMicroinches UnitsFlag = 11
)

func (u UnitsFlag) String() string {
	names := map[UnitsFlag]string{
		UnitsInches:      "Inches",
		UnitsMillimeters: "Millimeters",
		UnitsCustom:      "Custom",
		UnitsFeet:        "Feet",
		UnitsMiles:       "Miles",
		UnitsMeters:      "Meters",
		UnitsKilometers:  "Kilometers",
		UnitsMils:        "Mils",
		UnitsMicrons:     "Microns",
		UnitsCentimeters: "Centimeters",
		UnitsMicroinches: "Microinches",
	}
	if n, ok := names[u]; ok {
		return n
	}
	return fmt.Sprintf("UnitsFlag(%d)", int(u))
}

// millimetresPer maps a units flag to its conversion factor into
// millimetres; UnitsCustom, like any unrecognised flag, has no fixed
// factor and yields 1.0, so geometry in custom units is not rescaled.
func millimetresPer(u UnitsFlag) float64 {
	switch u {
	case UnitsInches:
		return 25.4
	case UnitsMillimeters:
		return 1.0
	case UnitsFeet:
		return 304.8
	case UnitsMiles:
		return 1609344.0
	case UnitsMeters:
		return 1000.0
	case UnitsKilometers:
		return 1000000.0
	case UnitsMils:
		return 0.0254
	case UnitsMicrons:
		return 0.001
	case UnitsCentimeters:
		return 10.0
	case UnitsMicroinches:
		return 0.0000254
	default:
		return 1.0
	}
}

// Global holds the 26 named fields of the IGES 5.3 global section.
// Field order here is parse/emit order.
type Global struct {
	ParamDelim  byte
	RecordDelim byte

	ProductID        string
	FileName         string
	NativeSystemID   string
	PreprocessorVers string

	IntegerBits int64

	SPMagnitude    int64
	SPSignificance int64
	DPMagnitude    int64
	DPSignificance int64

	ReceivingProductID string

	ModelSpaceScale float64

	UnitsFlag UnitsFlag
	UnitsName string

	MaxLineWeightGradations int64
	MaxLineWeight           float64

	FileCreationTime string

	MinResolution float64
	MaxCoordinate float64

	Author       string
	Organisation string

	SpecVersion  int64
	DraftingStd  int64
	ModifiedTime string
	AppProtocol  string
}

// defaultGlobal returns a Global with every field at its declared
// default; callers typically start here and override via Options.
func defaultGlobal() Global {
	return Global{
		ParamDelim:      ',',
		RecordDelim:     ';',
		IntegerBits:     32,
		SPMagnitude:     38,
		SPSignificance:  6,
		DPMagnitude:     308,
		DPSignificance:  15,
		ModelSpaceScale: 1.0,
		UnitsFlag:       UnitsMillimeters,
		UnitsName:       "MM",
		MinResolution:   1e-6,
		MaxCoordinate:   0,
		SpecVersion:     11,
		DraftingStd:     0,
	}
}

// cf returns the unit conversion factor to millimetres for this global
// section.
func (g *Global) cf() float64 {
	return millimetresPer(g.UnitsFlag)
}

// delims returns the parameter/record delimiter pair this Global declares,
// threaded explicitly through the lexical codec.
func (g *Global) delims() delims {
	d := defaultDelims()
	if g.ParamDelim != 0 {
		d.param = g.ParamDelim
	}
	if g.RecordDelim != 0 {
		d.record = g.RecordDelim
	}
	return d
}

// parseGlobal parses the concatenated G-section payload (columns 1-72 of
// every G record, in order) into a Global. Delimiters are parsed first,
// using their own defaults, since they govern every field after them.
func parseGlobal(payload string) (Global, error) {
	g := defaultGlobal()

	// The parameter and record delimiters are themselves Hollerith fields,
	// parsed against the hard-coded default delimiter pair; only if they
	// are present do they take effect for the remaining fields.
	bootstrap := defaultDelims()
	fs := newFieldScanner(payload, bootstrap)

	if s, defaulted, err := fs.Hollerith(); err != nil {
		return g, fmt.Errorf("global pdelim: %w", err)
	} else if !defaulted {
		if len(s) != 1 {
			return g, fmt.Errorf("%w: pdelim must be one character", ErrUnparseableField)
		}
		g.ParamDelim = s[0]
	}

	if fs.done {
		return g, nil
	}
	if s, defaulted, err := fs.Hollerith(); err != nil {
		return g, fmt.Errorf("global rdelim: %w", err)
	} else if !defaulted {
		if len(s) != 1 {
			return g, fmt.Errorf("%w: rdelim must be one character", ErrUnparseableField)
		}
		g.RecordDelim = s[0]
	}

	// Re-scan the remainder of the buffer (after the two delimiter
	// fields) using the now-resolved delimiter pair. Missing trailing
	// fields keep their declared defaults, so every scan below is gated on
	// the block not having ended yet.
	rest := payload[fs.pos:]
	d := g.delims()
	fs = newFieldScanner(rest, d)

	exhausted := func() bool {
		return fs.done || strings.TrimSpace(fs.buf[fs.pos:]) == ""
	}
	scanStr := func(dst *string) error {
		if exhausted() {
			return nil
		}
		v, defaulted, err := fs.Hollerith()
		if err != nil {
			return err
		}
		if !defaulted {
			*dst = v
		}
		return nil
	}
	scanInt := func(dst *int64) error {
		if exhausted() {
			return nil
		}
		v, defaulted, err := fs.Int()
		if err != nil {
			return err
		}
		if !defaulted {
			*dst = v
		}
		return nil
	}
	scanReal := func(dst *float64) error {
		if exhausted() {
			return nil
		}
		v, defaulted, err := fs.Real()
		if err != nil {
			return err
		}
		if !defaulted {
			*dst = v
		}
		return nil
	}

	units := int64(g.UnitsFlag)
	scans := []func() error{
		func() error { return scanStr(&g.ProductID) },
		func() error { return scanStr(&g.FileName) },
		func() error { return scanStr(&g.NativeSystemID) },
		func() error { return scanStr(&g.PreprocessorVers) },
		func() error { return scanInt(&g.IntegerBits) },
		func() error { return scanInt(&g.SPMagnitude) },
		func() error { return scanInt(&g.SPSignificance) },
		func() error { return scanInt(&g.DPMagnitude) },
		func() error { return scanInt(&g.DPSignificance) },
		func() error { return scanStr(&g.ReceivingProductID) },
		func() error { return scanReal(&g.ModelSpaceScale) },
		func() error { return scanInt(&units) },
		func() error { return scanStr(&g.UnitsName) },
		func() error { return scanInt(&g.MaxLineWeightGradations) },
		func() error { return scanReal(&g.MaxLineWeight) },
		func() error { return scanStr(&g.FileCreationTime) },
		func() error { return scanReal(&g.MinResolution) },
		func() error { return scanReal(&g.MaxCoordinate) },
		func() error { return scanStr(&g.Author) },
		func() error { return scanStr(&g.Organisation) },
		func() error { return scanInt(&g.SpecVersion) },
		func() error { return scanInt(&g.DraftingStd) },
		func() error { return scanStr(&g.ModifiedTime) },
		func() error { return scanStr(&g.AppProtocol) },
	}
	for _, scan := range scans {
		if err := scan(); err != nil {
			return g, err
		}
	}
	g.UnitsFlag = UnitsFlag(units)

	if fs.done {
		if err := fs.Finish(); err != nil {
			return g, err
		}
	} else if strings.TrimSpace(fs.buf[fs.pos:]) != "" {
		return g, fmt.Errorf("global section: %w", ErrTrailingContent)
	}

	return g, nil
}

// format renders the Global as the concatenated G-section payload. The
// delimiters are emitted first, using the default pair, since they are
// not yet "in effect" until read.
func (g *Global) format() string {
	d := g.delims()
	fw2 := newFieldWriter(d)
	fw2.Hollerith(g.ProductID)
	fw2.Hollerith(g.FileName)
	fw2.Hollerith(g.NativeSystemID)
	fw2.Hollerith(g.PreprocessorVers)
	fw2.Int(g.IntegerBits)
	fw2.Int(g.SPMagnitude)
	fw2.Int(g.SPSignificance)
	fw2.Int(g.DPMagnitude)
	fw2.Int(g.DPSignificance)
	fw2.Hollerith(g.ReceivingProductID)
	fw2.Real(g.ModelSpaceScale, 0)
	fw2.Int(int64(g.UnitsFlag))
	fw2.Hollerith(g.UnitsName)
	fw2.Int(g.MaxLineWeightGradations)
	fw2.Real(g.MaxLineWeight, 0)
	fw2.Hollerith(g.FileCreationTime)
	fw2.Real(g.MinResolution, 0)
	fw2.Real(g.MaxCoordinate, 0)
	fw2.Hollerith(g.Author)
	fw2.Hollerith(g.Organisation)
	fw2.Int(g.SpecVersion)
	fw2.Int(g.DraftingStd)
	fw2.Hollerith(g.ModifiedTime)
	fw2.Hollerith(g.AppProtocol)

	return formatGlobalHead(g) + fw2.String()
}

// formatGlobalHead renders the two delimiter-declaring fields. Both are
// themselves separated and terminated using the hard-coded default
// parameter delimiter, never the instance's configured one: parseGlobal
// must be able to discover a custom delimiter pair before it knows what
// they are, so these two fields are always bootstrapped against the
// default pair, exactly as it scans them.
func formatGlobalHead(g *Global) string {
	bootstrap := defaultDelims()
	return encodeHollerith(string(g.ParamDelim)) + string(bootstrap.param) +
		encodeHollerith(string(g.RecordDelim)) + string(bootstrap.param)
}
