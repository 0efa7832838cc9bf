// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import (
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/xyproto/env/v2"

	"github.com/iges-cad/iges/log"
)

// Options configures a Model's defaults and diagnostics sink. A string
// field left empty falls back to an environment variable, then to a
// built-in default; a nil ConvertUnits or Logger takes its built-in
// default.
type Options struct {
	Author         string
	Organisation   string
	ProductID      string
	NativeSystemID string

	// ConvertUnits controls whether Read rescales every entity to
	// millimetres once, using the Global section's declared conversion
	// factor. Leaving it nil means true; a plain bool could not tell an
	// explicit false from an unset field.
	ConvertUnits *bool

	Logger log.Logger
}

func defaultOptions() Options {
	convert := true
	return Options{
		Author:         env.Str("IGES_AUTHOR", ""),
		Organisation:   env.Str("IGES_ORGANISATION", ""),
		ProductID:      env.Str("IGES_PRODUCT_ID", "UNTITLED"),
		NativeSystemID: env.Str("IGES_NATIVE_SYSTEM_ID", "github.com/iges-cad/iges"),
		ConvertUnits:   &convert,
		Logger:         log.NewFilter(log.NewStdoutLogger(), log.FilterLevel(log.LevelWarn)),
	}
}

func (o Options) withDefaults() Options {
	d := defaultOptions()
	if o.Author == "" {
		o.Author = d.Author
	}
	if o.Organisation == "" {
		o.Organisation = d.Organisation
	}
	if o.ProductID == "" {
		o.ProductID = d.ProductID
	}
	if o.NativeSystemID == "" {
		o.NativeSystemID = d.NativeSystemID
	}
	if o.ConvertUnits == nil {
		o.ConvertUnits = d.ConvertUnits
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}

// Anomaly records a recoverable structural violation observed during Read
// or Write, alongside a human-readable message.
type Anomaly struct {
	Message string
}

// Model is the in-memory object graph of one IGES file: its Global
// section, its ordered entity list, and the diagnostics accumulated while
// reading or writing it. Model is the sole legitimate owner of
// every Entity it holds.
type Model struct {
	Global Global

	// StartText is the free-form S-section comment text, carried verbatim
	// across a Read/Write round-trip.
	StartText string

	Options Options

	Anomalies []Anomaly

	entities []Entity
	index    map[int]Entity
	logger   *log.Helper

	unitsConverted bool
	nextSeq        int
}

// NewModel returns an empty Model ready for programmatic construction,
// with its Global section at the declared defaults.
func NewModel(opts Options) *Model {
	opts = opts.withDefaults()
	m := &Model{
		Global:  defaultGlobal(),
		Options: opts,
		index:   make(map[int]Entity),
		nextSeq: 1,
	}
	m.logger = log.NewHelper(opts.Logger)
	m.Global.ProductID = opts.ProductID
	m.Global.NativeSystemID = opts.NativeSystemID
	m.Global.Author = opts.Author
	m.Global.Organisation = opts.Organisation
	return m
}

// Entities returns the model's entities in file order.
func (m *Model) Entities() []Entity {
	out := make([]Entity, len(m.entities))
	copy(out, m.entities)
	return out
}

func (m *Model) logAnomaly(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	m.Anomalies = append(m.Anomalies, Anomaly{Message: msg})
	if m.logger != nil {
		m.logger.Warnf("%s", msg)
	}
}

// NewEntity allocates a typed shell for typeCode via the registry,
// attaches it to this model, and returns it for the caller to populate.
// The entity is assigned a provisional sequence number that Write
// renumbers on every save.
func (m *Model) NewEntity(typeCode int) Entity {
	e := construct(typeCode)
	e.Base().DE.TypeCode = typeCode
	e.Base().model = m
	e.Base().DE.SequenceNumber = m.nextSeq
	m.index[m.nextSeq] = e
	m.nextSeq += 2
	m.entities = append(m.entities, e)
	return e
}

// DelEntity removes e from the model, cascading the delete to any owned
// child that becomes orphaned as a result, and flips e's validity flags
// false.
func (m *Model) DelEntity(e Entity) error {
	if e.Base().model != m {
		return ErrNotOwned
	}
	m.deleteEntity(e)
	return nil
}

func (m *Model) deleteEntity(e Entity) {
	for _, parent := range e.Base().Refs() {
		parent.unlinkChild(e)
	}
	for _, child := range e.ownedChildren() {
		child.Base().DelReference(e)
		if child.Base().IsOrphaned() {
			m.deleteEntity(child)
		}
	}
	e.Base().invalidate()
	delete(m.index, e.Base().DE.SequenceNumber)
	for i, ent := range m.entities {
		if ent == e {
			m.entities = append(m.entities[:i], m.entities[i+1:]...)
			break
		}
	}
	e.Base().model = nil
}

// Read loads path, fully materialising it via a read-only memory mapping
// (the model is never streamed or partially loaded), and replaces this
// Model's contents with what it decodes.
func (m *Model) Read(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 {
		return fmt.Errorf("iges: %s: empty file", path)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("iges: mmap %s: %w", path, err)
	}
	defer data.Unmap()

	return m.ReadBytes(data)
}

// ReadBytes decodes an already-materialised IGES file image. It is the
// entrypoint Read wires mmap-go into, and the one the fuzz harness drives
// directly. A fatal decode error leaves the model empty rather than
// holding whatever it contained before the call.
func (m *Model) ReadBytes(data []byte) error {
	if err := m.readBytes(data); err != nil {
		m.clear()
		return err
	}
	return nil
}

// clear empties the model back to its post-NewModel state.
func (m *Model) clear() {
	m.Global = defaultGlobal()
	m.Global.ProductID = m.Options.ProductID
	m.Global.NativeSystemID = m.Options.NativeSystemID
	m.Global.Author = m.Options.Author
	m.Global.Organisation = m.Options.Organisation
	m.StartText = ""
	m.Anomalies = nil
	m.entities = nil
	m.index = make(map[int]Entity)
	m.unitsConverted = false
	m.nextSeq = 1
}

func (m *Model) readBytes(data []byte) error {
	records, err := splitRecords(data)
	if err != nil {
		return err
	}

	sRecs, gRecs, dRecs, pRecs, err := validateSections(records)
	if err != nil {
		return err
	}

	var gPayload strings.Builder
	for _, r := range gRecs {
		gPayload.WriteString(r.payloadString())
	}
	global, err := parseGlobal(gPayload.String())
	if err != nil {
		return fmt.Errorf("global section: %w", err)
	}

	entities, index, err := buildDirectory(dRecs)
	if err != nil {
		return err
	}
	for _, e := range entities {
		e.Base().model = m
	}

	m.Anomalies = nil
	if err := resolveContent(entities, pRecs, index, &global, m); err != nil {
		return err
	}

	var startText strings.Builder
	for _, r := range sRecs {
		startText.WriteString(r.payloadString())
	}
	m.StartText = strings.TrimRight(startText.String(), " ")

	m.Global = global
	m.entities = entities
	m.index = index
	m.unitsConverted = false
	m.nextSeq = nextOddSeq(entities)

	if *m.Options.ConvertUnits {
		m.ConvertToMillimetres()
	}

	return nil
}

func nextOddSeq(entities []Entity) int {
	max := 0
	for _, e := range entities {
		if s := e.Base().DE.SequenceNumber; s > max {
			max = s
		}
	}
	if max%2 == 0 {
		max++
	}
	return max + 2
}

// ConvertToMillimetres rescales every entity's geometry by the Global
// section's unit conversion factor and resets the factor to 1. It is
// idempotent: a second call after the first is a no-op, since the
// conversion is only ever applied once per load.
func (m *Model) ConvertToMillimetres() {
	if m.unitsConverted {
		return
	}
	factor := m.Global.cf()
	if factor != 1.0 {
		for _, e := range m.entities {
			e.rescale(factor)
		}
		m.Global.UnitsFlag = UnitsMillimeters
		m.Global.UnitsName = "MM"
	}
	m.unitsConverted = true
}

// Write renders the model to path. It sweeps orphaned entities, renumbers
// every Directory Entry to consecutive odd sequence numbers, and writes
// through a temporary file followed by an atomic rename so a failed write
// never corrupts an existing file at path.
func (m *Model) Write(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("iges: %s already exists", path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	// Pruning an orphan can orphan its own dependents, so the sweep runs to
	// a fixpoint.
	for {
		kept := sweepOrphans(m.entities, m)
		stable := len(kept) == len(m.entities)
		m.entities = kept
		if stable {
			break
		}
	}

	// Renumber every DE first, so forward references and DE-level pointer
	// fields can be rewritten before any parameter data is formatted.
	remap := make(map[int]int, len(m.entities))
	for i, e := range m.entities {
		remap[e.Base().DE.SequenceNumber] = 2*i + 1
	}
	m.index = make(map[int]Entity, len(m.entities))
	for i, e := range m.entities {
		de := &e.Base().DE
		de.SequenceNumber = 2*i + 1
		de.Structure = remapPointer(de.Structure, remap)
		de.TransformPointer = remapPointer(de.TransformPointer, remap)
		de.View = remapPointer(de.View, remap)
		de.LabelDisplayAssoc = remapPointer(de.LabelDisplayAssoc, remap)
		if de.LineFontPattern < 0 {
			de.LineFontPattern = remapPointer(de.LineFontPattern, remap)
		}
		if de.Level < 0 {
			de.Level = remapPointer(de.Level, remap)
		}
		if de.Color < 0 {
			de.Color = remapPointer(de.Color, remap)
		}
		m.index[de.SequenceNumber] = e
	}

	d := m.Global.delims()

	type rendered struct {
		de     DirectoryEntry
		chunks []string
	}
	out := make([]rendered, len(m.entities))

	pSeq := 1
	for i, e := range m.entities {
		payload, err := e.formatPD(d, &m.Global)
		if err != nil {
			return fmt.Errorf("DE %d: %w", e.Base().DE.SequenceNumber, err)
		}
		chunks := splitIntoPDRecords(payload)

		e.Base().DE.ParameterData = pSeq
		e.Base().DE.ParamLineCount = len(chunks)
		pSeq += len(chunks)

		out[i] = rendered{de: e.Base().DE, chunks: chunks}
	}
	m.nextSeq = 2*len(m.entities) + 1

	sChunks := splitTextRecords(m.startSectionText(), 72)
	gChunks := splitTextRecords(m.Global.format(), 72)

	var body strings.Builder
	for i, chunk := range sChunks {
		body.WriteString(formatRecord(chunk, sectionStart, i+1))
		body.WriteString("\n")
	}
	for i, chunk := range gChunks {
		body.WriteString(formatRecord(chunk, sectionGlobal, i+1))
		body.WriteString("\n")
	}

	for _, r := range out {
		for _, line := range r.de.format(r.de.SequenceNumber) {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}

	pCount := 0
	for _, r := range out {
		for _, chunk := range r.chunks {
			padded := chunk
			if len(padded) < 64 {
				padded += strings.Repeat(" ", 64-len(padded))
			}
			backPtr := fixedField(r.de.SequenceNumber, 8)
			pCount++
			body.WriteString(formatRecord(padded+backPtr, sectionParameter, pCount))
			body.WriteString("\n")
		}
	}

	body.WriteString(formatTerminator(sectionCounts{s: len(sChunks), g: len(gChunks), d: 2 * len(out), p: pCount}))
	body.WriteString("\n")

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body.String()), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (m *Model) startSectionText() string {
	if m.StartText != "" {
		return m.StartText
	}
	text := m.Options.ProductID
	if text == "" {
		text = " "
	}
	return text
}

// remapPointer rewrites a DE pointer field from its pre-write sequence
// number to the renumbered one, preserving the negation convention. A
// pointer whose target is no longer in the model is
// cleared.
func remapPointer(p int, remap map[int]int) int {
	if p == 0 {
		return 0
	}
	n, ok := remap[absInt(p)]
	if !ok {
		return 0
	}
	if p < 0 {
		return -n
	}
	return n
}

// splitTextRecords wraps text into width-column chunks, always returning
// at least one (possibly blank) chunk.
func splitTextRecords(text string, width int) []string {
	if text == "" {
		return []string{""}
	}
	var chunks []string
	for len(text) > 0 {
		n := width
		if n > len(text) {
			n = len(text)
		}
		chunks = append(chunks, text[:n])
		text = text[n:]
	}
	return chunks
}
