// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package iges

import (
	"strings"
	"testing"
)

func TestFormatRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		section sectionLetter
		seq     int
	}{
		{"short payload", "HELLO", sectionGlobal, 1},
		{"empty payload", "", sectionStart, 42},
		{"exactly 72 columns", strings.Repeat("x", 72), sectionDirectory, 9999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := formatRecord(tt.payload, tt.section, tt.seq)
			if len(line) != 80 {
				t.Fatalf("formatRecord produced %d columns, want 80", len(line))
			}
			rec, err := parseRecord(line)
			if err != nil {
				t.Fatalf("parseRecord: %v", err)
			}
			if rec.section != tt.section {
				t.Errorf("section = %q, want %q", string(rec.section), string(tt.section))
			}
			if rec.seq != tt.seq {
				t.Errorf("seq = %d, want %d", rec.seq, tt.seq)
			}
			if got := strings.TrimRight(rec.payloadString(), " "); got != tt.payload {
				t.Errorf("payload = %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestParseRecordRejectsShortLine(t *testing.T) {
	_, err := parseRecord(strings.Repeat("x", 79))
	if err == nil {
		t.Fatal("expected error for a 79-column line")
	}
}

func TestParseRecordRejectsBadSectionLetter(t *testing.T) {
	line := formatRecord("payload", sectionGlobal, 1)
	// Corrupt column 73 (index 72) to an unrecognised section letter.
	corrupted := line[:72] + "X" + line[73:]
	_, err := parseRecord(corrupted)
	if err == nil {
		t.Fatal("expected error for a bad section letter")
	}
}

func TestValidateSectionsHappyPath(t *testing.T) {
	var recs []record
	for i := 1; i <= 2; i++ {
		r, _ := parseRecord(formatRecord("s", sectionStart, i))
		recs = append(recs, r)
	}
	for i := 1; i <= 1; i++ {
		r, _ := parseRecord(formatRecord("g", sectionGlobal, i))
		recs = append(recs, r)
	}
	for i := 1; i <= 4; i++ {
		r, _ := parseRecord(formatRecord("d", sectionDirectory, i))
		recs = append(recs, r)
	}
	for i := 1; i <= 1; i++ {
		r, _ := parseRecord(formatRecord("p", sectionParameter, i))
		recs = append(recs, r)
	}
	term, _ := parseRecord(formatTerminator(sectionCounts{s: 2, g: 1, d: 4, p: 1}))
	recs = append(recs, term)

	s, g, d, p, err := validateSections(recs)
	if err != nil {
		t.Fatalf("validateSections: %v", err)
	}
	if len(s) != 2 || len(g) != 1 || len(d) != 4 || len(p) != 1 {
		t.Fatalf("got counts s=%d g=%d d=%d p=%d", len(s), len(g), len(d), len(p))
	}
}

func TestValidateSectionsDetectsSequenceGap(t *testing.T) {
	r1, _ := parseRecord(formatRecord("g", sectionGlobal, 1))
	r2, _ := parseRecord(formatRecord("g", sectionGlobal, 3)) // gap: should be 2
	term, _ := parseRecord(formatTerminator(sectionCounts{g: 2}))
	_, _, _, _, err := validateSections([]record{r1, r2, term})
	if err == nil {
		t.Fatal("expected a sequence-gap error")
	}
}

func TestValidateSectionsDetectsOutOfOrderSection(t *testing.T) {
	d, _ := parseRecord(formatRecord("d", sectionDirectory, 1))
	g, _ := parseRecord(formatRecord("g", sectionGlobal, 1)) // regresses D -> G
	term, _ := parseRecord(formatTerminator(sectionCounts{}))
	_, _, _, _, err := validateSections([]record{d, g, term})
	if err == nil {
		t.Fatal("expected an out-of-order section error")
	}
}

func TestValidateSectionsDetectsTerminatorMismatch(t *testing.T) {
	r1, _ := parseRecord(formatRecord("g", sectionGlobal, 1))
	term, _ := parseRecord(formatTerminator(sectionCounts{g: 2})) // claims 2, only 1 present
	_, _, _, _, err := validateSections([]record{r1, term})
	if err == nil {
		t.Fatal("expected a terminator-mismatch error")
	}
}

func TestValidateSectionsRequiresTerminator(t *testing.T) {
	r1, _ := parseRecord(formatRecord("g", sectionGlobal, 1))
	_, _, _, _, err := validateSections([]record{r1})
	if err == nil {
		t.Fatal("expected a missing-terminator error")
	}
}

func TestSplitRecordsAcceptsSeventyTwoPlusEightForm(t *testing.T) {
	full := formatRecord("payload", sectionGlobal, 7)
	line72, trailer8 := full[:72], full[72:]
	data := []byte(line72 + "\n" + trailer8 + "\n")
	recs, err := splitRecords(data)
	if err != nil {
		t.Fatalf("splitRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].section != sectionGlobal || recs[0].seq != 7 {
		t.Fatalf("got section=%q seq=%d, want G/7", string(recs[0].section), recs[0].seq)
	}
}

func TestParseTerminatorRoundTrip(t *testing.T) {
	counts := sectionCounts{s: 1, g: 1, d: 12, p: 34}
	payload := formatTerminator(counts)
	rec, err := parseRecord(payload)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}
	got, err := parseTerminator(rec.payloadString())
	if err != nil {
		t.Fatalf("parseTerminator: %v", err)
	}
	if got != counts {
		t.Fatalf("got %+v, want %+v", got, counts)
	}
}
