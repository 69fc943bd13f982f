package align

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Backend names an alignment algorithm.
type Backend string

const (
	BackendDifflib Backend = "difflib"
	BackendMyers   Backend = "myers"
)

// ParseBackend validates a backend name. Empty selects difflib.
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case "", BackendDifflib:
		return BackendDifflib, nil
	case BackendMyers:
		return BackendMyers, nil
	default:
		return "", fmt.Errorf("unknown alignment backend %q", name)
	}
}

type options struct {
	backend  Backend
	autoJunk bool
}

// Option configures Align.
type Option func(*options)

// WithBackend selects the alignment algorithm.
func WithBackend(b Backend) Option {
	return func(o *options) {
		if b != "" {
			o.backend = b
		}
	}
}

// WithAutoJunk toggles the difflib popularity heuristic, which treats tokens
// occurring in more than 1% of a manual transcript of 200 or more tokens as
// junk. It is on by default.
func WithAutoJunk(enabled bool) Option {
	return func(o *options) { o.autoJunk = enabled }
}

// Align aligns autogen against manual and returns the ordered segments.
func Align(autogen, manual []string, opts ...Option) ([]Segment, error) {
	cfg := options{backend: BackendDifflib, autoJunk: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var raw []Segment
	switch cfg.backend {
	case BackendDifflib:
		raw = alignDifflib(autogen, manual, cfg.autoJunk)
	case BackendMyers:
		raw = alignMyers(autogen, manual)
	default:
		return nil, fmt.Errorf("unknown alignment backend %q", cfg.backend)
	}

	segments := coalesce(raw)
	for i, seg := range segments {
		if err := seg.validate(i); err != nil {
			return nil, err
		}
	}
	if !slices.Equal(AutogenSide(segments), autogen) {
		return nil, &AlignmentInvariantError{Index: -1, Reason: "autogen side does not round-trip"}
	}
	if !slices.Equal(ManualSide(segments), manual) {
		return nil, &AlignmentInvariantError{Index: -1, Reason: "manual side does not round-trip"}
	}
	return segments, nil
}

func alignDifflib(autogen, manual []string, autoJunk bool) []Segment {
	d := &differ{
		a:        autogen,
		b:        manual,
		chars:    make(map[string][]string),
		cruncher: difflib.NewMatcher(nil, nil),
	}
	matcher := difflib.NewMatcherWithJunk(autogen, manual, autoJunk, nil)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			d.equal(op.I1, op.I2)
		case 'd':
			d.out = append(d.out, AutogenOnly(slices.Clone(autogen[op.I1:op.I2])...))
		case 'i':
			d.out = append(d.out, ManualOnly(slices.Clone(manual[op.J1:op.J2])...))
		case 'r':
			d.fancyReplace(op.I1, op.I2, op.J1, op.J2)
		}
	}
	return d.out
}

// Token pairs inside a replace region synchronise only when their character
// similarity exceeds syncCutoff.
const (
	syncFloor  = 0.74
	syncCutoff = 0.75
)

// differ walks replace regions the way a line differ does: each region is
// split around its most similar token pair, or around the first identical
// pair when nothing is similar enough, so tokens the opcodes left unmatched
// (popular tokens under autojunk) still surface as Equal.
type differ struct {
	a, b     []string
	chars    map[string][]string
	cruncher *difflib.SequenceMatcher
	out      []Segment
}

func (d *differ) equal(lo, hi int) {
	for _, tok := range d.a[lo:hi] {
		d.out = append(d.out, Equal(tok))
	}
}

func (d *differ) runes(tok string) []string {
	if cached, ok := d.chars[tok]; ok {
		return cached
	}
	out := make([]string, 0, len(tok))
	for _, r := range tok {
		out = append(out, string(r))
	}
	d.chars[tok] = out
	return out
}

func (d *differ) fancyReplace(alo, ahi, blo, bhi int) {
	bestRatio := syncFloor
	bestI, bestJ := -1, -1
	eqI, eqJ := -1, -1
	for j := blo; j < bhi; j++ {
		bj := d.b[j]
		d.cruncher.SetSeq2(d.runes(bj))
		for i := alo; i < ahi; i++ {
			ai := d.a[i]
			if ai == bj {
				if eqI < 0 {
					eqI, eqJ = i, j
				}
				continue
			}
			d.cruncher.SetSeq1(d.runes(ai))
			if d.cruncher.RealQuickRatio() <= bestRatio || d.cruncher.QuickRatio() <= bestRatio {
				continue
			}
			if r := d.cruncher.Ratio(); r > bestRatio {
				bestRatio, bestI, bestJ = r, i, j
			}
		}
	}

	identical := false
	if bestRatio < syncCutoff {
		if eqI < 0 {
			d.out = append(d.out, Replace(slices.Clone(d.a[alo:ahi]), slices.Clone(d.b[blo:bhi])))
			return
		}
		bestI, bestJ, identical = eqI, eqJ, true
	}

	d.fancyHelper(alo, bestI, blo, bestJ)
	if identical {
		d.out = append(d.out, Equal(d.a[bestI]))
	} else {
		d.out = append(d.out, Replace([]string{d.a[bestI]}, []string{d.b[bestJ]}))
	}
	d.fancyHelper(bestI+1, ahi, bestJ+1, bhi)
}

func (d *differ) fancyHelper(alo, ahi, blo, bhi int) {
	switch {
	case alo < ahi && blo < bhi:
		d.fancyReplace(alo, ahi, blo, bhi)
	case alo < ahi:
		d.out = append(d.out, AutogenOnly(slices.Clone(d.a[alo:ahi])...))
	case blo < bhi:
		d.out = append(d.out, ManualOnly(slices.Clone(d.b[blo:bhi])...))
	}
}

// surrogateStart and surrogateEnd bound the UTF-16 surrogate range, which is
// not valid as a standalone rune.
const (
	surrogateStart = 0xD800
	surrogateEnd   = 0xDFFF
)

// tokenRunes maps every distinct token to a private rune so the
// character-level Myers diff runs over whole tokens.
type tokenRunes struct {
	ids    map[string]rune
	tokens []string
}

func (t *tokenRunes) encode(tokens []string) []rune {
	out := make([]rune, len(tokens))
	for i, tok := range tokens {
		id, ok := t.ids[tok]
		if !ok {
			id = rune(len(t.tokens) + 1)
			if id >= surrogateStart {
				id += surrogateEnd - surrogateStart + 1
			}
			t.ids[tok] = id
			t.tokens = append(t.tokens, tok)
		}
		out[i] = id
	}
	return out
}

func (t *tokenRunes) decode(text string) []string {
	out := make([]string, 0, len(text))
	for _, r := range text {
		idx := int(r)
		if idx > surrogateEnd {
			idx -= surrogateEnd - surrogateStart + 1
		}
		out = append(out, t.tokens[idx-1])
	}
	return out
}

func alignMyers(autogen, manual []string) []Segment {
	table := &tokenRunes{ids: make(map[string]rune)}
	a := table.encode(autogen)
	b := table.encode(manual)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(a, b, false)

	var out []Segment
	for _, d := range diffs {
		tokens := table.decode(d.Text)
		if len(tokens) == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for _, tok := range tokens {
				out = append(out, Equal(tok))
			}
		case diffmatchpatch.DiffDelete:
			out = append(out, AutogenOnly(tokens...))
		case diffmatchpatch.DiffInsert:
			out = append(out, ManualOnly(tokens...))
		}
	}
	return out
}

// coalesce merges every run of mismatch segments lying between two Equal
// segments into a single segment: Replace when both sides are present,
// otherwise AutogenOnly or ManualOnly.
func coalesce(raw []Segment) []Segment {
	out := make([]Segment, 0, len(raw))
	var pendingAutogen, pendingManual []string
	flush := func() {
		switch {
		case len(pendingAutogen) > 0 && len(pendingManual) > 0:
			out = append(out, Replace(pendingAutogen, pendingManual))
		case len(pendingAutogen) > 0:
			out = append(out, AutogenOnly(pendingAutogen...))
		case len(pendingManual) > 0:
			out = append(out, ManualOnly(pendingManual...))
		}
		pendingAutogen, pendingManual = nil, nil
	}
	for _, seg := range raw {
		if seg.Kind == KindEqual {
			flush()
			out = append(out, seg)
			continue
		}
		pendingAutogen = append(pendingAutogen, seg.Autogen...)
		pendingManual = append(pendingManual, seg.Manual...)
	}
	flush()
	return out
}
