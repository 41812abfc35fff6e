package shipdef

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseText reads the line-oriented ship format. Blank lines are ignored;
// every other line is either a label (skipped by position) or data:
//
//	<label>
//	<label>
//	<total rect count, engines included>
//	<label>
//	<engine count>
//	<label>
//	ex ey ox oy theta mass            (one per hull rect)
//	<label>
//	ex ey ox oy theta mass thrust     (one per engine)
//	<label>
//	R G B
//	<label>
//	maxSpeed maxAngularSpeed
//
// The result is not validated.
func ParseText(r io.Reader) (*Definition, error) {
	lines, err := dataLines(r)
	if err != nil {
		return nil, err
	}
	p := &textParser{lines: lines}

	p.skip(2)
	total := p.ints(1)[0]
	p.skip(1)
	numEngines := p.ints(1)[0]
	if p.err == nil && (total < 0 || numEngines < 0 || numEngines > total) {
		return nil, fmt.Errorf("%w: %d engines in %d rects", ErrMalformed, numEngines, total)
	}

	def := &Definition{}
	p.skip(1)
	for i := 0; i < total-numEngines && p.err == nil; i++ {
		f := p.floats(6)
		def.Hull = append(def.Hull, rectSpec(f))
	}
	p.skip(1)
	for i := 0; i < numEngines && p.err == nil; i++ {
		f := p.floats(7)
		def.Engines = append(def.Engines, EngineSpec{RectSpec: rectSpec(f), Thrust: f[6]})
	}
	p.skip(1)
	rgb := p.ints(3)
	def.Color = RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
	p.skip(1)
	speeds := p.floats(2)
	def.MaxSpeed, def.MaxAngularSpeed = speeds[0], speeds[1]

	if p.err != nil {
		return nil, p.err
	}
	return def, nil
}

type numberedLine struct {
	n    int
	text string
}

func dataLines(r io.Reader) ([]numberedLine, error) {
	var lines []numberedLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, numberedLine{n: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ship file: %w", err)
	}
	return lines, nil
}

// textParser walks the non-blank lines. The first failure sticks and every
// later call becomes a no-op returning zero values.
type textParser struct {
	lines []numberedLine
	pos   int
	err   error
}

func (p *textParser) next() (numberedLine, bool) {
	if p.err != nil {
		return numberedLine{}, false
	}
	if p.pos >= len(p.lines) {
		p.err = fmt.Errorf("%w: unexpected end of file", ErrMalformed)
		return numberedLine{}, false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, true
}

func (p *textParser) skip(n int) {
	for range n {
		p.next()
	}
}

func (p *textParser) fields(want int) (numberedLine, []string, bool) {
	line, ok := p.next()
	if !ok {
		return line, nil, false
	}
	fields := strings.Fields(line.text)
	if len(fields) < want {
		p.err = fmt.Errorf("%w: line %d: want %d values, got %d", ErrMalformed, line.n, want, len(fields))
		return line, nil, false
	}
	return line, fields[:want], true
}

func (p *textParser) floats(want int) []float64 {
	out := make([]float64, want)
	line, fields, ok := p.fields(want)
	if !ok {
		return out
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			p.err = fmt.Errorf("%w: line %d: %w", ErrMalformed, line.n, err)
			return out
		}
		out[i] = v
	}
	return out
}

func (p *textParser) ints(want int) []int {
	out := make([]int, want)
	line, fields, ok := p.fields(want)
	if !ok {
		return out
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			p.err = fmt.Errorf("%w: line %d: %w", ErrMalformed, line.n, err)
			return out
		}
		out[i] = v
	}
	return out
}

func rectSpec(f []float64) RectSpec {
	return RectSpec{
		ExtentX: f[0],
		ExtentY: f[1],
		OffsetX: f[2],
		OffsetY: f[3],
		Theta:   f[4],
		Mass:    f[5],
	}
}
