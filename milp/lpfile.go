// SPDX-License-Identifier: MIT
//
// File: lpfile.go
// Role: CPLEX LP text export, readable by most MILP solvers.

package milp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const lpLineWidth = 255

var lpNameReplacer = strings.NewReplacer(
	" ", "_", "-", "_", "+", "_", "[", "_", "]", "_", ">", "_",
	"<", "_", "/", "_", ",", "_", ":", "_", "*", "_", "^", "_", "=", "_",
)

// LPName maps an arbitrary identifier to a valid LP-format name.
func LPName(s string) string {
	if s == "" {
		return "_"
	}

	return lpNameReplacer.Replace(s)
}

// WriteLP writes m in CPLEX LP format. Names are sanitized with LPName;
// ErrDuplicateName is returned if two variables or two constraints
// sanitize to the same name.
func (m *Model) WriteLP(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := m.checkLPNames(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	lw := &lpWriter{w: bw}

	lw.raw(fmt.Sprintf("\\* %s *\\\n", m.name))
	if m.dir == Maximize {
		lw.raw("Maximize\n")
	} else {
		lw.raw("Minimize\n")
	}
	obj := make([]Term, 0, len(m.vars))
	for j, v := range m.vars {
		if v.obj != 0 {
			obj = append(obj, Term{Var: Var(j), Coef: v.obj})
		}
	}
	lw.start("OBJ:")
	if len(obj) == 0 {
		lw.token("0", LPName(m.vars[0].name))
	}
	m.writeTerms(lw, obj)
	lw.end()

	lw.raw("Subject To\n")
	for _, r := range m.rows {
		lw.start(LPName(r.Name) + ":")
		m.writeTerms(lw, r.Terms)
		lw.word(r.Sense.String())
		lw.word(formatCoef(r.RHS))
		lw.end()
	}

	var bounds, generals, binaries []string
	for _, v := range m.vars {
		name := LPName(v.name)
		switch v.kind {
		case Binary:
			binaries = append(binaries, name)
			continue
		case Integer:
			generals = append(generals, name)
		}
		switch {
		case v.lo == 0 && math.IsInf(v.hi, 1):
		case v.lo == v.hi:
			bounds = append(bounds, fmt.Sprintf(" %s = %s", name, formatCoef(v.lo)))
		case math.IsInf(v.hi, 1):
			bounds = append(bounds, fmt.Sprintf(" %s >= %s", name, formatCoef(v.lo)))
		default:
			bounds = append(bounds, fmt.Sprintf(" %s <= %s <= %s", formatCoef(v.lo), name, formatCoef(v.hi)))
		}
	}
	if len(bounds) > 0 {
		lw.raw("Bounds\n")
		for _, b := range bounds {
			lw.raw(b + "\n")
		}
	}
	if len(generals) > 0 {
		lw.raw("Generals\n")
		for _, g := range generals {
			lw.raw(g + "\n")
		}
	}
	if len(binaries) > 0 {
		lw.raw("Binaries\n")
		for _, b := range binaries {
			lw.raw(b + "\n")
		}
	}
	lw.raw("End\n")

	if lw.err != nil {
		return lw.err
	}

	return bw.Flush()
}

func (m *Model) checkLPNames() error {
	seen := make(map[string]string, len(m.vars))
	for _, v := range m.vars {
		name := LPName(v.name)
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("milp: variables %q and %q both write as %q: %w", prev, v.name, name, ErrDuplicateName)
		}
		seen[name] = v.name
	}

	seen = map[string]string{"OBJ": "OBJ"}
	for _, r := range m.rows {
		name := LPName(r.Name)
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("milp: constraints %q and %q both write as %q: %w", prev, r.Name, name, ErrDuplicateName)
		}
		seen[name] = r.Name
	}

	return nil
}

func (m *Model) writeTerms(lw *lpWriter, terms []Term) {
	for i, t := range terms {
		name := LPName(m.vars[t.Var].name)
		c := t.Coef
		sign := "+"
		if c < 0 {
			sign, c = "-", -c
		}
		if i == 0 && sign == "+" {
			sign = ""
		}
		coef := ""
		if c != 1 {
			coef = formatCoef(c)
		}
		lw.token(sign, coef, name)
	}
}

func formatCoef(c float64) string { return strconv.FormatFloat(c, 'g', 12, 64) }

// lpWriter wraps long rows; LP readers limit line length.
type lpWriter struct {
	w   *bufio.Writer
	col int
	err error
}

func (l *lpWriter) raw(s string) {
	if l.err != nil {
		return
	}
	_, l.err = l.w.WriteString(s)
	l.col = 0
}

func (l *lpWriter) start(label string) {
	l.raw(label)
	l.col = len(label)
}

// token writes the non-empty parts of one term separated by spaces.
func (l *lpWriter) token(parts ...string) {
	for _, p := range parts {
		if p != "" {
			l.word(p)
		}
	}
}

func (l *lpWriter) word(s string) {
	if l.err != nil {
		return
	}
	if l.col+1+len(s) > lpLineWidth {
		if _, l.err = l.w.WriteString("\n"); l.err != nil {
			return
		}
		l.col = 0
	}
	_, l.err = l.w.WriteString(" " + s)
	l.col += 1 + len(s)
}

func (l *lpWriter) end() { l.raw("\n") }
