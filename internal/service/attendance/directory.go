package attendance

import (
	"regexp"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/sheet"
)

var (
	namePrefixRegex = regexp.MustCompile(`^(name|employee|emp|staff|mr\.|mrs\.|ms\.|dr\.)[\s:\-.]*`)
	idPrefixRegex   = regexp.MustCompile(`(?i)^(emp|id|no)[\-\s:]*`)
	wordSplitRegex  = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

// Identity is an employee as seen by the import pipeline.
type Identity struct {
	EmployeeID string
	Name       string
}

// Directory is an immutable lookup of active employees by name and by id. It is built
// once per import and shared by all sheet resolvers. Keys that point to more than
// one employee are dropped.
type Directory struct {
	byName  map[string]Identity
	byID    map[string]Identity
	byEmail map[string]Identity
}

func NewDirectory(employees []employee.Employee) *Directory {
	b := directoryBuilder{
		byName:    make(map[string]Identity),
		byID:      make(map[string]Identity),
		byEmail:   make(map[string]Identity),
		ambiguous: make(map[string]bool),
	}

	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		id := Identity{EmployeeID: e.ID, Name: e.FullName}

		for _, name := range []string{e.FullName, e.FirstName, e.LastName, e.Username} {
			b.add(b.byName, "n:", nameKey(name), id)
		}

		var ids []string
		if code := idKey(e.EmployeeCode); code != "" {
			ids = append(ids, code)
			if digits := nonDigitRegex.ReplaceAllString(code, ""); digits != "" {
				ids = append(ids, digits)
			}
		}
		if e.NationalID != nil {
			if nid := idKey(*e.NationalID); nid != "" {
				ids = append(ids, nid)
			}
		}
		for _, k := range ids {
			b.add(b.byID, "i:", k, id)
			b.add(b.byID, "i:", strings.TrimLeft(k, "0"), id)
		}
		b.add(b.byID, "i:", idKey(e.ID), id)

		b.add(b.byEmail, "e:", strings.ToLower(strings.TrimSpace(e.Email)), id)
	}

	return &Directory{byName: b.byName, byID: b.byID, byEmail: b.byEmail}
}

type directoryBuilder struct {
	byName, byID, byEmail map[string]Identity
	ambiguous             map[string]bool
}

func (b *directoryBuilder) add(m map[string]Identity, ns, key string, id Identity) {
	if key == "" || b.ambiguous[ns+key] {
		return
	}
	if existing, ok := m[key]; ok && existing.EmployeeID != id.EmployeeID {
		delete(m, key)
		b.ambiguous[ns+key] = true
		return
	}
	m[key] = id
}

func nameKey(s string) string {
	return strings.ToLower(sheet.Normalize(s))
}

func idKey(s string) string {
	return strings.ToLower(sheet.Normalize(s))
}

// Len counts the distinct employees the directory can match.
func (d *Directory) Len() int {
	seen := make(map[string]struct{})
	for _, m := range []map[string]Identity{d.byName, d.byID, d.byEmail} {
		for _, id := range m {
			seen[id.EmployeeID] = struct{}{}
		}
	}
	return len(seen)
}

// ByEmail finds an employee by email, ignoring case.
func (d *Directory) ByEmail(email string) (Identity, bool) {
	id, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return id, ok
}

// Match identifies the employee a row is about. Cells are scanned left to right and a
// name match wins over any id match in the same row; otherwise the first cell that
// matches an id is used. Cells shorter than two characters are ignored.
func (d *Directory) Match(row []string) (Identity, bool) {
	var idCandidate *Identity

	for _, cell := range row {
		if len([]rune(cell)) < 2 {
			continue
		}
		key := strings.ToLower(cell)

		if id, ok := d.matchName(key); ok {
			return id, true
		}

		if idCandidate == nil {
			if id, ok := d.matchID(cell); ok {
				idCandidate = &id
			}
		}
	}

	if idCandidate != nil {
		return *idCandidate, true
	}
	return Identity{}, false
}

func (d *Directory) matchName(key string) (Identity, bool) {
	if id, ok := d.byName[key]; ok {
		return id, true
	}

	cleaned := strings.TrimSpace(namePrefixRegex.ReplaceAllString(key, ""))
	if len([]rune(cleaned)) > 2 {
		if id, ok := d.byName[cleaned]; ok {
			return id, true
		}
	}

	for _, w := range wordSplitRegex.Split(key, -1) {
		if len([]rune(w)) < 3 {
			continue
		}
		if id, ok := d.byName[w]; ok {
			return id, true
		}
	}
	return Identity{}, false
}

func (d *Directory) matchID(cell string) (Identity, bool) {
	if id, ok := d.byID[strings.ToLower(cell)]; ok {
		return id, true
	}

	stripped := strings.ToLower(idPrefixRegex.ReplaceAllString(cell, ""))
	if id, ok := d.byID[stripped]; ok {
		return id, true
	}

	if digits := nonDigitRegex.ReplaceAllString(cell, ""); digits != "" {
		if id, ok := d.byID[digits]; ok {
			return id, true
		}
	}
	return Identity{}, false
}
