package dataset

// FilterAll is the sentinel selection that matches every row
const FilterAll = "All"

// Filters holds the dashboard's sidebar selections. Zero values and the
// "All" sentinel match everything; a filter whose column is absent from the
// table is ignored rather than failing.
type Filters struct {
	Country     string `json:"country,omitempty"`
	Gender      string `json:"gender,omitempty"`
	AgeMin      int    `json:"age_min,omitempty"`
	AgeMax      int    `json:"age_max,omitempty"`
	OrgSize     string `json:"org_size,omitempty"`
	RemoteWork  string `json:"remote_work,omitempty"`
	TechCompany string `json:"tech_company,omitempty"`
	Employment  string `json:"employment,omitempty"`
	DevType     string `json:"dev_type,omitempty"`
}

// column names the filters act on
const (
	colCountry     = "Country"
	colAge         = "Age"
	colGender      = "Gender"
	colOrgSize     = "no_employees"
	colRemoteWork  = "remote_work"
	colTechCompany = "tech_company"
	colEmployment  = "Employment"
	colDevType     = "DevType"
)

// IsZero reports whether no filter is active
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Apply returns a new table containing only the rows matching every active
// filter. The input table is not modified.
func (f Filters) Apply(t *Table) *Table {
	if f.IsZero() {
		return t
	}

	type match struct {
		col   *Column
		value string
	}
	var exact []match
	addExact := func(name, value string) {
		if value == "" || value == FilterAll {
			return
		}
		if col, ok := t.Column(name); ok {
			exact = append(exact, match{col, value})
		}
	}
	addExact(colCountry, f.Country)
	addExact(colGender, f.Gender)
	addExact(colOrgSize, f.OrgSize)
	addExact(colRemoteWork, f.RemoteWork)
	addExact(colTechCompany, f.TechCompany)
	addExact(colEmployment, f.Employment)
	addExact(colDevType, f.DevType)

	ageCol, hasAge := t.Column(colAge)
	ageActive := hasAge && (f.AgeMin != 0 || f.AgeMax != 0)

	return t.Filter(func(row int) bool {
		for _, m := range exact {
			if m.col.IsNull(row) || m.col.Value(row) != m.value {
				return false
			}
		}
		if ageActive {
			age, ok := ageCol.Float(row)
			if !ok {
				return false
			}
			if f.AgeMin != 0 && age < float64(f.AgeMin) {
				return false
			}
			if f.AgeMax != 0 && age > float64(f.AgeMax) {
				return false
			}
		}
		return true
	})
}

// Options describes the selectable values for one filter control.
type Options struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// FilterOptions enumerates the distinct values of each filterable column
// present in the two survey tables, for populating the dashboard controls.
func FilterOptions(mentalHealth, developer *Table) []Options {
	var out []Options
	add := func(t *Table, name string) {
		col, ok := t.Column(name)
		if !ok {
			return
		}
		out = append(out, Options{Column: name, Values: col.Distinct()})
	}
	add(mentalHealth, colCountry)
	add(mentalHealth, colGender)
	add(mentalHealth, colOrgSize)
	add(mentalHealth, colRemoteWork)
	add(mentalHealth, colTechCompany)
	add(developer, colEmployment)
	add(developer, colDevType)
	return out
}
