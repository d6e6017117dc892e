package matrix

import "strings"

// AddCriterion returns a new slice with c appended. The insert is not applied
// when the cap is reached, the trimmed name is empty, the weight is negative
// or the id is already taken.
func AddCriterion(criteria []Criterion, c Criterion) ([]Criterion, bool) {
	c.Name = strings.TrimSpace(c.Name)
	if len(criteria) >= MaxCriteria || c.Name == "" || c.Weight < 0 || c.ID == "" {
		return criteria, false
	}
	if indexCriterion(criteria, c.ID) >= 0 {
		return criteria, false
	}
	out := make([]Criterion, len(criteria), len(criteria)+1)
	copy(out, criteria)
	return append(out, c), true
}

// UpdateCriterion replaces the name and weight of the criterion with the given id.
func UpdateCriterion(criteria []Criterion, id, name string, weight int) ([]Criterion, bool) {
	name = strings.TrimSpace(name)
	i := indexCriterion(criteria, id)
	if i < 0 || name == "" || weight < 0 {
		return criteria, false
	}
	out := CloneCriteria(criteria)
	out[i].Name = name
	out[i].Weight = weight
	return out, true
}

// RemoveCriterion drops the criterion with the given id. Ratings that reference
// it are left in place; lookups by current pair ignore them.
func RemoveCriterion(criteria []Criterion, id string) ([]Criterion, bool) {
	i := indexCriterion(criteria, id)
	if i < 0 {
		return criteria, false
	}
	out := make([]Criterion, 0, len(criteria)-1)
	out = append(out, criteria[:i]...)
	return append(out, criteria[i+1:]...), true
}

// FindCriterion returns the criterion with the given id.
func FindCriterion(criteria []Criterion, id string) (Criterion, bool) {
	if i := indexCriterion(criteria, id); i >= 0 {
		return criteria[i], true
	}
	return Criterion{}, false
}

func CloneCriteria(criteria []Criterion) []Criterion {
	if criteria == nil {
		return nil
	}
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

func indexCriterion(criteria []Criterion, id string) int {
	for i := range criteria {
		if criteria[i].ID == id {
			return i
		}
	}
	return -1
}
