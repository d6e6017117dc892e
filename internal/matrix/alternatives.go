package matrix

import "strings"

// AddAlternative returns a new slice with a appended, or the input unchanged
// when the cap is reached, the trimmed name is empty or the id is taken.
func AddAlternative(alternatives []Alternative, a Alternative) ([]Alternative, bool) {
	a.Name = strings.TrimSpace(a.Name)
	if len(alternatives) >= MaxAlternatives || a.Name == "" || a.ID == "" {
		return alternatives, false
	}
	if indexAlternative(alternatives, a.ID) >= 0 {
		return alternatives, false
	}
	out := make([]Alternative, len(alternatives), len(alternatives)+1)
	copy(out, alternatives)
	return append(out, a), true
}

func UpdateAlternative(alternatives []Alternative, id, name string) ([]Alternative, bool) {
	name = strings.TrimSpace(name)
	i := indexAlternative(alternatives, id)
	if i < 0 || name == "" {
		return alternatives, false
	}
	out := CloneAlternatives(alternatives)
	out[i].Name = name
	return out, true
}

func RemoveAlternative(alternatives []Alternative, id string) ([]Alternative, bool) {
	i := indexAlternative(alternatives, id)
	if i < 0 {
		return alternatives, false
	}
	out := make([]Alternative, 0, len(alternatives)-1)
	out = append(out, alternatives[:i]...)
	return append(out, alternatives[i+1:]...), true
}

func FindAlternative(alternatives []Alternative, id string) (Alternative, bool) {
	if i := indexAlternative(alternatives, id); i >= 0 {
		return alternatives[i], true
	}
	return Alternative{}, false
}

func CloneAlternatives(alternatives []Alternative) []Alternative {
	if alternatives == nil {
		return nil
	}
	out := make([]Alternative, len(alternatives))
	copy(out, alternatives)
	return out
}

func indexAlternative(alternatives []Alternative, id string) int {
	for i := range alternatives {
		if alternatives[i].ID == id {
			return i
		}
	}
	return -1
}
