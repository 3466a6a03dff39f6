package books

import "strings"

// FilterByName returns the books whose name contains term, ignoring case,
// in their original order. An empty term returns a copy of the whole list.
func FilterByName(list []Book, term string) []Book {
	out := make([]Book, 0, len(list))
	if term == "" {
		return append(out, list...)
	}
	needle := strings.ToLower(term)
	for _, b := range list {
		if strings.Contains(strings.ToLower(b.Name), needle) {
			out = append(out, b)
		}
	}
	return out
}
