package logic

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"wardview/internal/domain"
	"wardview/internal/ui/state"
)

// Search is distinct from filtering: it never hides rows, it ranks the
// visible ones and lets n/N hop between matches.

// SearchRows fuzzy-matches the query against the selectable rows of the
// given list and returns their row indices, best match first.
func SearchRows(query string, rows []state.Row, people []domain.Person, entries []domain.Entry) []int {
	if query == "" {
		return nil
	}

	// Build one search string per selectable row, remembering which row
	// each came from.
	var texts []string
	var rowIdx []int
	for i, row := range rows {
		if !row.Selectable() {
			continue
		}
		texts = append(texts, searchText(row, people, entries))
		rowIdx = append(rowIdx, i)
	}

	matches := fuzzy.Find(query, texts)
	results := make([]int, 0, len(matches))
	for _, match := range matches {
		results = append(results, rowIdx[match.Index])
	}
	return results
}

// searchText flattens a row into the text search sees.
func searchText(row state.Row, people []domain.Person, entries []domain.Entry) string {
	switch row.Kind {
	case state.RowSection:
		return row.Section
	case state.RowPerson:
		for i := range people {
			if people[i].ID == row.PersonID {
				p := &people[i]
				return strings.Join([]string{p.Name, p.ID, string(p.Role), p.Email, p.Phone, p.Unit}, " ")
			}
		}
	case state.RowEntry:
		for i := range entries {
			if entries[i].ID == row.EntryID {
				e := &entries[i]
				return strings.Join([]string{e.Message, e.ResourceType, e.ResourceID, string(e.Level)}, " ")
			}
		}
	}
	return ""
}
