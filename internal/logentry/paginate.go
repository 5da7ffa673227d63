package logentry

// Page is one newest-first window over a filtered entry list.
type Page struct {
	Entries    []string
	Total      int
	Page       int
	TotalPages int
}

// Paginate returns page number page of size pageSize, counted from the end of
// entries: page 1 holds the newest pageSize entries. Entries inside a page keep
// their original order. pageSize <= 0 disables pagination.
func Paginate(entries []string, pageSize int, page int) Page {
	total := len(entries)
	if pageSize <= 0 {
		return Page{Entries: entries, Total: total, Page: 1, TotalPages: 1}
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	end := total - (page-1)*pageSize
	start := end - pageSize
	if start < 0 {
		start = 0
	}

	return Page{
		Entries:    entries[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}
