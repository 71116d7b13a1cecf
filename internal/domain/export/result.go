package export

// Result is the normalized table produced by one export: a sheet name, an
// ordered header list, and rows whose cells correspond positionally to the
// headers. Sheet-name length limits are a rendering concern, not enforced here.
type Result struct {
	SheetName string
	Headers   []string
	Rows      [][]any
}

// Row appends a row. The caller is responsible for supplying exactly one cell
// per header; Valid reports whether that held for every row.
func (r *Result) Row(cells ...any) {
	r.Rows = append(r.Rows, cells)
}

// Valid reports whether every row has exactly len(Headers) cells.
func (r *Result) Valid() bool {
	for _, row := range r.Rows {
		if len(row) != len(r.Headers) {
			return false
		}
	}
	return true
}
