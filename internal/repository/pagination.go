package repository

// PaginationMeta is the listing envelope shared by every paged endpoint.
type PaginationMeta struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

func buildMeta(page, limit, totalItems int) PaginationMeta {
	totalPages := (totalItems + limit - 1) / limit
	return PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
	}
}

// orderClause resolves a caller-supplied sort key against a whitelist of
// column expressions. Unknown keys fall back to the first entry of fallback,
// anything but "desc" sorts ascending. Keys never reach the SQL text
// unescorted. The unique tiebreak column keeps rows tied on the sort key in
// a fixed order, so LIMIT/OFFSET pages never repeat or skip a tied row.
func orderClause(allowed map[string]string, sortBy, order, fallback, tiebreak string) string {
	col, ok := allowed[sortBy]
	if !ok {
		col = allowed[fallback]
	}
	dir := "ASC"
	if order == "desc" {
		dir = "DESC"
	}
	return col + " " + dir + ", " + tiebreak + " ASC"
}
