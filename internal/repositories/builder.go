package repositories

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"os-system/pkg/types"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// applyFilter aplica search/filter/sort/paginação de types.Filter sobre um
// SelectBuilder. searchFields são as colunas cobertas pelo ILIKE; allowedSort
// é a lista fechada de colunas ordenáveis.
func applyFilter(b sq.SelectBuilder, f types.Filter, searchFields []string, allowedSort map[string]string) sq.SelectBuilder {
	if f.Search != "" && len(searchFields) > 0 {
		pattern := "%" + strings.TrimSpace(f.Search) + "%"
		or := make(sq.Or, 0, len(searchFields))
		for _, col := range searchFields {
			or = append(or, sq.ILike{col: pattern})
		}
		b = b.Where(or)
	}

	for field, value := range f.Filter {
		if col, ok := allowedSort[field]; ok {
			b = b.Where(sq.Eq{col: value})
		}
	}

	for field, dir := range f.Sort {
		col, ok := allowedSort[field]
		if !ok {
			continue
		}
		if strings.EqualFold(dir, "desc") {
			b = b.OrderBy(col + " DESC")
		} else {
			b = b.OrderBy(col + " ASC")
		}
	}

	if f.WithPagination && f.Limit > 0 {
		b = b.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}
	return b
}
