package sqlboiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"

	"github.com/nrfta/liststate-go"
	"github.com/nrfta/liststate-go/sorter"
)

// Columns maps the parts of a liststate.Request to table columns.
type Columns struct {
	Sortable   []string
	Search     []string
	Tags       string
	Tiebreaker string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RequestToQueryMods converts a Request into SQLBoiler query mods.
//
// The conversion follows these rules:
//   - Q → qm.Where("(col1 ILIKE ? OR col2 ILIKE ?)", "%q%", "%q%")
//   - Tags → qm.Where("tags && ?", pq.Array(tags))
//   - Order → qm.OrderBy(`"field" DESC, "tiebreaker"`)
//   - Page/PageSize → qm.Offset((page-1)*size), qm.Limit(size)
//
// It fails with liststate.ErrInvalidSortField when the order names a column
// outside of Columns.Sortable.
func RequestToQueryMods(req liststate.Request, columns Columns) ([]qm.QueryMod, error) {
	mods := FilterQueryMods(req, columns)

	orderBy, err := buildOrderByClause(req.Order, columns)
	if err != nil {
		return nil, err
	}
	if orderBy != "" {
		mods = append(mods, qm.OrderBy(orderBy))
	}

	if req.PageSize > 0 {
		if offset := (max(req.Page, 1) - 1) * req.PageSize; offset > 0 {
			mods = append(mods, qm.Offset(offset))
		}
		mods = append(mods, qm.Limit(req.PageSize))
	}

	return mods, nil
}

// FilterQueryMods returns the WHERE mods of req: the ones a count query needs.
func FilterQueryMods(req liststate.Request, columns Columns) []qm.QueryMod {
	mods := []qm.QueryMod{}

	if req.Q.Valid && req.Q.String != "" && len(columns.Search) > 0 {
		pattern := "%" + likeEscaper.Replace(req.Q.String) + "%"

		parts := make([]string, len(columns.Search))
		args := make([]interface{}, len(columns.Search))
		for i, column := range columns.Search {
			parts[i] = quote(column) + " ILIKE ?"
			args[i] = pattern
		}

		mods = append(mods, qm.Where("("+strings.Join(parts, " OR ")+")", args...))
	}

	if len(req.Tags) > 0 && columns.Tags != "" {
		mods = append(mods, qm.Where(quote(columns.Tags)+" && ?", pq.Array(req.Tags)))
	}

	return mods
}

// buildOrderByClause constructs an ORDER BY clause from a compiled order.
//
// Example:
//
//	buildOrderByClause("-created_at", Columns{Tiebreaker: "id"})
//	→ `"created_at" DESC, "id"`
func buildOrderByClause(order string, columns Columns) (string, error) {
	field, reverse := sorter.Parse(order)

	var parts []string
	if field != "" {
		if len(columns.Sortable) > 0 && !slices.Contains(columns.Sortable, field) {
			return "", errors.Wrap(liststate.ErrInvalidSortField, fmt.Sprintf("%q", field))
		}

		part := quote(field)
		if reverse {
			part += " DESC"
		}
		parts = append(parts, part)
	}

	if columns.Tiebreaker != "" && columns.Tiebreaker != field {
		parts = append(parts, quote(columns.Tiebreaker))
	}

	return strings.Join(parts, ", "), nil
}

func quote(column string) string {
	return strmangle.IdentQuote('"', '"', column)
}
