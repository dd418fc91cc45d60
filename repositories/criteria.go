package repositories

import (
	"context"
	"crm-app/types"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Order sorts by one column. Ties are always broken by id ascending.
type Order struct {
	Column string
	Desc   bool
}

// Range is a half-open [From, To) filter. A nil bound is open.
type Range struct {
	Column string
	From   interface{}
	To     interface{}
}

// Criteria is the full query state of a list call.
type Criteria struct {
	Equals map[string]interface{}
	In     map[string][]types.SnowflakeID
	Ranges []Range
	Order  *Order
	Page   int
	Size   int // 0 disables paging
}

func (c Criteria) WithEq(column string, value interface{}) Criteria {
	eq := make(map[string]interface{}, len(c.Equals)+1)
	for k, v := range c.Equals {
		eq[k] = v
	}
	eq[column] = value
	c.Equals = eq
	return c
}

func (c Criteria) WithIn(column string, ids []types.SnowflakeID) Criteria {
	in := make(map[string][]types.SnowflakeID, len(c.In)+1)
	for k, v := range c.In {
		in[k] = v
	}
	in[column] = ids
	c.In = in
	return c
}

func (c Criteria) OrderBy(column string, desc bool) Criteria {
	c.Order = &Order{Column: column, Desc: desc}
	return c
}

func (c Criteria) Paginate(page, size int) Criteria {
	c.Page = page
	c.Size = size
	return c
}

type Page[T any] struct {
	Rows  []T   `json:"rows"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

const MaxPageSize = 200

type columnSet map[string]bool

func newColumnSet(cols ...string) columnSet {
	set := make(columnSet, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}

func (s columnSet) check(col string) error {
	if !s[col] {
		return types.NewValidationError(col, "unknown column")
	}
	return nil
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// filterScope validates every referenced column before building the
// conditions, so an unknown column never reaches the store.
func filterScope(cols columnSet, c Criteria) (func(*gorm.DB) *gorm.DB, error) {
	var exprs []clause.Expression
	for col, val := range c.Equals {
		if err := cols.check(col); err != nil {
			return nil, err
		}
		exprs = append(exprs, clause.Eq{Column: column(col), Value: val})
	}
	for col, ids := range c.In {
		if err := cols.check(col); err != nil {
			return nil, err
		}
		values := make([]interface{}, 0, len(ids))
		for _, id := range ids {
			values = append(values, id)
		}
		exprs = append(exprs, clause.IN{Column: column(col), Values: values})
	}
	for _, r := range c.Ranges {
		if err := cols.check(r.Column); err != nil {
			return nil, err
		}
		if r.From != nil {
			exprs = append(exprs, clause.Gte{Column: column(r.Column), Value: r.From})
		}
		if r.To != nil {
			exprs = append(exprs, clause.Lt{Column: column(r.Column), Value: r.To})
		}
	}
	if c.Order != nil {
		if err := cols.check(c.Order.Column); err != nil {
			return nil, err
		}
	}
	if c.Size < 0 || c.Page < 0 {
		return nil, types.NewValidationError("page", "page and size must not be negative")
	}

	return func(tx *gorm.DB) *gorm.DB {
		if len(exprs) == 0 {
			return tx
		}
		return tx.Clauses(clause.Where{Exprs: exprs})
	}, nil
}

// listPage runs the count and the row query of one list call. expand adds
// the joins of the entity; it is applied to the row query only.
func listPage[T any](ctx context.Context, db *gorm.DB, cols columnSet, c Criteria, expand func(*gorm.DB) *gorm.DB) (Page[T], error) {
	scope, err := filterScope(cols, c)
	if err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{Page: c.Page, Size: c.Size}
	if c.Size > MaxPageSize {
		page.Size = MaxPageSize
	}
	if page.Size > 0 && page.Page <= 0 {
		page.Page = 1
	}

	if page.Size > 0 {
		if err := db.WithContext(ctx).Model(new(T)).Scopes(scope).Count(&page.Total).Error; err != nil {
			return Page[T]{}, types.NewStoreError("count", err)
		}
	}

	query := db.WithContext(ctx).Model(new(T))
	if expand != nil {
		query = expand(query)
	}
	query = query.Scopes(scope)
	if c.Order != nil {
		query = query.Order(clause.OrderByColumn{Column: column(c.Order.Column), Desc: c.Order.Desc})
	}
	query = query.Order(clause.OrderByColumn{Column: column("id")})
	if page.Size > 0 {
		query = query.Offset((page.Page - 1) * page.Size).Limit(page.Size)
	}

	rows := make([]T, 0)
	if err := query.Find(&rows).Error; err != nil {
		return Page[T]{}, types.NewStoreError("list", err)
	}
	page.Rows = rows
	if page.Size == 0 {
		page.Total = int64(len(rows))
	}
	return page, nil
}

// firstByID loads one row with its joins and maps a miss to NotFoundError.
func firstByID[T any](ctx context.Context, db *gorm.DB, entity string, id types.SnowflakeID, expand func(*gorm.DB) *gorm.DB) (*T, error) {
	var row T
	query := db.WithContext(ctx).Model(new(T))
	if expand != nil {
		query = expand(query)
	}
	err := query.Where(clause.Eq{Column: column("id"), Value: id}).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(entity, id)
		}
		return nil, types.NewStoreError("get "+entity, err)
	}
	return &row, nil
}

func exists[T any](ctx context.Context, db *gorm.DB, id types.SnowflakeID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Where(clause.Eq{Column: column("id"), Value: id}).Count(&count).Error
	if err != nil {
		return false, types.NewStoreError("exists", err)
	}
	return count > 0, nil
}
