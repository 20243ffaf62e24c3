// Package store is a thin adapter over a document-style store: per-entity
// collections, bulk upsert, text + ascending indexes, text search with
// score projection. No MongoDB driver exists anywhere in the example pack,
// so this generalizes localnerve-jam-build-propsdb's GORM multi-dialect stack
// (mysql/postgres/sqlite/sqlserver) with a JSON passthrough column
// standing in for a document store's opaque fields — see DESIGN.md for
// the full resolution.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// Scored is a view type: the store's text-search score projected
// alongside the matched item, never mutated onto the entity itself.
type Scored[T any] struct {
	Score float64
	Item  T
}

// Collection is a value-typed, generic per-entity mirror of one upstream
// entity class, parameterized by an IndexSpec descriptor rather than a
// virtual CreateIndexes method. PT is the pointer-receiver method set
// (Identified) that Go generics require to be spelled out explicitly.
type Collection[T any, PT interface {
	*T
	Identified
}] struct {
	db         *gorm.DB
	table      string
	spec       IndexSpec
	generation atomic.Uint64
}

// NewCollection wraps db for the entity type T, stored in table, indexed
// per spec.
func NewCollection[T any, PT interface {
	*T
	Identified
}](db *gorm.DB, table string, spec IndexSpec) *Collection[T, PT] {
	return &Collection[T, PT]{db: db, table: table, spec: spec}
}

// GetItem returns the item with the given id, or nil if id == 0 or the item
// is absent.
func (c *Collection[T, PT]) GetItem(ctx context.Context, id uint64) (*T, error) {
	if id == 0 {
		return nil, nil
	}
	var item T
	err := c.db.WithContext(ctx).Table(c.table).Where("id = ?", id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItems returns items matching ids, or nil for an empty input.
func (c *Collection[T, PT]) GetItems(ctx context.Context, ids []uint64) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []T
	if err := c.db.WithContext(ctx).Table(c.table).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add bulk-upserts items by id, one round trip.
func (c *Collection[T, PT]) Add(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	gen := c.generation.Load()
	for i := range items {
		PT(&items[i]).SetGeneration(gen)
	}
	return c.db.WithContext(ctx).Table(c.table).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&items).Error
}

// Delete removes the item with the given id.
func (c *Collection[T, PT]) Delete(ctx context.Context, id uint64) error {
	var zero T
	return c.db.WithContext(ctx).Table(c.table).Where("id = ?", id).Delete(&zero).Error
}

// FindComposite returns items matching an exact-equality filter over
// multiple columns, used for ExternalGame's (uid, category) lookup.
func (c *Collection[T, PT]) FindComposite(ctx context.Context, conditions map[string]interface{}) ([]T, error) {
	var items []T
	q := c.db.WithContext(ctx).Table(c.table)
	for col, val := range conditions {
		q = q.Where(fmt.Sprintf("%s = ?", col), val)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DropCollection drops the table, re-runs AutoMigrate, and (re)creates the
// dialect-specific full-text setup declared by IndexSpec, all before any
// Add is issued, so readers never observe a collection without its
// indexes. It also bumps the generation
// counter so subsequent Add calls are stamped with the new generation.
func (c *Collection[T, PT]) DropCollection(ctx context.Context) error {
	db := c.db.WithContext(ctx)
	var zero T
	if err := db.Migrator().DropTable(c.table); err != nil {
		return fmt.Errorf("drop %s: %w", c.table, err)
	}
	if err := db.Table(c.table).AutoMigrate(&zero); err != nil {
		return fmt.Errorf("migrate %s: %w", c.table, err)
	}
	for _, cols := range c.spec.Composite {
		idxName := "idx_" + c.table + "_" + strings.Join(cols, "_")
		if !db.Migrator().HasIndex(&zero, idxName) {
			_ = db.Migrator().CreateIndex(&zero, idxName)
		}
	}
	if c.spec.TextField != "" {
		dialect := db.Dialector.Name()
		for _, stmt := range ensureFullTextDDL(dialect, c.table, c.spec.TextField) {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("fulltext setup %s: %w", c.table, err)
			}
		}
	}
	c.generation.Add(1)
	return nil
}

// TextSearch runs a case-insensitive, diacritic-tolerant (dialect-native)
// full text search against IndexSpec.TextField, sorted score-descending,
// bounded by limit. extraWhere/extraArgs let callers add an equality
// filter (the category ∈ DefaultSearchCategories restriction on the
// primary-name search).
func (c *Collection[T, PT]) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]Scored[T], error) {
	dialect := c.db.Dialector.Name()
	frag := fragmentFor(dialect, c.table, c.spec.TextField)

	type scoredRow struct {
		T
		Score float64 `gorm:"column:__score"`
	}

	q := c.db.WithContext(ctx).Table(c.table)
	if frag.sqliteJoin != "" {
		q = q.Joins(frag.sqliteJoin)
	}
	if dialect == "mysql" {
		q = q.Clauses(hints.UseIndex("idx_" + c.table + "_text"))
	}

	selectExpr := fmt.Sprintf("%s.*, (%s) AS __score", c.table, frag.scoreSQL)
	selectArgs := frag.args(term)
	q = q.Select(selectExpr, selectArgs...)

	whereArgs := frag.args(term)
	q = q.Where(frag.matchSQL, whereArgs...)

	if extraWhere != "" {
		q = q.Where(extraWhere, extraArgs...)
	}

	q = q.Order("__score DESC").Limit(limit)

	var rows []scoredRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("text search %s: %w", c.table, err)
	}

	out := make([]Scored[T], len(rows))
	for i, r := range rows {
		out[i] = Scored[T]{Score: r.Score, Item: r.T}
	}
	return out, nil
}

// Generation returns the collection's current generation counter, bumped by
// DropCollection.
func (c *Collection[T, PT]) Generation() uint64 {
	return c.generation.Load()
}
