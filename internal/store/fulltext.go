package store

import "fmt"

// Per-dialect full-text search fragments. MySQL uses MATCH...AGAINST for
// both the filter and the score; Postgres uses to_tsvector/ts_rank; SQLite
// joins against a shadow FTS5 virtual table kept in sync by triggers
// created in ensureFullTextDDL; SQL Server uses CONTAINS with a constant
// score (CONTAINSTABLE's rank is not portable enough to trust as the sole
// ranking signal — ties fall through to the matcher's deterministic
// tie-breakers). This generalizes the dialect-switch shape of
// localnerve-jam-build-propsdb's
// database.Connect ("pick a DSN per dialect") to "pick a text-search
// fragment per dialect."

type searchFragment struct {
	// matchSQL is a boolean predicate, sqliteJoin is appended instead when
	// the dialect needs a join against a shadow table.
	matchSQL  string
	scoreSQL  string
	sqliteJoin string
	args      func(term string) []interface{}
}

func fragmentFor(dialect, table, textField string) searchFragment {
	switch dialect {
	case "postgres":
		return searchFragment{
			matchSQL: fmt.Sprintf("to_tsvector('simple', %s) @@ plainto_tsquery('simple', ?)", textField),
			scoreSQL: fmt.Sprintf("ts_rank(to_tsvector('simple', %s), plainto_tsquery('simple', ?))", textField),
			args:     func(term string) []interface{} { return []interface{}{term, term} },
		}
	case "sqlserver":
		return searchFragment{
			matchSQL: fmt.Sprintf("CONTAINS(%s, ?)", textField),
			scoreSQL: "1.0",
			args:     func(term string) []interface{} { return []interface{}{term} },
		}
	case "sqlite":
		fts := table + "_fts"
		return searchFragment{
			sqliteJoin: fmt.Sprintf("JOIN %s ON %s.rowid = %s.id", fts, fts, table),
			matchSQL:   fmt.Sprintf("%s MATCH ?", fts),
			scoreSQL:   fmt.Sprintf("-bm25(%s)", fts),
			args:       func(term string) []interface{} { return []interface{}{term} },
		}
	default: // mysql, mariadb
		return searchFragment{
			matchSQL: fmt.Sprintf("MATCH(%s) AGAINST (? IN NATURAL LANGUAGE MODE)", textField),
			scoreSQL: fmt.Sprintf("MATCH(%s) AGAINST (?)", textField),
			args:     func(term string) []interface{} { return []interface{}{term, term} },
		}
	}
}

// ensureFullTextDDL returns the DDL statement(s) needed after a fresh
// AutoMigrate to make TextField searchable, or nil if the dialect's
// declarative index tag (applied via AutoMigrate) is already sufficient.
func ensureFullTextDDL(dialect, table, textField string) []string {
	switch dialect {
	case "mysql":
		return []string{fmt.Sprintf("ALTER TABLE %s ADD FULLTEXT INDEX idx_%s_text (%s)", table, table, textField)}
	case "postgres":
		return []string{fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_text ON %s USING GIN (to_tsvector('simple', %s))",
			table, table, textField)}
	case "sqlite":
		fts := table + "_fts"
		return []string{
			fmt.Sprintf("CREATE VIRTUAL TABLE IF NOT EXISTS %s USING fts5(%s, content='%s', content_rowid='id')", fts, textField, table),
			fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %[1]s_ai AFTER INSERT ON %[2]s BEGIN
				INSERT INTO %[1]s(rowid, %[3]s) VALUES (new.id, new.%[3]s);
			END`, fts, table, textField),
			fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %[1]s_ad AFTER DELETE ON %[2]s BEGIN
				INSERT INTO %[1]s(%[1]s, rowid, %[3]s) VALUES('delete', old.id, old.%[3]s);
			END`, fts, table, textField),
			fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %[1]s_au AFTER UPDATE ON %[2]s BEGIN
				INSERT INTO %[1]s(%[1]s, rowid, %[3]s) VALUES('delete', old.id, old.%[3]s);
				INSERT INTO %[1]s(rowid, %[3]s) VALUES (new.id, new.%[3]s);
			END`, fts, table, textField),
		}
	case "sqlserver":
		// CONTAINS requires a full-text catalog + index; provisioning a
		// catalog is an operator/DBA concern outside migration scope, so
		// this dialect expects the catalog to already exist and only
		// documents the requirement here.
		return nil
	default:
		return nil
	}
}
