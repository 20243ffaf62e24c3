package store

// IndexSpec describes the indexes DropCollection (re)creates for one
// collection: per-entity collections are modeled as a value-typed
// Collection[T] parameterized by an IndexSpec descriptor rather than a
// virtual CreateIndexes method.
type IndexSpec struct {
	// TextField is the column carrying a full-text index, empty if the
	// entity has none (Company and other passthrough entities are
	// id-indexed only).
	TextField string
	// Ascending lists columns that get a plain ascending index.
	Ascending []string
	// Composite lists column tuples that get a composite ascending index
	// (ExternalGame's (uid, category)).
	Composite [][]string
}
