package mirror

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/sandpiper-dev/igdbmatch/internal/store"
)

// decodeRaw unmarshals a raw upstream page (a JSON array of objects) into
// generic maps so per-entity decoders can pull out their typed fields and
// stash the rest as opaque Passthrough fields.
func decodeRaw(body []byte) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func toUint64(v interface{}) uint64 {
	switch n := v.(type) {
	case float64:
		return uint64(n)
	case json.Number:
		i, _ := n.Int64()
		return uint64(i)
	default:
		return 0
	}
}

func toInt32(v interface{}) int32 {
	switch n := v.(type) {
	case float64:
		return int32(n)
	default:
		return 0
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func passthrough(raw map[string]interface{}, known ...string) store.JSON {
	skip := make(map[string]bool, len(known))
	for _, k := range known {
		skip[k] = true
	}
	rest := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if !skip[k] {
			rest[k] = v
		}
	}
	b, _ := json.Marshal(rest)
	return store.JSON{JSON: datatypes.JSON(b)}
}
