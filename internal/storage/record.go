package storage

// Record is a schema-less document stored in a collection. Records in the
// same collection need not share fields; readers pull values through the
// defaulted accessors and decode into typed structs at the domain boundary.
type Record map[string]any

func (r Record) ID() string {
	return r.GetString("id", "")
}

func (r Record) GetString(key, def string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return def
}

func (r Record) GetBool(key string, def bool) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return def
}

func (r Record) GetFloat(key string, def float64) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func (r Record) GetInt(key string, def int) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return def
}

// Matches reports equality against every non-nil filter value; nil filter
// values are ignored rather than matched against null fields.
func (r Record) Matches(filters map[string]any) bool {
	for field, value := range filters {
		if value == nil {
			continue
		}
		if !valuesEqual(r[field], value) {
			return false
		}
	}
	return true
}

func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// valuesEqual compares two field values with numeric widening, since values
// decoded from JSON arrive as float64 while callers often filter with ints.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
