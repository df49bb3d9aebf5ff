package entity

import "encoding/json"

// MarshalSortedJSON renders v as pretty-printed JSON with object keys
// sorted — the output contract for host persistence (§6). Go's
// encoding/json already sorts map[string]interface{} keys when
// encoding a map, so round-tripping through a generic decode gets
// struct field order out of the way without hand-writing a key-sorting
// encoder.
func MarshalSortedJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.MarshalIndent(generic, "", "  ")
}
