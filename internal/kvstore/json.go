package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode marks stored data that is present but cannot be parsed.
var ErrDecode = errors.New("kvstore: stored value is not valid JSON")

// LoadJSON reads key and decodes it into v. found is false when the key is
// absent. Unparsable data yields an error wrapping ErrDecode; callers treat
// both outcomes as "no prior state".
func LoadJSON(s Store, key string, v any) (found bool, err error) {
	raw, ok, err := s.Read(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("%w: key %q: %v", ErrDecode, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.Write(key, string(data))
}
