package numeric

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// valueJSON is the wire form of a Value. The number travels as plain-style
// text so DECIMAL digits survive intact.
type valueJSON struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes v as {"kind":"decimal","value":"4.75"}.
func (v Value) MarshalJSON() ([]byte, error) {
	text, err := Format(v, StylePlain)
	if err != nil {
		return nil, err
	}
	quoted, err := sonic.Marshal(text)
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(valueJSON{Kind: v.kind.String(), Value: quoted})
}

// UnmarshalJSON accepts the MarshalJSON form. The value may also be a bare
// JSON number, and an absent kind means DOUBLE.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw valueJSON
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode numeric value: %w", err)
	}
	kind := KindDouble
	if raw.Kind != "" {
		k, err := ParseKind(raw.Kind)
		if err != nil {
			return err
		}
		kind = k
	}
	text := string(bytes.TrimSpace(raw.Value))
	if len(text) > 0 && text[0] == '"' {
		if err := sonic.UnmarshalString(text, &text); err != nil {
			return fmt.Errorf("decode numeric value: %w", err)
		}
	}
	parsed, err := FromText(text, kind)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
