package mimedata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"mimedex/internal/mediatype"
)

//go:embed types.json
var raw []byte

// Types returns the embedded dataset. Each call decodes a fresh copy so
// callers can mutate the result freely.
func Types() ([]mediatype.Data, error) {
	var types []mediatype.Data
	if err := json.Unmarshal(raw, &types); err != nil {
		return nil, fmt.Errorf("decode embedded dataset: %w", err)
	}
	return types, nil
}
