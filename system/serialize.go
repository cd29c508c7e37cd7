package system

import (
	"encoding/json"
	"io"
)

// Save writes sys to w as indented JSON.
func Save(sys *System, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(sys)
}

// Load reads a System previously written by Save.
func Load(r io.Reader) (*System, error) {
	var sys System
	if err := json.NewDecoder(r).Decode(&sys); err != nil {
		return nil, err
	}

	return &sys, nil
}
