// CLAUDE:SUMMARY Gob serialization of compiled pronunciation maps for fast corpus loading.
package corpus

import (
	"encoding/gob"
	"fmt"
	"os"
)

// loadGob deserializes entries from a gob-encoded file into c.Entries.
func (c *Corpus) loadGob(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&c.Entries); err != nil {
		return fmt.Errorf("decode gob: %w", err)
	}
	return nil
}

// SaveGob serializes entries to a gob-encoded file at path.
func SaveGob(entries map[string][]Pronunciation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return nil
}
