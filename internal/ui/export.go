package ui

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// ExportJSON renders the preview items as indented JSON.
func ExportJSON(items []Item) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no pending tasks to export")
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal items: %w", err)
	}
	return string(data), nil
}

// ExportItems copies the JSON export through write, normally the system
// clipboard.
func ExportItems(items []Item, write func(string) error) error {
	data, err := ExportJSON(items)
	if err != nil {
		return err
	}
	if write == nil {
		write = writeClipboard
	}
	if err := write(data); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
