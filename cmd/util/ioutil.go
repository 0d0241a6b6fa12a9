package util

import (
	"errors"
	"fmt"
	"os"
)

// CleanOrCreateTempFolder leaves an empty folder at path, removing whatever was there.
func CleanOrCreateTempFolder(path string) error {
	// file exist check is taken from: https://stackoverflow.com/questions/12518876/how-to-check-if-a-file-exists-in-go
	if _, err := os.Stat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing temp folder: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking temp folder: %w", err)
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("creating temp folder: %w", err)
	}
	return nil
}
