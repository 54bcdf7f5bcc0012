package fs

import (
	"errors"
	"os"
)

func CreateFile(fileName string) (*os.File, error) {
	file, err := os.Create(fileName)
	return file, err
}

func OpenFile(fileName string) (*os.File, error) {
	file, err := os.Open(fileName)
	return file, err
}

// FileSize returns the size of a regular file in bytes.
func FileSize(fileName string) (int64, error) {
	stat, err := os.Stat(fileName)
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// Exists checks if a file exists or not.
func Exists(fileName string) (bool, error) {
	_, err := os.Stat(fileName)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
