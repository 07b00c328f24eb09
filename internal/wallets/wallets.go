package wallets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type List struct {
	Wallets []string
	// Created is set when the file was missing and has just been written.
	Created bool
}

// Load reads one wallet per line from path, skipping blank lines. A missing
// file is created and filled with defaults.
func Load(path string, defaults []string) (List, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		err = create(path, defaults)
		if err != nil {
			return List{}, err
		}

		return List{Wallets: append([]string(nil), defaults...), Created: true}, nil
	}

	if err != nil {
		return List{}, fmt.Errorf("os.Open: %w", err)
	}

	defer file.Close()

	list, err := Parse(file)
	if err != nil {
		return List{}, err
	}

	return List{Wallets: list}, nil
}

func Parse(r io.Reader) ([]string, error) {
	var list []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		wallet := strings.TrimSpace(scanner.Text())
		if wallet == "" {
			continue
		}

		list = append(list, wallet)
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("scanner.Err: %w", err)
	}

	return list, nil
}

func create(path string, defaults []string) error {
	var content strings.Builder

	for _, wallet := range defaults {
		content.WriteString(wallet)
		content.WriteString("\n")
	}

	err := os.WriteFile(path, []byte(content.String()), 0o644)
	if err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}
