package censor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// bannedWordsFile is the on-disk list; words are base64 encoded so the file
// itself stays clean
type bannedWordsFile struct {
	BannedWordsBase64 []string `json:"bannedWordsBase64"`
}

// DecodeBannedWords decodes base64 entries into lowercase words. A single bad
// entry fails the whole list.
func DecodeBannedWords(encoded []string) ([]string, error) {
	words := make([]string, 0, len(encoded))
	for i, entry := range encoded {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(entry))
		if err != nil {
			return nil, fmt.Errorf("banned word %d: %w", i, err)
		}
		word := strings.ToLower(strings.TrimSpace(string(raw)))
		if word == "" {
			return nil, fmt.Errorf("banned word %d: empty after decoding", i)
		}
		words = append(words, word)
	}
	return words, nil
}

// LoadBannedWords reads {"bannedWordsBase64": [...]} from path
func LoadBannedWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read banned words: %w", err)
	}

	var file bannedWordsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode banned words %s: %w", path, err)
	}

	return DecodeBannedWords(file.BannedWordsBase64)
}
