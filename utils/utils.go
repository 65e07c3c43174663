package utils

import (
	"bufio"
	"github.com/twmb/murmur3"
	"os"
)

func HashString(s string) uint64 {
	hash := murmur3.New64()
	_, err := hash.Write([]byte(s))
	if err != nil {
		panic(err)
	}
	return hash.Sum64()
}

// HashStrings hashes the sequence, not the concatenation: a NUL byte after
// each part keeps ["ab","c"] and ["a","bc"] from colliding.
func HashStrings(ss []string) uint64 {
	hash := murmur3.New64()
	for _, s := range ss {
		if _, err := hash.Write([]byte(s)); err != nil {
			panic(err)
		}
		if _, err := hash.Write([]byte{0}); err != nil {
			panic(err)
		}
	}
	return hash.Sum64()
}

// ReadLines returns the file contents line by line, keeping blank lines.
// Corpus files use blank lines as sentence boundaries, so they matter.
func ReadLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	var result []string
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ReadList returns non-empty lines only, for word-per-line resources.
func ReadList(filePath string) ([]string, error) {
	lines, err := ReadLines(filePath)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) > 0 {
			result = append(result, line)
		}
	}

	return result, nil
}
