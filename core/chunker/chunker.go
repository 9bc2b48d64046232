// Package chunker splits an ordered candidate sequence into bounded batches.
package chunker

import "fmt"

// ForEach emits ⌈len(values)/size⌉ chunks of at most size candidates each,
// in input order. Every chunk but the last has exactly size elements; the
// concatenation of all chunks equals the input. An empty input emits nothing.
// Emitted slices alias the input; candidates are immutable once read, so no
// copy is taken.
func ForEach(values []string, size int, emit func([]string) error) error {
	if size < 1 {
		return fmt.Errorf("chunk size must be >= 1, got %d", size)
	}
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		if err := emit(values[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// Split materializes the chunks of ForEach into a slice.
func Split(values []string, size int) ([][]string, error) {
	var out [][]string
	err := ForEach(values, size, func(c []string) error {
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of chunks Split would produce, ⌈n/size⌉.
func Count(n, size int) int {
	if size < 1 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
