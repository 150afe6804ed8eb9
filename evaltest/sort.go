package evaltest

import (
	"path/filepath"
	"sort"
	"strconv"
)

// Number returns the first decimal number in the base name of file, or 0.
func Number(file string) int {
	name := filepath.Base(file)
	for i := 0; i < len(name); i++ {
		if !isDigit(name[i]) {
			continue
		}
		j := i + 1
		for j < len(name) && isDigit(name[j]) {
			j++
		}
		n, err := strconv.Atoi(name[i:j])
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// SortNumerically returns files ordered by Number, keeping the order of
// files with the same number.
func SortNumerically(files []string) []string {
	ret := append([]string(nil), files...)
	sort.SliceStable(ret, func(i, j int) bool {
		return Number(ret[i]) < Number(ret[j])
	})
	return ret
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
