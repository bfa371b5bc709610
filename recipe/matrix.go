package recipe

import "sort"

// Matrix enumerates build variants over sets of setting and option values.
// It is used to expand a CI-style variant matrix into concrete fingerprints.
type Matrix struct {
	Settings map[string][]string
	Options  map[string][]string
}

// Combinations returns all cartesian product combinations of the matrix.
// Keys are iterated alphabetically. Setting values are joined with "-",
// then combined with option values using "|".
func (m *Matrix) Combinations() []string {
	cartesian := func(kvs map[string][]string) []string {
		if len(kvs) == 0 {
			return nil
		}
		keys := make([]string, 0, len(kvs))
		for k := range kvs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		result := make([]string, len(kvs[keys[0]]))
		copy(result, kvs[keys[0]])
		for _, k := range keys[1:] {
			values := kvs[k]
			next := make([]string, 0, len(result)*len(values))
			for _, prev := range result {
				for _, v := range values {
					next = append(next, prev+"-"+v)
				}
			}
			result = next
		}
		return result
	}

	settingCombos := cartesian(m.Settings)
	optionCombos := cartesian(m.Options)

	if len(settingCombos) == 0 {
		return optionCombos
	}
	if len(optionCombos) == 0 {
		return settingCombos
	}
	result := make([]string, 0, len(settingCombos)*len(optionCombos))
	for _, s := range settingCombos {
		for _, o := range optionCombos {
			result = append(result, s+"|"+o)
		}
	}
	return result
}

// CombinationCount returns the total number of combinations without
// materializing them.
func (m *Matrix) CombinationCount() int {
	countPart := func(kvs map[string][]string) int {
		if len(kvs) == 0 {
			return 0
		}
		count := 1
		for _, v := range kvs {
			count *= len(v)
		}
		return count
	}
	settings := countPart(m.Settings)
	options := countPart(m.Options)
	if settings == 0 {
		return options
	}
	if options == 0 {
		return settings
	}
	return settings * options
}
