package repository

import (
	"sort"
	"strconv"

	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase/interfaces"
)

var errAlreadyExists = interfaces.ErrAlreadyExists

func tableOrDefault(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// sortNewestFirst matches the ordering of the memory repositories.
func sortNewestFirst(removals []entities.Removal) {
	sort.SliceStable(removals, func(i, j int) bool {
		return removals[i].CreatedAt.After(removals[j].CreatedAt)
	})
}
