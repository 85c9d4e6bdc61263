package graph

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/dball/gindex/internal/types"
)

const defaultPathCacheSize = 512

// PathCache memoizes the split of a dotted attribute path ("employer.name")
// into its segments, since the query evaluator re-resolves the same small
// set of paths on every call and the split itself involves no state beyond
// the string.
type PathCache struct {
	segments *lru.Cache[string, []string]
}

// NewPathCache returns a path cache holding up to size parsed paths; 0
// selects a default.
func NewPathCache(size int) *PathCache {
	if size <= 0 {
		size = defaultPathCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		panic(types.NewError("path_cache_construction_failed", "size", size, "cause", err))
	}
	return &PathCache{segments: cache}
}

// ParsePath splits path on '.' and returns an error if any segment is
// empty, which covers a leading/trailing/doubled dot as well as the empty
// string.
func (pc *PathCache) ParsePath(path string) ([]string, error) {
	if segs, ok := pc.segments.Get(path); ok {
		return segs, nil
	}
	segs := strings.Split(path, ".")
	for _, s := range segs {
		if s == "" {
			return nil, errors.Errorf("malformed attribute path %q", path)
		}
	}
	pc.segments.Add(path, segs)
	return segs, nil
}
