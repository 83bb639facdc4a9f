package view

import (
	"errors"
	"fmt"
	"math"

	"token-pulse-go/internal/models"
)

var (
	ErrUnknownDimension = errors.New("unknown filter dimension")
	ErrUnknownBucket    = errors.New("unknown filter bucket")
)

// Bucket is a named range, lower bound inclusive and upper bound exclusive.
type Bucket struct {
	Name string  `json:"name"`
	Min  float64 `json:"-"`
	Max  float64 `json:"-"`
}

func (b Bucket) Contains(v float64) bool {
	return v >= b.Min && v < b.Max
}

func under(name string, upper float64) Bucket {
	return Bucket{Name: name, Min: math.Inf(-1), Max: upper}
}

func between(name string, lower, upper float64) Bucket {
	return Bucket{Name: name, Min: lower, Max: upper}
}

func over(name string, lower float64) Bucket {
	return Bucket{Name: name, Min: lower, Max: math.Inf(1)}
}

var buckets = map[models.FilterDimension][]Bucket{
	models.FilterMarketCap: {
		under("under-100k", 100_000),
		between("100k-500k", 100_000, 500_000),
		between("500k-1m", 500_000, 1_000_000),
		between("1m-10m", 1_000_000, 10_000_000),
		over("over-10m", 10_000_000),
	},
	models.FilterVolume: {
		under("under-10k", 10_000),
		between("10k-50k", 10_000, 50_000),
		between("50k-100k", 50_000, 100_000),
		between("100k-500k", 100_000, 500_000),
		over("over-500k", 500_000),
	},
	models.FilterHolders: {
		under("under-100", 100),
		between("100-500", 100, 500),
		between("500-1k", 500, 1_000),
		between("1k-5k", 1_000, 5_000),
		over("over-5k", 5_000),
	},
}

// Buckets returns the named ranges of a dimension in display order.
func Buckets(dimension models.FilterDimension) []Bucket {
	return buckets[dimension]
}

func lookupBucket(dimension models.FilterDimension, name string) (Bucket, bool) {
	for _, b := range buckets[dimension] {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// ValidateBucket accepts "all", the empty string, or a bucket of dimension.
func ValidateBucket(dimension models.FilterDimension, name string) error {
	if _, ok := buckets[dimension]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
	if isAll(name) {
		return nil
	}
	if _, ok := lookupBucket(dimension, name); !ok {
		return fmt.Errorf("%w: %q for %s", ErrUnknownBucket, name, dimension)
	}
	return nil
}

func isAll(name string) bool {
	return name == "" || name == models.BucketAll
}

// predicate returns nil for inactive or unknown buckets.
func predicate(dimension models.FilterDimension, name string, value func(models.Token) float64) func(models.Token) bool {
	if isAll(name) {
		return nil
	}
	bucket, ok := lookupBucket(dimension, name)
	if !ok {
		return nil
	}
	return func(token models.Token) bool {
		return bucket.Contains(value(token))
	}
}
