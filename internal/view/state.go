package view

import "token-pulse-go/internal/models"

const (
	DefaultSortField     = models.SortByVolume24h
	DefaultSortDirection = models.Desc
)

// QueryState is the sort and filter selection of one column.
type QueryState struct {
	SortField     models.SortField     `json:"sortField"`
	SortDirection models.SortDirection `json:"sortDirection"`
	Filters       models.Filters       `json:"filters"`
}

func NewQueryState() QueryState {
	return QueryState{
		SortField:     DefaultSortField,
		SortDirection: DefaultSortDirection,
		Filters:       models.DefaultFilters(),
	}
}

// SelectSortField flips the direction when field is already active and
// otherwise switches to field, descending.
func (s *QueryState) SelectSortField(field models.SortField) {
	if s.SortField == field {
		s.ToggleSortDirection()
		return
	}
	s.SortField = field
	s.SortDirection = models.Desc
}

func (s *QueryState) ToggleSortDirection() {
	s.SortDirection = s.SortDirection.Flip()
}

func (s *QueryState) SetFilter(dimension models.FilterDimension, bucket string) error {
	if err := ValidateBucket(dimension, bucket); err != nil {
		return err
	}
	if bucket == "" {
		bucket = models.BucketAll
	}

	switch dimension {
	case models.FilterMarketCap:
		s.Filters.MarketCap = bucket
	case models.FilterVolume:
		s.Filters.Volume = bucket
	case models.FilterHolders:
		s.Filters.Holders = bucket
	}
	return nil
}

func (s *QueryState) ResetFilters() {
	s.Filters = models.DefaultFilters()
}

func (s QueryState) ActiveFilterCount() int {
	count := 0
	for _, name := range []string{s.Filters.MarketCap, s.Filters.Volume, s.Filters.Holders} {
		if !isAll(name) {
			count++
		}
	}
	return count
}

func (s QueryState) Query(search string) Query {
	return Query{
		Search:        search,
		SortField:     s.SortField,
		SortDirection: s.SortDirection,
		Filters:       s.Filters,
	}
}
