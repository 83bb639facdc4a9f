package models

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryNew      Category = "new"
	CategoryTrending Category = "trending"
	CategoryMigrated Category = "migrated"
)

// Categories lists the dashboard columns in display order.
var Categories = []Category{CategoryNew, CategoryTrending, CategoryMigrated}

var categoryTitles = map[Category]string{
	CategoryNew:      "New Pairs",
	CategoryTrending: "Final Stretch",
	CategoryMigrated: "Migrated",
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

func (c Category) Title() string {
	return categoryTitles[c]
}

type Token struct {
	ID             string    `json:"id"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	PriceChange24h float64   `json:"priceChange24h"`
	Volume24h      float64   `json:"volume24h"`
	MarketCap      float64   `json:"marketCap"`
	Liquidity      float64   `json:"liquidity"`
	Holders        int       `json:"holders"`
	CreatedAt      time.Time `json:"createdAt"`
	Status         Category  `json:"status"`

	Logo            *string  `json:"logo,omitempty"`
	TimeAgo         *string  `json:"timeAgo,omitempty"`
	FDV             *float64 `json:"fdv,omitempty"`
	TxCount         *int     `json:"txCount,omitempty"`
	BondingProgress *int     `json:"bondingProgress,omitempty"` // 0-100
}

type SortField string

const (
	SortByPrice          SortField = "price"
	SortByPriceChange24h SortField = "priceChange24h"
	SortByVolume24h      SortField = "volume24h"
	SortByMarketCap      SortField = "marketCap"
	SortByLiquidity      SortField = "liquidity"
	SortByHolders        SortField = "holders"
)

var SortFields = []SortField{
	SortByPrice, SortByPriceChange24h, SortByVolume24h,
	SortByMarketCap, SortByLiquidity, SortByHolders,
}

func (f SortField) Valid() bool {
	for _, known := range SortFields {
		if f == known {
			return true
		}
	}
	return false
}

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

func (d SortDirection) Flip() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Direction is the transient price movement flag of the last tick.
// The zero value means no movement.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

type FilterDimension string

const (
	FilterMarketCap FilterDimension = "marketCap"
	FilterVolume    FilterDimension = "volume"
	FilterHolders   FilterDimension = "holders"
)

// BucketAll disables a filter dimension.
const BucketAll = "all"

type Filters struct {
	MarketCap string `json:"marketCap"`
	Volume    string `json:"volume"`
	Holders   string `json:"holders"`
}

func DefaultFilters() Filters {
	return Filters{MarketCap: BucketAll, Volume: BucketAll, Holders: BucketAll}
}
