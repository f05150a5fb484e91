package domain

import "fmt"

// RevenueRange is one of the fixed revenue buckets buyers can filter on.
type RevenueRange string

const (
	Revenue300kTo500k RevenueRange = "300k-500k"
	Revenue500kTo1m   RevenueRange = "500k-1m"
	Revenue1mTo2m     RevenueRange = "1m-2m"
	Revenue2mPlus     RevenueRange = "2m-plus"
)

// Bounds returns the inclusive dollar bounds of the bucket. The top bucket
// is open-ended and reports max < 0.
func (r RevenueRange) Bounds() (min, max int64) {
	switch r {
	case Revenue300kTo500k:
		return 300_000, 500_000
	case Revenue500kTo1m:
		return 500_000, 1_000_000
	case Revenue1mTo2m:
		return 1_000_000, 2_000_000
	case Revenue2mPlus:
		return 2_000_000, -1
	}
	return 0, -1
}

func (r RevenueRange) Contains(revenue int64) bool {
	min, max := r.Bounds()
	if revenue < min {
		return false
	}
	return max < 0 || revenue <= max
}

// Label is the display form shown in filter chips.
func (r RevenueRange) Label() string {
	switch r {
	case Revenue300kTo500k:
		return "$300K - $500K"
	case Revenue500kTo1m:
		return "$500K - $1M"
	case Revenue1mTo2m:
		return "$1M - $2M"
	case Revenue2mPlus:
		return "$2M+"
	}
	return string(r)
}

func ParseRevenueRange(s string) (RevenueRange, error) {
	switch RevenueRange(s) {
	case Revenue300kTo500k, Revenue500kTo1m, Revenue1mTo2m, Revenue2mPlus:
		return RevenueRange(s), nil
	}
	return "", fmt.Errorf("unknown revenue range %q", s)
}
