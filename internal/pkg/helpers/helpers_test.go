package helpers_test

import (
	"testing"

	"github.com/pandu-magang/pandu-backend/internal/pkg/helpers"
)

func TestParseDate(t *testing.T) {
	d, err := helpers.ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if helpers.FormatDate(d) != "2026-09-01" {
		t.Errorf("FormatDate(ParseDate) = %s, want 2026-09-01", helpers.FormatDate(d))
	}

	for _, s := range []string{"01-09-2026", "2026/09/01", "2026-13-01", ""} {
		if _, err := helpers.ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) expected error, got nil", s)
		}
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 10, 0, 10},   // page below 1 falls back to the first page
		{2, 0, 10, 10},   // size 0 falls back to the default
		{2, 500, 10, 10}, // size above the cap falls back to the default
	}
	for _, c := range cases {
		offset, limit := helpers.CalculateOffsetLimit(c.page, c.size)
		if offset != c.wantOffset || limit != c.wantLimit {
			t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
				c.page, c.size, offset, limit, c.wantOffset, c.wantLimit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := helpers.NewPaginationInfo(25, 2, 10)
	if info.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", info.TotalPages)
	}
	if info.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", info.CurrentPage)
	}
	if info.TotalItems != 25 {
		t.Errorf("TotalItems = %d, want 25", info.TotalItems)
	}

	empty := helpers.NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 {
		t.Errorf("TotalPages for empty result = %d, want 1", empty.TotalPages)
	}

	past := helpers.NewPaginationInfo(5, 9, 10)
	if past.CurrentPage != 1 {
		t.Errorf("CurrentPage beyond last page = %d, want 1", past.CurrentPage)
	}
}
