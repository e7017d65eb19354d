package query

import (
	"math"
	"testing"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}

	page, p := Paginate(items, 2, 2, 10)
	if len(page) != 2 || page[0] != 3 || p.TotalPages != 3 || p.Total != 5 {
		t.Fatalf("unexpected page: %v %+v", page, p)
	}
	page, p = Paginate(items, 9, 2, 10)
	if len(page) != 0 || p.Page != 9 {
		t.Fatalf("out of range page should be empty: %v %+v", page, p)
	}
	page, p = Paginate(items, 0, 0, 50)
	if len(page) != 5 || p.Page != 1 || p.Limit != 50 || p.TotalPages != 1 {
		t.Fatalf("defaults not applied: %v %+v", page, p)
	}
	page, p = Paginate([]int{}, 1, 10, 10)
	if len(page) != 0 || p.TotalPages != 0 {
		t.Fatalf("empty input: %v %+v", page, p)
	}
}

func TestPaginate_HugeValues(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3}

	page, p := Paginate(items, 922337203685477582, 10, 50)
	if len(page) != 0 || p.TotalPages != 1 || p.Total != 3 {
		t.Fatalf("huge page should be empty: %v %+v", page, p)
	}

	page, p = Paginate(items, math.MaxInt, math.MaxInt, 50)
	if len(page) != 0 || p.Limit != MaxLimit || p.TotalPages != 1 {
		t.Fatalf("huge page and limit: %v %+v", page, p)
	}

	page, p = Paginate(items, 1, math.MaxInt, 50)
	if len(page) != 3 || p.Limit != MaxLimit || p.TotalPages != 1 {
		t.Fatalf("limit should be capped want=%d got=%+v", MaxLimit, p)
	}
}
