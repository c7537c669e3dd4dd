package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/corehr/corehr-backend/internal/apperror"
)

type item struct {
	Name    string
	Rank    int
	Created time.Time
	Score   *float64
}

var itemDescriptor = Descriptor[item]{
	DefaultSort:  "created",
	SearchFields: []string{"name"},
	Field: func(it item, name string) (interface{}, bool) {
		switch name {
		case "name":
			return it.Name, true
		case "rank":
			return it.Rank, true
		case "created":
			return it.Created, true
		case "score":
			if it.Score == nil {
				return nil, false
			}
			return *it.Score, true
		default:
			return nil, false
		}
	},
}

func score(v float64) *float64 { return &v }

func sampleItems() []item {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []item{
		{Name: "alpha", Rank: 3, Created: base.Add(1 * time.Hour), Score: score(7.5)},
		{Name: "Bravo", Rank: 1, Created: base.Add(2 * time.Hour), Score: score(9.0)},
		{Name: "charlie", Rank: 2, Created: base.Add(3 * time.Hour)},
		{Name: "delta", Rank: 5, Created: base.Add(4 * time.Hour), Score: score(3.2)},
		{Name: "Echo", Rank: 4, Created: base.Add(5 * time.Hour)},
	}
}

func TestTotalIndependentOfPaging(t *testing.T) {
	items := sampleItems()
	for _, limit := range []int{1, 2, 3, 10} {
		for page := 1; page <= 5; page++ {
			result, err := Run(items, itemDescriptor, Options{Page: page, Limit: limit})
			if err != nil {
				t.Fatalf("Run(page=%d, limit=%d): %v", page, limit, err)
			}
			if result.Total != len(items) {
				t.Errorf("page=%d limit=%d: total = %d, want %d", page, limit, result.Total, len(items))
			}
		}
	}
}

func TestPagesReconstructFullSequence(t *testing.T) {
	items := sampleItems()
	limit := 2

	full, err := Run(items, itemDescriptor, Options{Limit: len(items), SortBy: "rank", SortOrder: OrderAsc})
	if err != nil {
		t.Fatal(err)
	}

	var reconstructed []item
	pages := (full.Total + limit - 1) / limit
	for page := 1; page <= pages; page++ {
		result, err := Run(items, itemDescriptor, Options{Page: page, Limit: limit, SortBy: "rank", SortOrder: OrderAsc})
		if err != nil {
			t.Fatal(err)
		}
		reconstructed = append(reconstructed, result.Items...)
	}

	if len(reconstructed) != len(full.Items) {
		t.Fatalf("reconstructed %d items, want %d", len(reconstructed), len(full.Items))
	}
	for i := range full.Items {
		if reconstructed[i].Name != full.Items[i].Name {
			t.Errorf("position %d: got %q, want %q", i, reconstructed[i].Name, full.Items[i].Name)
		}
	}
}

func TestSortIsIdempotent(t *testing.T) {
	items := sampleItems()
	opts := Options{Limit: len(items), SortBy: "name", SortOrder: OrderAsc}

	first, err := Run(items, itemDescriptor, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(first.Items, itemDescriptor, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Items {
		if second.Items[i].Name != first.Items[i].Name {
			t.Errorf("position %d changed on re-sort: got %q, want %q", i, second.Items[i].Name, first.Items[i].Name)
		}
	}
}

func TestMissingSortFieldOrdersLast(t *testing.T) {
	items := sampleItems() // charlie and Echo have no score
	for _, order := range []Order{OrderAsc, OrderDesc} {
		result, err := Run(items, itemDescriptor, Options{Limit: len(items), SortBy: "score", SortOrder: order})
		if err != nil {
			t.Fatal(err)
		}
		last := result.Items[len(result.Items)-2:]
		for _, it := range last {
			if it.Score != nil {
				t.Errorf("order=%s: item %q with score sorted after scoreless items", order, it.Name)
			}
		}
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	items := sampleItems()
	result, err := Run(items, itemDescriptor, Options{Limit: 10, Search: "BRA"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 1 || result.Items[0].Name != "Bravo" {
		t.Errorf("search BRA: got total=%d, want Bravo only", result.Total)
	}
}

func TestFiltersAreANDCombined(t *testing.T) {
	items := sampleItems()
	result, err := Run(items, itemDescriptor, Options{
		Limit:   10,
		Filters: map[string]string{"name": "alpha", "rank": "3"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 1 {
		t.Errorf("matching both filters: total = %d, want 1", result.Total)
	}

	result, err = Run(items, itemDescriptor, Options{
		Limit:   10,
		Filters: map[string]string{"name": "alpha", "rank": "1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 0 {
		t.Errorf("contradictory filters: total = %d, want 0", result.Total)
	}
}

func TestStringSortIsCaseFolded(t *testing.T) {
	items := sampleItems()
	result, err := Run(items, itemDescriptor, Options{Limit: 10, SortBy: "name", SortOrder: OrderAsc})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "Bravo", "charlie", "delta", "Echo"}
	for i, it := range result.Items {
		if it.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, it.Name, want[i])
		}
	}
}

func TestOutOfRangePageIsEmptyNotError(t *testing.T) {
	items := sampleItems()
	result, err := Run(items, itemDescriptor, Options{Page: 99, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 0 {
		t.Errorf("out-of-range page returned %d items", len(result.Items))
	}
	if result.Total != len(items) {
		t.Errorf("total = %d, want %d", result.Total, len(items))
	}
}

func TestInvalidPagingIsRejected(t *testing.T) {
	items := sampleItems()
	cases := []Options{
		{Page: -1, Limit: 10},
		{Page: 1, Limit: -5},
	}
	for _, opts := range cases {
		_, err := Run(items, itemDescriptor, opts)
		if !apperror.Is(err, apperror.CodeInvalidArgument) {
			t.Errorf("Run(%+v): err = %v, want invalid argument", opts, err)
		}
	}
}

func TestStableTieOrder(t *testing.T) {
	base := time.Now().UTC()
	var items []item
	for i := 0; i < 6; i++ {
		items = append(items, item{Name: fmt.Sprintf("n%d", i), Rank: 1, Created: base})
	}
	result, err := Run(items, itemDescriptor, Options{Limit: 10, SortBy: "rank"})
	if err != nil {
		t.Fatal(err)
	}
	for i, it := range result.Items {
		if it.Name != fmt.Sprintf("n%d", i) {
			t.Errorf("tie order not stable at %d: got %q", i, it.Name)
		}
	}
}
