package store

import (
	"errors"
	"fmt"
	"testing"
)

type record struct {
	ID   string
	Name string
}

func newCollection() *Collection[*record] {
	return New(func(r *record) string { return r.ID })
}

func TestInsertAndGet(t *testing.T) {
	c := newCollection()
	if err := c.Insert(&record{ID: "a", Name: "first"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, ok := c.Get("a")
	if !ok || got.Name != "first" {
		t.Errorf("Get(a) = %+v, %v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a record")
	}
}

func TestInsertDuplicateKey(t *testing.T) {
	c := newCollection()
	if err := c.Insert(&record{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Insert(&record{ID: "a"}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate insert: err = %v, want ErrDuplicateKey", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d after rejected duplicate, want 1", c.Len())
	}
}

func TestUpdate(t *testing.T) {
	c := newCollection()
	if err := c.Update("a", &record{ID: "a"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update absent: err = %v, want ErrNotFound", err)
	}

	c.Insert(&record{ID: "a", Name: "before"})
	if err := c.Update("a", &record{ID: "a", Name: "after"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := c.Get("a")
	if got.Name != "after" {
		t.Errorf("after update: Name = %q", got.Name)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	c := newCollection()
	for i := 0; i < 5; i++ {
		c.Insert(&record{ID: fmt.Sprintf("id-%d", i)})
	}

	listed := c.List()
	if len(listed) != 5 {
		t.Fatalf("List returned %d records", len(listed))
	}
	for i, r := range listed {
		if r.ID != fmt.Sprintf("id-%d", i) {
			t.Errorf("position %d: got %q", i, r.ID)
		}
	}

	// A later insert is observed by a fresh List.
	c.Insert(&record{ID: "id-5"})
	if len(c.List()) != 6 {
		t.Error("re-List did not observe the new record")
	}
}
