package bills

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func seedRepo(t *testing.T, n int) *MemoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	for i := 0; i < n; i++ {
		category := "electricity"
		if i%2 == 1 {
			category = "gas"
		}
		record := Record{
			OwnerID:          "u-1",
			BillID:           fmt.Sprintf("17000000%05d-aaaaaaaaa", i),
			UtilityCategory:  category,
			ProcessingStatus: StatusCompleted,
		}
		if err := repo.Put(context.Background(), record); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	return repo
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := seedRepo(t, 5)

	page, err := repo.List(context.Background(), "u-1", ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Bills) != 5 {
		t.Fatalf("got %d bills, want 5", len(page.Bills))
	}
	for i := 1; i < len(page.Bills); i++ {
		if page.Bills[i-1].BillID <= page.Bills[i].BillID {
			t.Fatalf("bills not newest first at index %d", i)
		}
	}
}

func TestMemoryRepoListFilterAndPaging(t *testing.T) {
	repo := seedRepo(t, 10)

	page, err := repo.List(context.Background(), "u-1", ListOptions{UtilityCategory: "gas", Limit: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Bills) != 3 {
		t.Fatalf("got %d bills, want 3", len(page.Bills))
	}
	for _, b := range page.Bills {
		if b.UtilityCategory != "gas" {
			t.Fatalf("filter leaked category %q", b.UtilityCategory)
		}
	}
	if page.NextPageToken == "" {
		t.Fatal("expected a next page token")
	}

	rest, err := repo.List(context.Background(), "u-1", ListOptions{UtilityCategory: "gas", Limit: 10, PageToken: page.NextPageToken})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(rest.Bills) != 2 {
		t.Fatalf("second page has %d bills, want 2", len(rest.Bills))
	}
	if rest.Bills[0].BillID >= page.Bills[len(page.Bills)-1].BillID {
		t.Fatal("second page overlaps the first")
	}
}

func TestMemoryRepoListBadToken(t *testing.T) {
	repo := seedRepo(t, 1)
	if _, err := repo.List(context.Background(), "u-1", ListOptions{PageToken: "%%%not-base64%%%"}); err == nil {
		t.Fatal("expected error for malformed page token")
	}
}

func TestMemoryRepoGetDelete(t *testing.T) {
	repo := seedRepo(t, 3)

	page, _ := repo.List(context.Background(), "u-1", ListOptions{})
	target := page.Bills[1].BillID

	if _, err := repo.Get(context.Background(), "u-1", target); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := repo.Get(context.Background(), "u-2", target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner Get error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(context.Background(), "u-1", target); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(context.Background(), "u-1", target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(context.Background(), "u-1", target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double Delete error = %v, want ErrNotFound", err)
	}
}
