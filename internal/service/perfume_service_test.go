package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"harumnesia/internal/model"
)

func perfumesN(n int) []model.Perfume {
	out := make([]model.Perfume, n)
	for i := range out {
		out[i] = model.Perfume{PerfumeID: fmt.Sprint(i + 1), Name: fmt.Sprintf("P%d", i+1), Brand: "HMNS"}
	}
	return out
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{"": 1, "abc": 1, "0": 1, "-3": 1, "1": 1, " 4 ": 4, "2.5": 1}
	for in, want := range tests {
		if got := ParsePage(in); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		count int64
		want  int
	}{{0, 0}, {1, 1}, {12, 1}, {13, 2}, {24, 2}, {25, 3}}
	for _, tt := range tests {
		if got := PageCount(tt.count, model.PerfumePageSize); got != tt.want {
			t.Errorf("PageCount(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestGetPage(t *testing.T) {
	store := &fakePerfumeStore{perfumes: perfumesN(30)}
	svc := NewPerfumeService(store)

	const notQueried = -1
	tests := []struct {
		page      int
		wantLen   int
		wantSkip  int64
		wantFirst string
	}{
		{1, 12, 0, "P1"},
		{2, 12, 12, "P13"},
		{3, 6, 24, "P25"},
		{4, 0, notQueried, ""},
		{0, 12, 0, "P1"},
		{math.MaxInt, 0, notQueried, ""},
		{ParsePage("9223372036854775807"), 0, notQueried, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint("page ", tt.page), func(t *testing.T) {
			store.lastSkip, store.lastLimit = notQueried, notQueried
			page, err := svc.GetPage(context.Background(), tt.page)
			if err != nil {
				t.Fatal(err)
			}
			if len(page.Perfumes) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(page.Perfumes), tt.wantLen)
			}
			if store.lastSkip != tt.wantSkip {
				t.Errorf("skip = %d, want %d", store.lastSkip, tt.wantSkip)
			}
			if tt.wantSkip != notQueried && store.lastLimit != model.PerfumePageSize {
				t.Errorf("limit = %d", store.lastLimit)
			}
			if page.Count != 30 || page.Pages != 3 {
				t.Errorf("count/pages = %d/%d, want 30/3", page.Count, page.Pages)
			}
			if tt.wantFirst != "" && page.Perfumes[0].Name != tt.wantFirst {
				t.Errorf("first = %q, want %q", page.Perfumes[0].Name, tt.wantFirst)
			}
			if page.Perfumes == nil {
				t.Error("perfumes must be an empty slice, not nil")
			}
		})
	}
}

func TestPageSkip(t *testing.T) {
	tests := []struct {
		page, size int
		want       int64
		ok         bool
	}{
		{1, 12, 0, true},
		{0, 12, 0, true},
		{3, 500, 1000, true},
		{math.MaxInt, 12, 0, false},
		{math.MaxInt64/100 + 2, 100, 0, false},
		{2, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := pageSkip(tt.page, tt.size)
		if got != tt.want || ok != tt.ok {
			t.Errorf("pageSkip(%d, %d) = %d, %v; want %d, %v", tt.page, tt.size, got, ok, tt.want, tt.ok)
		}
		if ok && got < 0 {
			t.Errorf("pageSkip(%d, %d) is negative", tt.page, tt.size)
		}
	}
}

func TestGetAllNormalizes(t *testing.T) {
	store := &fakePerfumeStore{perfumes: []model.Perfume{
		{PerfumeID: "7", Perfume: "Senja"},
		{LegacyID: int32(8), Brand: "  Onix "},
	}}
	got, err := NewPerfumeService(store).GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got[0].Name != "Senja" || got[0].Brand != UnknownBrand {
		t.Errorf("first = %q / %q", got[0].Name, got[0].Brand)
	}
	if got[1].Name != "Perfume 8" || got[1].Brand != "Onix" {
		t.Errorf("second = %q / %q", got[1].Name, got[1].Brand)
	}
	if store.perfumes[0].Name != "" {
		t.Error("store data mutated")
	}
}

func TestGetByID(t *testing.T) {
	store := &fakePerfumeStore{perfumes: []model.Perfume{{PerfumeID: int32(5), Perfume: "Kala", Brand: "HMNS"}}}
	svc := NewPerfumeService(store)

	p, err := svc.GetByID(context.Background(), "5")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Kala" {
		t.Errorf("name = %q", p.Name)
	}

	if _, err := svc.GetByID(context.Background(), "6"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("missing id: err = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), " "); !errors.Is(err, model.ErrValidation) {
		t.Errorf("blank id: err = %v", err)
	}
}

func TestGetByBrand(t *testing.T) {
	store := &fakePerfumeStore{perfumes: []model.Perfume{
		{Name: "A", Brand: "HMNS"},
		{Name: "B", Brand: "hmns"},
		{Name: "C", Brand: "Onix"},
	}}
	svc := NewPerfumeService(store)

	t.Run("exact match wins", func(t *testing.T) {
		got, err := svc.GetByBrand(context.Background(), "hmns")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Name != "B" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("case-insensitive fallback keeps stored case", func(t *testing.T) {
		got, err := svc.GetByBrand(context.Background(), "ONIX")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Brand != "Onix" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("none is not found", func(t *testing.T) {
		if _, err := svc.GetByBrand(context.Background(), "Saff & Co"); !errors.Is(err, model.ErrNotFound) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestBrandsSortedAndClean(t *testing.T) {
	store := &fakePerfumeStore{perfumes: []model.Perfume{
		{Brand: "onix"}, {Brand: "HMNS"}, {Brand: " "}, {Brand: "Alchemist"}, {Brand: "HMNS"}, {Brand: ""},
	}}
	got, err := NewPerfumeService(store).Brands(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Alchemist", "HMNS", "onix"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Brands = %v, want %v", got, want)
	}
}

func TestPerfumeServiceStoreError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewPerfumeService(&fakePerfumeStore{err: boom})
	if _, err := svc.GetAll(context.Background()); !errors.Is(err, boom) {
		t.Errorf("GetAll err = %v", err)
	}
	if _, err := svc.GetPage(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("GetPage err = %v", err)
	}
}

func TestSortBrands(t *testing.T) {
	got := SortBrands([]string{"b", "B", "a", " a ", "", "C"})
	want := []string{"a", "B", "b", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortBrands = %v, want %v", got, want)
	}
}
