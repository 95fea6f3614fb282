package service

import (
	"sort"
	"strings"

	"harumnesia/internal/model"
)

// UnknownBrand is shown for perfumes imported without a brand.
const UnknownBrand = "Unknown Brand"

// normalizePerfume guarantees a display name and a brand. fallbackBrand
// is the brand the caller filtered by, if any.
func normalizePerfume(p *model.Perfume, fallbackBrand string) {
	p.Name = p.DisplayName()
	p.Brand = strings.TrimSpace(p.Brand)
	if p.Brand == "" {
		p.Brand = strings.TrimSpace(fallbackBrand)
	}
	if p.Brand == "" {
		p.Brand = UnknownBrand
	}
	p.NormalizeNotes()
}

func normalizeAll(perfumes []model.Perfume, fallbackBrand string) []model.Perfume {
	if perfumes == nil {
		return []model.Perfume{}
	}
	for i := range perfumes {
		normalizePerfume(&perfumes[i], fallbackBrand)
	}
	return perfumes
}

// SortBrands drops blanks and duplicates and orders names
// case-insensitively, ties broken by byte order.
func SortBrands(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}
