package catalog

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Option sources.
const (
	SourceLocal = "local"
	SourceInter = "inter"
)

// Option is one entry of the perfume dropdown.
type Option struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Source string `json:"source"`
}

// DropdownBrands merges the local and international brand lists. Names that
// differ only in case collapse to the first spelling seen, local first.
func (c *Client) DropdownBrands(ctx context.Context) ([]string, error) {
	var local, inter []string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		local, err = c.PerfumeBrands(ctx)
		return err
	})
	g.Go(func() (err error) {
		inter, err = c.InterBrands(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return MergeBrands(local, inter), nil
}

// DropdownPerfumes merges local perfumes with the international dropdown
// list, dropping international entries whose brand and name already exist
// locally.
func (c *Client) DropdownPerfumes(ctx context.Context) ([]Option, error) {
	var local, inter []Option

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		perfumes, err := c.Perfumes(ctx)
		if err != nil {
			return err
		}
		local = make([]Option, 0, len(perfumes))
		for _, p := range perfumes {
			local = append(local, Option{ID: p.ID(), Name: p.Name, Brand: p.Brand, Source: SourceLocal})
		}
		return nil
	})
	g.Go(func() error {
		d, err := c.InterDropdown(ctx)
		if err != nil {
			return err
		}
		inter = make([]Option, 0, len(d.Perfumes))
		for _, p := range d.Perfumes {
			inter = append(inter, Option{ID: p.ID, Name: p.Name, Brand: p.Brand, Source: SourceInter})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return MergeOptions(local, inter), nil
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func MergeBrands(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, b := range list {
			b = strings.TrimSpace(b)
			key := fold(b)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return fold(out[i]) < fold(out[j]) })
	if out == nil {
		out = []string{}
	}
	return out
}

// MergeOptions de-duplicates on brand and name, earlier lists winning, and
// orders by brand then name.
func MergeOptions(lists ...[]Option) []Option {
	seen := make(map[string]bool)
	out := []Option{}
	for _, list := range lists {
		for _, o := range list {
			if fold(o.Name) == "" {
				continue
			}
			key := fold(o.Brand) + "\x00" + fold(o.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := fold(out[i].Brand), fold(out[j].Brand)
		if bi != bj {
			return bi < bj
		}
		return fold(out[i].Name) < fold(out[j].Name)
	})
	return out
}
