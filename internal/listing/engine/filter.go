package engine

import (
	"strings"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
)

// Page is one display window of the filtered collection.
type Page struct {
	Items      []domain.Listing
	Page       int
	TotalPages int
	Total      int
}

// Apply derives a display page from the full cache. It is a pure function of
// its inputs. Predicates are conjunctive: a listing must satisfy every active
// filter. An empty result still reports one (empty) page.
func Apply(items []domain.Listing, c domain.Criteria, page, pageSize int, lang string) Page {
	if pageSize <= 0 {
		pageSize = 1
	}

	filtered := make([]domain.Listing, 0, len(items))
	for _, item := range items {
		if matches(item, c, lang) {
			filtered = append(filtered, item)
		}
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	}
}

func matches(item domain.Listing, c domain.Criteria, lang string) bool {
	name := strings.ToLower(item.Name.Resolve(lang))
	location := strings.ToLower(item.Location.Resolve(lang))
	typ := strings.ToLower(item.Type.Resolve(lang))

	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		if !strings.Contains(name, q) && !strings.Contains(location, q) && !strings.Contains(typ, q) {
			return false
		}
	}
	if c.City != "" && c.City != domain.FilterAll && location != strings.ToLower(c.City) {
		return false
	}
	if c.Type != "" && c.Type != domain.FilterAll && typ != strings.ToLower(c.Type) {
		return false
	}
	if !c.MatchRooms(item.Rooms) {
		return false
	}
	return c.MatchPrice(item.Price)
}

// Cities returns the distinct English-resolved locations present in the cache,
// in first-seen order. The city selector options grow and shrink with the
// cache rather than coming from a fixed enumeration.
func Cities(items []domain.Listing) []string {
	return distinct(items, func(l domain.Listing) string { return l.Location.Resolve(domain.LangEN) })
}

// Types returns the distinct English-resolved property types in the cache.
func Types(items []domain.Listing) []string {
	return distinct(items, func(l domain.Listing) string { return l.Type.Resolve(domain.LangEN) })
}

func distinct(items []domain.Listing, resolve func(domain.Listing) string) []string {
	seen := map[string]bool{}
	var values []string
	for _, item := range items {
		v := resolve(item)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
