package engine

import (
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
)

// Snapshotter hands the browser the current listing cache. In practice this is
// the listings store.
type Snapshotter interface {
	Items() []domain.Listing
}

// Browser holds the ephemeral browsing state: the active filter criteria, the
// requested page and the display language. Changing any criterion resets the
// page to 1 so narrowing the results can never strand the user on a page that
// no longer exists.
type Browser struct {
	source   Snapshotter
	criteria domain.Criteria
	page     int
	pageSize int
	lang     string
}

func NewBrowser(source Snapshotter, pageSize int, lang string) *Browser {
	if pageSize <= 0 {
		pageSize = 3
	}
	if lang == "" {
		lang = domain.LangEN
	}
	return &Browser{
		source:   source,
		criteria: domain.DefaultCriteria(),
		page:     1,
		pageSize: pageSize,
		lang:     lang,
	}
}

func (b *Browser) Criteria() domain.Criteria { return b.criteria }
func (b *Browser) PageNumber() int           { return b.page }

func (b *Browser) SetQuery(q string) {
	b.criteria.Query = q
	b.page = 1
}

func (b *Browser) SetCity(city string) {
	b.criteria.City = city
	b.page = 1
}

func (b *Browser) SetType(typ string) {
	b.criteria.Type = typ
	b.page = 1
}

func (b *Browser) SetRooms(rooms string) {
	b.criteria.Rooms = rooms
	b.page = 1
}

func (b *Browser) SetPriceRange(min, max float64) {
	b.criteria.PriceMin = min
	b.criteria.PriceMax = max
	b.page = 1
}

func (b *Browser) SetLanguage(lang string) {
	if lang != "" {
		b.lang = lang
	}
}

// Reset restores the default criteria and first page.
func (b *Browser) Reset() {
	b.criteria = domain.DefaultCriteria()
	b.page = 1
}

func (b *Browser) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	b.page = page
}

func (b *Browser) NextPage() { b.page++ }

func (b *Browser) PrevPage() {
	if b.page > 1 {
		b.page--
	}
}

// Results applies the engine to the current cache snapshot. The effective page
// is clamped, and the browser adopts the clamped value.
func (b *Browser) Results() Page {
	page := Apply(b.source.Items(), b.criteria, b.page, b.pageSize, b.lang)
	b.page = page.Page
	return page
}

// CityOptions lists the selectable cities for the current cache.
func (b *Browser) CityOptions() []string {
	return Cities(b.source.Items())
}

// TypeOptions lists the selectable property types for the current cache.
func (b *Browser) TypeOptions() []string {
	return Types(b.source.Items())
}
