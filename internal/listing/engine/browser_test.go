package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
)

type staticSource []domain.Listing

func (s staticSource) Items() []domain.Listing { return s }

func TestBrowser_ChangingAnyCriterionResetsPage(t *testing.T) {
	b := NewBrowser(staticSource(sampleListings()), 1, "en")
	b.SetPage(3)

	b.SetQuery("house")
	assert.Equal(t, 1, b.PageNumber())

	b.SetPage(2)
	b.SetCity("Dushanbe")
	assert.Equal(t, 1, b.PageNumber())

	b.SetPage(2)
	b.SetType("dacha")
	assert.Equal(t, 1, b.PageNumber())

	b.SetPage(2)
	b.SetRooms("4+")
	assert.Equal(t, 1, b.PageNumber())

	b.SetPage(2)
	b.SetPriceRange(0, 50)
	assert.Equal(t, 1, b.PageNumber())
}

func TestBrowser_ResultsAdoptClampedPage(t *testing.T) {
	b := NewBrowser(staticSource(sampleListings()), 2, "en")
	b.SetPage(50)

	page := b.Results()
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, b.PageNumber())
}

func TestBrowser_Reset(t *testing.T) {
	b := NewBrowser(staticSource(sampleListings()), 3, "en")
	b.SetQuery("dacha")
	b.SetRooms("3")
	b.SetPage(2)

	b.Reset()
	assert.Equal(t, domain.DefaultCriteria(), b.Criteria())
	assert.Equal(t, 1, b.PageNumber())
	assert.Len(t, b.Results().Items, 3)
}

func TestBrowser_OptionListsFollowTheCache(t *testing.T) {
	b := NewBrowser(staticSource(sampleListings()), 3, "en")
	assert.Equal(t, []string{"Dushanbe", "Khujand", "Varzob"}, b.CityOptions())

	shrunk := NewBrowser(staticSource(sampleListings()[:1]), 3, "en")
	assert.Equal(t, []string{"Dushanbe"}, shrunk.CityOptions())
	assert.Equal(t, []string{"apartment"}, shrunk.TypeOptions())
}

func TestBrowser_PrevNeverLeavesPageOne(t *testing.T) {
	b := NewBrowser(staticSource(sampleListings()), 3, "en")
	b.PrevPage()
	assert.Equal(t, 1, b.PageNumber())
}
