package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppLinks(t *testing.T) {
	assert.Equal(t, "https://wa.me/917073741421", HelplineLink())
	assert.Equal(t, "https://wa.me/919812345670", WhatsAppLink("98123 45670", ""))
	assert.Equal(t,
		"https://wa.me/919812345670?text=Hi%2C+I%27m+interested+in+the+Driver+position",
		JobWhatsAppLink("9812345670", "Driver"))
	assert.Contains(t, ManagerWhatsAppLink("9812345670"), "https://wa.me/919812345670?text=")
}

func TestSlicePage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page, pg := SlicePage(items, 1, 12)
	assert.Len(t, page, 12)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.False(t, pg.HasPrev)

	page, pg = SlicePage(items, 3, 12)
	require.Len(t, page, 1)
	assert.Equal(t, 24, page[0])
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	// out of range pages are clamped
	_, pg = SlicePage(items, 9, 12)
	assert.Equal(t, 3, pg.Page)
	_, pg = SlicePage(items, 0, 12)
	assert.Equal(t, 1, pg.Page)
}

func TestSlicePage_Empty(t *testing.T) {
	page, pg := SlicePage([]string{}, 4, 12)
	assert.Empty(t, page)
	assert.Equal(t, 1, pg.TotalPages)
	assert.Equal(t, 1, pg.Page)
	assert.False(t, pg.HasNext)
}

func TestParseUUIDList(t *testing.T) {
	_, err := ParseUUIDList(nil)
	assert.Error(t, err)

	ids, err := ParseUUIDList([]string{
		"7b7c5b8e-1f1e-4c7a-9a57-0f2d2f7e8c11",
		"7b7c5b8e-1f1e-4c7a-9a57-0f2d2f7e8c11",
	})
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	_, err = ParseUUIDList([]string{"nope"})
	assert.Error(t, err)
}
