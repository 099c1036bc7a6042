package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

type socials struct {
	Instagram string `json:"instagram"`
}

func TestToJSONColumn_NilIsNull(t *testing.T) {
	var s *socials
	assert.Nil(t, ToJSONColumn(s))
	assert.Nil(t, ToJSONColumn(nil))

	var list []string
	assert.Nil(t, ToJSONColumn(list))
}

func TestFromJSONColumn_Values(t *testing.T) {
	col := ToJSONColumn(&socials{Instagram: "@ink"})
	got := FromJSONColumn[*socials](col)
	if assert.NotNil(t, got) {
		assert.Equal(t, "@ink", got.Instagram)
	}

	assert.Nil(t, FromJSONColumn[*socials](nil))
	assert.Equal(t, []string{}, FromJSONColumn[[]string](datatypes.JSON("[]")))
}

func TestStringsFromColumn_LegacyCommaList(t *testing.T) {
	assert.Equal(t, []string{"wifi", "parking"}, StringsFromColumn(datatypes.JSON("wifi,parking")))
	assert.Equal(t, []string{"wifi"}, StringsFromColumn(datatypes.JSON(`["wifi"]`)))
	assert.Nil(t, StringsFromColumn(nil))
}
