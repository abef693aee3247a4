package chapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(f float64) *float64 { return &f }

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Parsed
	}{
		{"chapter only", "第12話", Parsed{Chapter: num(12)}},
		{"simplified marker", "第12话", Parsed{Chapter: num(12)}},
		{"ranged chapter keeps title", "第01-02話", Parsed{Chapter: num(1), Title: "第01-02話"}},
		{"whole volume", "全一卷", Parsed{Volume: num(1), Title: "全一卷"}},
		{"whole volume ascii one", "全1冊", Parsed{Volume: num(1), Title: "全1冊"}},
		{"whole chapter", "全一話", Parsed{Chapter: num(1), Title: "全一話"}},
		{"volume and chapter with title", "第3卷 第12話 重逢", Parsed{Volume: num(3), Chapter: num(12), Title: "重逢"}},
		{"chinese numerals", "第十二話", Parsed{Chapter: num(12)}},
		{"chinese hundreds", "第一百零五話 終", Parsed{Chapter: num(105), Title: "終"}},
		{"decimal chapter", "第12.5話", Parsed{Chapter: num(12.5)}},
		{"full-width digits", "第１２話 再会", Parsed{Chapter: num(12), Title: "再会"}},
		{"full-width volume and decimal", "第２卷 第３.５話", Parsed{Volume: num(2), Chapter: num(3.5)}},
		{"bare number", "12", Parsed{Chapter: num(12)}},
		{"number then text", "12 番外", Parsed{Chapter: num(12), Title: "番外"}},
		{"season counts as volume", "第二季", Parsed{Volume: num(2)}},
		{"plus separator", "第5話+番外", Parsed{Chapter: num(5), Title: "+番外"}},
		{"no numbering", "番外篇", Parsed{Title: "番外篇"}},
		{"latin title", "Hello world", Parsed{Title: "Hello world"}},
		{"mixed digits and numerals", "第1十話 特別", Parsed{Title: "特別"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTitle(tt.input))
		})
	}
}

func TestDecodeNumeral(t *testing.T) {
	tests := map[string]int64{
		"一":    1,
		"十":    10,
		"十二":   12,
		"二十":   20,
		"二十三":  23,
		"一百":   100,
		"一百零五": 105,
		"一千零一": 1001,
		"三萬二千": 32000,
		"九千九百九十九": 9999,
	}

	for input, want := range tests {
		got, err := DecodeNumeral(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, bad := range []string{"", "1十", "abc", "一二", "百"} {
		_, err := DecodeNumeral(bad)
		assert.Error(t, err, bad)
	}
}
