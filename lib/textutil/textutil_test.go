package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSpace(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		"  ":                        "",
		"a b":                       "a b",
		"  臺灣臺北\t地方法院  ":           "臺灣臺北 地方法院",
		"108 \n 年度\r\n民字":           "108 年度 民字",
		"no change outside \t": "no change outside",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeSpace(in), "input %q", in)
	}
}

func TestFlattenDocumentText(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"a\n\n\nb":              "a\nb",
		"a\r\nb":                "a\nb",
		"主文    理由":              "主文 理由",
		"\n  主文 \n\n 理由  \n":    "主文 \n 理由",
		"line1\n\rline2\nline3": "line1\nline2\nline3",
	}
	for in, want := range cases {
		require.Equal(t, want, FlattenDocumentText(in), "input %q", in)
	}
}
