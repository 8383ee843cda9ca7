package lexical

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestEditDistance(t *testing.T) {
	tests := []struct {
		name        string
		a, b        []string
		wantDist    int
		wantMatched string
		wantOK      bool
	}{
		{
			name:        "single typo",
			a:           []string{"potatoe"},
			b:           []string{"potato"},
			wantDist:    1,
			wantMatched: "potato",
			wantOK:      true,
		},
		{
			name:        "identical token",
			a:           []string{"red", "onion"},
			b:           []string{"onion"},
			wantDist:    0,
			wantMatched: "onion",
			wantOK:      true,
		},
		{
			name:        "minimum across cross product",
			a:           []string{"fresh", "spinich"},
			b:           []string{"baby", "spinach"},
			wantDist:    1,
			wantMatched: "spinach",
			wantOK:      true,
		},
		{
			name:        "first token wins ties",
			a:           []string{"cat"},
			b:           []string{"bat", "hat"},
			wantDist:    1,
			wantMatched: "bat",
			wantOK:      true,
		},
		{
			name:        "unicode counted by rune",
			a:           []string{"creme"},
			b:           []string{"crème"},
			wantDist:    1,
			wantMatched: "crème",
			wantOK:      true,
		},
		{
			name:     "empty a",
			a:        nil,
			b:        []string{"potato"},
			wantDist: math.MaxInt,
		},
		{
			name:     "empty b",
			a:        []string{"potato"},
			b:        []string{},
			wantDist: math.MaxInt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, matched, ok := BestEditDistance(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDist, d)
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestIsTypo(t *testing.T) {
	assert.False(t, IsTypo(0, DefaultMaxDistance), "identical tokens are not typos")
	assert.True(t, IsTypo(1, DefaultMaxDistance))
	assert.True(t, IsTypo(2, DefaultMaxDistance))
	assert.False(t, IsTypo(3, DefaultMaxDistance))
	assert.False(t, IsTypo(math.MaxInt, DefaultMaxDistance))
	assert.True(t, IsTypo(3, 3))
}

func TestTypoScore(t *testing.T) {
	tests := []struct {
		name    string
		d       int
		matched string
		want    int
	}{
		{name: "potato", d: 1, matched: "potato", want: 83},
		{name: "tomatoe", d: 1, matched: "tomatoe", want: 86},
		{name: "two edits on six letters", d: 2, matched: "banana", want: 67},
		{name: "short token uses floor", d: 1, matched: "ab", want: 67},
		{name: "empty token uses floor", d: 2, matched: "", want: 33},
		{name: "quarter", d: 1, matched: "abcd", want: 75},
		{name: "half rounds away from zero", d: 1, matched: "abcdefgh", want: 88},
		{name: "distance beyond length clamps", d: 9, matched: "abc", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypoScore(tt.d, tt.matched, DefaultLengthFloor))
		})
	}
}

func TestTypoScore_CustomFloor(t *testing.T) {
	assert.Equal(t, 90, TypoScore(1, "abc", 10))
	assert.Equal(t, 0, TypoScore(1, "", 0))
}
