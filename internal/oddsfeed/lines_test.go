package oddsfeed

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedCSV = `week,team,opponent,spread,moneyline
7,AAA,BBB,-6.5,-280
7,BBB,AAA,6.5,230
7,CCC,DDD,,-120
8,DDD,CCC,3,
`

func TestMakeLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedCSV))
	}))
	defer server.Close()

	lines, err := MakeLines(server.URL)
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, Line{
		Team: "AAA", Opponent: "BBB", Week: 7,
		Spread: -6.5, HasSpread: true,
		Moneyline: -280, HasMoneyline: true,
	}, lines[0])

	assert.False(t, lines[2].HasSpread, "blank spread stays unquoted")
	assert.True(t, lines[2].HasMoneyline)
	assert.True(t, lines[3].HasSpread)
	assert.False(t, lines[3].HasMoneyline, "blank moneyline stays unquoted")
}

func TestMakeLines_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := MakeLines(server.URL)
	assert.Error(t, err)
}

func TestMakeLines_BadRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("week,team,opponent,spread,moneyline\nseven,AAA,BBB,,\n"))
	}))
	defer server.Close()

	_, err := MakeLines(server.URL)
	assert.Error(t, err)
}
