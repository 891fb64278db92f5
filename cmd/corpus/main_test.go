package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestParseLineIdentifiers(t *testing.T) {
	data := []byte(`
# seed list
https://example.com/a

  https://example.com/b
/data/report.pdf
# trailing comment
`)

	ids := parseLineIdentifiers(data)
	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
		"/data/report.pdf",
	}, ids)
}

func TestParseLineIdentifiersEmpty(t *testing.T) {
	assert.Empty(t, parseLineIdentifiers([]byte("# only comments\n\n")))
}

func TestParseBatchIdentifiers(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		ids, err := parseBatchIdentifiers([]byte(`["https://example.com/a", "b.pdf"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a", "b.pdf"}, ids)
	})

	t.Run("sources object", func(t *testing.T) {
		ids, err := parseBatchIdentifiers([]byte(`{"sources": ["https://example.com/a"]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a"}, ids)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := parseBatchIdentifiers([]byte(`not json`))
		assert.Error(t, err)
	})
}

func TestSetupLogLevel(t *testing.T) {
	newCtx := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		assert.NoError(t, setup(newCtx(level)), "level %q", level)
	}

	assert.Error(t, setup(newCtx("verbose")))
}
