package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplates(t *testing.T) {
	tmpl, err := ParseTemplates(time.UTC)
	require.NoError(t, err)

	for _, name := range []string{
		"homepage.html",
		"admin_index.html",
		"admin_change_list.html",
		"admin_change_form.html",
		"admin_delete_confirmation.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestHomepageEmpty(t *testing.T) {
	tmpl, err := ParseTemplates(time.UTC)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "homepage.html", map[string]interface{}{
		"site_title": "Podcasts",
		"episodes":   nil,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No episodes yet.")
}
