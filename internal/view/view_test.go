package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"partyplanner/internal/model"
	"partyplanner/internal/planner"
)

var (
	launch = model.Party{ID: "1", Name: "Launch", Description: "Kickoff", Date: "2024-01-01T00:00:00.000Z", Location: "HQ"}
	retro  = model.Party{ID: "2", Name: "Retro", Description: "Look back", Date: "2024-02-01T00:00:00.000Z", Location: "Room 2"}
)

func TestPartyListOrderAndSelection(t *testing.T) {
	sel := retro
	out, err := PartyList(planner.State{Parties: []model.Party{retro, launch}, Selected: &sel})
	require.NoError(t, err)

	html := string(out)
	require.Equal(t, 2, strings.Count(html, "<li"))
	require.Less(t, strings.Index(html, "Retro"), strings.Index(html, "Launch"), "server order is kept")
	require.Equal(t, 1, strings.Count(html, `class="selected"`))
	require.Contains(t, html, `<li class="selected">
    <form method="post" action="/select">
      <input type="hidden" name="id" value="2">`)
}

func TestPartyListEmpty(t *testing.T) {
	out, err := PartyList(planner.State{})
	require.NoError(t, err)
	require.NotContains(t, string(out), "<li")
	require.Contains(t, string(out), `<ul class="parties">`)
}

func TestSelectedPartyPlaceholder(t *testing.T) {
	out, err := SelectedParty(planner.State{Parties: []model.Party{launch}})
	require.NoError(t, err)
	require.Equal(t, "<p>Please select a party to see its details.</p>", strings.TrimSpace(string(out)))
}

func TestSelectedPartyDetail(t *testing.T) {
	out, err := SelectedParty(planner.State{Selected: &launch})
	require.NoError(t, err)

	html := string(out)
	require.Contains(t, html, "<h3>Launch #1</h3>")
	require.Contains(t, html, `<time datetime="2024-01-01T00:00:00.000Z">2024-01-01</time>`)
	require.Contains(t, html, "<address>HQ</address>")
	require.Contains(t, html, "<p>Kickoff</p>")
	require.Contains(t, html, `<form method="post" action="/delete">`)
	require.Contains(t, html, "Delete party")
}

func TestSelectedPartyEscapes(t *testing.T) {
	evil := model.Party{ID: "3", Name: "<script>alert(1)</script>", Description: "a & b", Date: "2024-01-01", Location: `"HQ"`}
	out, err := SelectedParty(planner.State{Selected: &evil})
	require.NoError(t, err)

	html := string(out)
	require.NotContains(t, html, "<script>")
	require.Contains(t, html, "&lt;script&gt;")
	require.Contains(t, html, "a &amp; b")
}

func TestAddPartyForm(t *testing.T) {
	out, err := AddPartyForm()
	require.NoError(t, err)

	html := string(out)
	for _, name := range []string{"name", "description", "date", "location"} {
		require.Contains(t, html, `name="`+name+`" required`)
	}
	require.Contains(t, html, `type="date" name="date"`)
	require.Contains(t, html, `<button type="submit">Add party</button>`)
	require.NotContains(t, html, "value=", "the form always renders empty")
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, planner.State{Parties: []model.Party{launch}, Selected: &launch})
	require.NoError(t, err)

	html := buf.String()
	require.Contains(t, html, `<div id="app" data-ready="true">`)
	require.Contains(t, html, "<h1>Party Planner</h1>")
	require.Contains(t, html, "<h2>Upcoming Parties</h2>")
	require.Contains(t, html, "<h2>Add a new party</h2>")
	require.Contains(t, html, `<section id="selected">`)
	require.Contains(t, html, "<h3>Launch #1</h3>")

	// Components are spliced in as markup, not escaped text.
	require.NotContains(t, html, "&lt;ul")
	require.Less(t, strings.Index(html, `<ul class="parties">`), strings.Index(html, `action="/parties"`))
	require.Less(t, strings.Index(html, `action="/parties"`), strings.Index(html, `<section id="selected">`))
}
