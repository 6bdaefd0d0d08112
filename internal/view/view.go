// Package view renders the party planner page.
//
// Every render rebuilds the whole page: each component is rendered fresh
// from the given state and spliced into the page skeleton. Nothing is
// retained between renders.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"partyplanner/internal/planner"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PartyList renders the list of parties, marking the selected one.
func PartyList(st planner.State) (template.HTML, error) {
	return execute("party_list.html", st)
}

// SelectedParty renders the detail panel, or a placeholder when nothing is
// selected.
func SelectedParty(st planner.State) (template.HTML, error) {
	return execute("selected_party.html", st)
}

// AddPartyForm renders an empty creation form.
func AddPartyForm() (template.HTML, error) {
	return execute("add_party_form.html", nil)
}

type page struct {
	PartyList     template.HTML
	SelectedParty template.HTML
	AddPartyForm  template.HTML
}

// Render writes the complete page for st to w.
func Render(w io.Writer, st planner.State) error {
	var (
		p   page
		err error
	)
	if p.PartyList, err = PartyList(st); err != nil {
		return err
	}
	if p.AddPartyForm, err = AddPartyForm(); err != nil {
		return err
	}
	if p.SelectedParty, err = SelectedParty(st); err != nil {
		return err
	}
	return templates.ExecuteTemplate(w, "page.html", p)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	// Output of html/template is already escaped.
	return template.HTML(buf.String()), nil
}
