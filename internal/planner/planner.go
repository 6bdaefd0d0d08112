// Package planner owns the application state (the party list and the
// current selection) and the operations that change it.
//
// Failures from the remote API never reach the caller: each operation logs
// a diagnostic and falls back to a safe default (empty list, no selection).
package planner

import (
	"context"
	"sync"

	appLog "partyplanner/internal/log"
	"partyplanner/internal/model"
)

// API is the subset of partyapi.Client used by the planner.
type API interface {
	ListParties(ctx context.Context) ([]model.Party, error)
	GetParty(ctx context.Context, id model.PartyID) (*model.Party, error)
	CreateParty(ctx context.Context, fields model.PartyFields) (*model.Party, error)
	DeleteParty(ctx context.Context, id model.PartyID) error
}

// State is a snapshot of the application state used for rendering.
type State struct {
	// Parties is in server order.
	Parties []model.Party
	// Selected is the party shown in the detail view, or nil.
	Selected *model.Party
}

// IsSelected reports whether p is the current selection (by id).
func (s State) IsSelected(p model.Party) bool {
	return s.Selected != nil && s.Selected.ID == p.ID
}

// Planner holds the single application state. Each assignment is atomic;
// operations are not serialized against each other, so when two overlap
// the last refresh to complete wins.
type Planner struct {
	api API

	mu       sync.RWMutex
	parties  []model.Party
	selected *model.Party
}

func New(api API) *Planner {
	return &Planner{
		api:     api,
		parties: []model.Party{},
	}
}

// State returns a copy of the current state.
func (p *Planner) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	st := State{Parties: make([]model.Party, len(p.parties))}
	copy(st.Parties, p.parties)
	if p.selected != nil {
		sel := *p.selected
		st.Selected = &sel
	}
	return st
}

// LoadParties replaces the party list with the server's collection.
// On failure the list becomes empty.
func (p *Planner) LoadParties(ctx context.Context) {
	parties, err := p.api.ListParties(ctx)
	if err != nil {
		appLog.Error("error loading parties", err)
		parties = []model.Party{}
	}
	p.setParties(parties)
}

// SelectParty fetches the party by id and selects it. On failure, or when
// the server has no such party, the selection is cleared.
func (p *Planner) SelectParty(ctx context.Context, id model.PartyID) {
	party, err := p.api.GetParty(ctx, id)
	if err != nil {
		appLog.Error("error loading party", err, "id", id)
		party = nil
	}
	p.setSelected(party)
}

// CreateParty creates a party, refreshes the list and selects the server's
// reply. A reply without data still refreshes and clears the selection; only
// an invalid date or a transport or decode failure leaves state unchanged.
func (p *Planner) CreateParty(ctx context.Context, fields model.PartyFields) {
	created, err := p.api.CreateParty(ctx, fields)
	if err != nil {
		appLog.Error("error creating party", err, "name", fields.Name)
		return
	}
	p.LoadParties(ctx)
	p.setSelected(created)
	if created == nil {
		appLog.Warn("create party: reply has no data", "name", fields.Name)
		return
	}
	appLog.Info("party created", "id", created.ID, "name", created.Name)
}

// DeleteParty deletes a party, clears the selection and refreshes the list.
// The list is refreshed whether or not the server accepted the delete; only
// a transport failure leaves state unchanged.
func (p *Planner) DeleteParty(ctx context.Context, id model.PartyID) {
	if err := p.api.DeleteParty(ctx, id); err != nil {
		appLog.Error("error deleting party", err, "id", id)
		return
	}
	p.setSelected(nil)
	p.LoadParties(ctx)
	appLog.Info("party deleted", "id", id)
}

func (p *Planner) setParties(parties []model.Party) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parties = parties
}

func (p *Planner) setSelected(party *model.Party) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = party
}
