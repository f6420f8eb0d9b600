package repo

import (
	"goalbet/internal/binstore"
	"goalbet/internal/config"
	contentrepo "goalbet/internal/repo/content-repo"
	gamerepo "goalbet/internal/repo/game-repo"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
)

// Repositories holds the concrete repos. Each service narrows them to its
// own consumer interface; the repos themselves are shared because several
// services operate on the same collections.
type Repositories struct {
	Ledger  *ledgerrepo.Repository
	Game    *gamerepo.Repository
	Content *contentrepo.Repository
}

func New(store binstore.Store, bins config.Bins) *Repositories {
	return &Repositories{
		Ledger:  ledgerrepo.New(store, bins),
		Game:    gamerepo.New(store, bins),
		Content: contentrepo.New(store, bins),
	}
}
