package services

import (
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/prefs"
)

// Preference namespace and store/entry keys. Full keys look like
// darts.playerConfig.allowGuestPlayers.
const (
	PrefsNamespace = "darts"

	PlayerConfigStore      = "playerConfig"
	PrefAllowGuestPlayers  = "allowGuestPlayers"
	PrefHiddenPlayers      = "hiddenPlayers"
	PrefIncludeDisabled    = "includeDisabled"
	PrefDefaultGameType    = "defaultGameType"

	TwentySevenStore      = "twentyseven"
	PrefDDIncludeCliffs   = "ddIncludeCliffs"
	PrefSummaryRateDigits = "summaryRateDigits"
)

// RegisterPrefStores wires the application's preference stores. Called once
// at startup; the manager panics on duplicate registration.
func RegisterPrefStores(m *prefs.Manager) {
	m.Register(prefs.StoreDef{
		Key: PlayerConfigStore,
		Entries: []prefs.EntryDef{
			prefs.BoolEntry(PrefAllowGuestPlayers, false),
			prefs.StringListEntry(PrefHiddenPlayers, nil),
			prefs.BoolEntry(PrefIncludeDisabled, false),
			prefs.StringEntry(PrefDefaultGameType, games.GameType27, games.GameType27, games.GameTypeBullseye),
		},
	})
	m.Register(prefs.StoreDef{
		Key: TwentySevenStore,
		Entries: []prefs.EntryDef{
			prefs.BoolEntry(PrefDDIncludeCliffs, true),
			prefs.IntEntry(PrefSummaryRateDigits, 2, 0, 6),
		},
	})
}
