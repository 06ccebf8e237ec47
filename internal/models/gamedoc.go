package models

import (
	"encoding/json"
	"fmt"
)

// Game document data versions. Version 1 is the legacy shape (string date,
// no player ordering); version 2 is the current write format.
const (
	GameDocVersion1 = 1
	GameDocVersion2 = 2
)

// Winner is the v1 winner field, which is either a single player id or a
// tie record. Exactly one of PlayerID / Tie is populated.
type Winner struct {
	PlayerID string
	Tie      *TieV1
}

// TieV1 is the legacy tie shape embedded in a v1 winner field.
type TieV1 struct {
	Players  []string `json:"tie"`
	Tiebreak struct {
		Winner string `json:"winner,omitempty"`
	} `json:"tiebreak"`
}

func (w *Winner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		w.PlayerID = s
		w.Tie = nil
		return nil
	}
	var tie TieV1
	if err := json.Unmarshal(data, &tie); err != nil {
		return fmt.Errorf("winner is neither a player id nor a tie record: %w", err)
	}
	w.PlayerID = ""
	w.Tie = &tie
	return nil
}

func (w Winner) MarshalJSON() ([]byte, error) {
	if w.Tie != nil {
		return json.Marshal(w.Tie)
	}
	return json.Marshal(w.PlayerID)
}

// GameDocV1 is the legacy stored game shape: date as a local "YYYY-MM-DD"
// string, play order implicit (resolved from the player directory's
// defaultOrder at read time), rounds always fully populated.
type GameDocV1 struct {
	DataVersion int                     `json:"dataVersion"`
	Date        string                  `json:"date"`
	Winner      Winner                  `json:"winner"`
	Game        map[string]V1PlayerGame `json:"game"`
}

type V1PlayerGame struct {
	Rounds      []int `json:"rounds"`
	Cliffs      int   `json:"cliffs"`
	Score       int   `json:"score"`
	AllPositive bool  `json:"allPositive"`
	Jesus       bool  `json:"jesus,omitempty"`
	FnAmnesty   bool  `json:"fnAmnesty,omitempty"`
	Handicap    int   `json:"handicap,omitempty"`
}

// Tiebreak records how a tied game was settled.
type Tiebreak struct {
	Players []string `json:"players,omitempty"`
	Type    string   `json:"type"`
	Winner  string   `json:"winner"`
}

// GameDocV2 is the current stored game shape: unix timestamp, explicit play
// order, nullable rounds for incomplete games, typed tiebreak.
type GameDocV2 struct {
	DataVersion int                     `json:"dataVersion"`
	Timestamp   int64                   `json:"timestamp"`
	Players     []string                `json:"players"`
	Tiebreak    *Tiebreak               `json:"tiebreak,omitempty"`
	Game        map[string]V2PlayerGame `json:"game"`
}

type V2PlayerGame struct {
	Rounds      []*int `json:"rounds"`
	Score       int    `json:"score"`
	Jesus       bool   `json:"jesus,omitempty"`
	StartScore  *int   `json:"startScore,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// DocDataVersion extracts the dataVersion discriminator from a raw stored
// document. An absent field reads as version 1, matching the earliest docs
// written before the field existed.
func DocDataVersion(raw json.RawMessage) (int, error) {
	var probe struct {
		DataVersion *int `json:"dataVersion"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, fmt.Errorf("probing dataVersion: %w", err)
	}
	if probe.DataVersion == nil {
		return GameDocVersion1, nil
	}
	return *probe.DataVersion, nil
}

// ParseGameDocV1 decodes a raw document as the v1 shape.
func ParseGameDocV1(raw json.RawMessage) (*GameDocV1, error) {
	var doc GameDocV1
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing v1 game doc: %w", err)
	}
	if doc.DataVersion == 0 {
		doc.DataVersion = GameDocVersion1
	}
	if doc.DataVersion != GameDocVersion1 {
		return nil, fmt.Errorf("expected dataVersion 1, got %d", doc.DataVersion)
	}
	return &doc, nil
}

// ParseGameDocV2 decodes a raw document as the v2 shape.
func ParseGameDocV2(raw json.RawMessage) (*GameDocV2, error) {
	var doc GameDocV2
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing v2 game doc: %w", err)
	}
	if doc.DataVersion != GameDocVersion2 {
		return nil, fmt.Errorf("expected dataVersion 2, got %d", doc.DataVersion)
	}
	return &doc, nil
}
