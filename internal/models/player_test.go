package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calmacil/dartscore/internal/models"
)

func TestPlayer_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		player models.Player
		want   string
	}{
		{
			name:   "fun name wins",
			player: models.Player{ID: "p1", Name: "Alice", FunNames: []string{"The Dart Queen"}},
			want:   "The Dart Queen",
		},
		{
			name:   "empty fun name falls through",
			player: models.Player{ID: "p1", Name: "Alice", FunNames: []string{""}},
			want:   "Alice",
		},
		{
			name:   "name before id",
			player: models.Player{ID: "p1", Name: "Alice"},
			want:   "Alice",
		},
		{
			name:   "id as last resort",
			player: models.Player{ID: "p1"},
			want:   "p1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.player.DisplayName())
		})
	}
}
