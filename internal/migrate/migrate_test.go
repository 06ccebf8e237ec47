package migrate_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/games"
	"github.com/calmacil/dartscore/internal/migrate"
	"github.com/calmacil/dartscore/internal/models"
	"github.com/calmacil/dartscore/internal/repository"
	"github.com/calmacil/dartscore/internal/repository/documents"
	"github.com/calmacil/dartscore/internal/testutil"
)

type MigrateTestSuite struct {
	suite.Suite
	store    *docstore.Store
	games    repository.GameRepository
	migrator *migrate.Migrator
	ctx      context.Context
}

func (s *MigrateTestSuite) SetupTest() {
	s.store = docstore.New(testutil.NewTestDB(s.T()))
	players := documents.NewPlayerRepository(s.store)
	s.games = documents.NewGameRepository(s.store, players)
	s.migrator = migrate.New(s.games, players)
	s.ctx = context.Background()

	s.Require().NoError(players.Upsert(s.ctx, models.Player{ID: "alice", DefaultOrder: 0}))
	s.Require().NoError(players.Upsert(s.ctx, models.Player{ID: "bob", DefaultOrder: 1}))
}

func TestMigrateTestSuite(t *testing.T) {
	suite.Run(t, new(MigrateTestSuite))
}

func (s *MigrateTestSuite) putV1(id, body string) {
	s.Require().NoError(s.store.Set(s.ctx, repository.GamesPath(games.GameType27), id, 1,
		json.RawMessage(body)))
}

func (s *MigrateTestSuite) TestMigrateGames() {
	s.putV1("g1", `{
		"date": "2020-06-15",
		"winner": "bob",
		"game": {
			"alice": {"rounds": [1,2], "score": 33, "jesus": true},
			"bob": {"rounds": [3,0], "score": 29, "handicap": 10}
		}
	}`)

	res, err := s.migrator.MigrateGames(s.ctx, games.GameType27)
	s.Require().NoError(err)
	s.Assert().Equal(games.GameType27, res.GameType)
	s.Assert().Equal(1, res.Migrated)
	s.Assert().Equal(0, res.Skipped)

	doc, err := s.store.Get(s.ctx, repository.GamesPath(games.GameType27), "g1")
	s.Require().NoError(err)
	s.Assert().Equal(2, doc.DataVersion)

	v2, err := models.ParseGameDocV2(doc.Data)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"alice", "bob"}, v2.Players)
	s.Assert().Nil(v2.Tiebreak)
	s.Assert().True(v2.Game["alice"].Jesus)
	s.Require().NotNil(v2.Game["bob"].StartScore)
	s.Assert().Equal(37, *v2.Game["bob"].StartScore)
}

func (s *MigrateTestSuite) TestMigrateCarriesTiebreak() {
	s.putV1("g1", `{
		"date": "2020-06-15",
		"winner": {"tie": ["alice","bob"], "tiebreak": {"winner": "alice"}},
		"game": {
			"alice": {"rounds": [1], "score": 29},
			"bob": {"rounds": [1], "score": 29}
		}
	}`)

	res, err := s.migrator.MigrateGames(s.ctx, games.GameType27)
	s.Require().NoError(err)
	s.Assert().Equal(1, res.Migrated)

	doc, err := s.store.Get(s.ctx, repository.GamesPath(games.GameType27), "g1")
	s.Require().NoError(err)
	v2, err := models.ParseGameDocV2(doc.Data)
	s.Require().NoError(err)
	s.Require().NotNil(v2.Tiebreak)
	s.Assert().Equal("unknown", v2.Tiebreak.Type)
	s.Assert().Equal("alice", v2.Tiebreak.Winner)
	s.Assert().Equal([]string{"alice", "bob"}, v2.Tiebreak.Players)
}

func (s *MigrateTestSuite) TestMigrateSkipsMalformed() {
	s.putV1("good", `{"date":"2020-06-15","winner":"alice","game":{"alice":{"rounds":[1],"score":29}}}`)
	s.putV1("bad-date", `{"date":"whenever","winner":"alice","game":{"alice":{"rounds":[1],"score":29}}}`)
	s.putV1("no-players", `{"date":"2020-06-15","winner":"alice","game":{}}`)

	res, err := s.migrator.MigrateGames(s.ctx, games.GameType27)
	s.Require().NoError(err)
	s.Assert().Equal(1, res.Migrated)
	s.Assert().Equal(2, res.Skipped)

	// Skipped documents stay at v1.
	doc, err := s.store.Get(s.ctx, repository.GamesPath(games.GameType27), "bad-date")
	s.Require().NoError(err)
	s.Assert().Equal(1, doc.DataVersion)
}

func (s *MigrateTestSuite) TestMigrateIsIdempotent() {
	s.putV1("g1", `{"date":"2020-06-15","winner":"alice","game":{"alice":{"rounds":[1],"score":29}}}`)

	first, err := s.migrator.MigrateGames(s.ctx, games.GameType27)
	s.Require().NoError(err)
	s.Assert().Equal(1, first.Migrated)

	second, err := s.migrator.MigrateGames(s.ctx, games.GameType27)
	s.Require().NoError(err)
	s.Assert().Equal(0, second.Migrated)
	s.Assert().Equal(0, second.Skipped)
}

func (s *MigrateTestSuite) TestMigrateEmptyStore() {
	res, err := s.migrator.MigrateGames(s.ctx, games.GameType27)
	s.Require().NoError(err)
	s.Assert().Equal(0, res.Migrated)
}
