package docstore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/calmacil/dartscore/internal/docstore"
	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/testutil"
)

type DocstoreTestSuite struct {
	suite.Suite
	store *docstore.Store
	ctx   context.Context
}

func (s *DocstoreTestSuite) SetupTest() {
	s.store = docstore.New(testutil.NewTestDB(s.T()))
	s.ctx = context.Background()
}

func TestDocstoreTestSuite(t *testing.T) {
	suite.Run(t, new(DocstoreTestSuite))
}

func (s *DocstoreTestSuite) TestSetAndGet() {
	data := json.RawMessage(`{"name":"Alice"}`)
	s.Require().NoError(s.store.Set(s.ctx, "players", "p1", 1, data))

	doc, err := s.store.Get(s.ctx, "players", "p1")
	s.Require().NoError(err)
	s.Assert().Equal("players", doc.Path)
	s.Assert().Equal("p1", doc.ID)
	s.Assert().Equal(1, doc.DataVersion)
	s.Assert().JSONEq(`{"name":"Alice"}`, string(doc.Data))
	s.Assert().False(doc.UpdatedAt.IsZero())
}

func (s *DocstoreTestSuite) TestGetNotFound() {
	_, err := s.store.Get(s.ctx, "players", "missing")
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *DocstoreTestSuite) TestSetUpserts() {
	s.Require().NoError(s.store.Set(s.ctx, "players", "p1", 1, json.RawMessage(`{"v":1}`)))
	s.Require().NoError(s.store.Set(s.ctx, "players", "p1", 2, json.RawMessage(`{"v":2}`)))

	doc, err := s.store.Get(s.ctx, "players", "p1")
	s.Require().NoError(err)
	s.Assert().Equal(2, doc.DataVersion)
	s.Assert().JSONEq(`{"v":2}`, string(doc.Data))

	docs, err := s.store.Query(s.ctx, "players")
	s.Require().NoError(err)
	s.Assert().Len(docs, 1)
}

func (s *DocstoreTestSuite) TestQueryOrdersByID() {
	s.Require().NoError(s.store.Set(s.ctx, "games", "b", 2, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Set(s.ctx, "games", "a", 2, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Set(s.ctx, "games", "c", 1, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Set(s.ctx, "other", "z", 1, json.RawMessage(`{}`)))

	docs, err := s.store.Query(s.ctx, "games")
	s.Require().NoError(err)
	s.Require().Len(docs, 3)
	s.Assert().Equal("a", docs[0].ID)
	s.Assert().Equal("b", docs[1].ID)
	s.Assert().Equal("c", docs[2].ID)
}

func (s *DocstoreTestSuite) TestQueryWithDataVersion() {
	s.Require().NoError(s.store.Set(s.ctx, "games", "old", 1, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Set(s.ctx, "games", "new", 2, json.RawMessage(`{}`)))

	docs, err := s.store.Query(s.ctx, "games", docstore.WithDataVersion(1))
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Assert().Equal("old", docs[0].ID)
}

func (s *DocstoreTestSuite) TestQueryWithIDPrefix() {
	s.Require().NoError(s.store.Set(s.ctx, "games", "2020-01", 2, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Set(s.ctx, "games", "2020-02", 2, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Set(s.ctx, "games", "2021-01", 2, json.RawMessage(`{}`)))

	docs, err := s.store.Query(s.ctx, "games", docstore.WithIDPrefix("2020-"))
	s.Require().NoError(err)
	s.Assert().Len(docs, 2)
}

func (s *DocstoreTestSuite) TestQueryEmptyPath() {
	docs, err := s.store.Query(s.ctx, "nothing-here")
	s.Require().NoError(err)
	s.Assert().Empty(docs)
}

func (s *DocstoreTestSuite) TestDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "players", "p1", 1, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Delete(s.ctx, "players", "p1"))

	_, err := s.store.Get(s.ctx, "players", "p1")
	s.Assert().True(errors.IsNotFound(err))

	// Deleting again is a no-op.
	s.Assert().NoError(s.store.Delete(s.ctx, "players", "p1"))
}

func (s *DocstoreTestSuite) TestSubscribeNotifiesOnSet() {
	var events []docstore.Event
	unsubscribe := s.store.Subscribe("players", func(ev docstore.Event) {
		events = append(events, ev)
	})
	defer unsubscribe()

	s.Require().NoError(s.store.Set(s.ctx, "players", "p1", 1, json.RawMessage(`{}`)))
	s.Require().NoError(s.store.Set(s.ctx, "games", "g1", 2, json.RawMessage(`{}`)))

	s.Require().Len(events, 1)
	s.Assert().Equal(docstore.OpSet, events[0].Op)
	s.Assert().Equal("players", events[0].Path)
	s.Assert().Equal("p1", events[0].ID)
}

func (s *DocstoreTestSuite) TestSubscribeNotifiesOnDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "players", "p1", 1, json.RawMessage(`{}`)))

	var events []docstore.Event
	unsubscribe := s.store.Subscribe("players", func(ev docstore.Event) {
		events = append(events, ev)
	})
	defer unsubscribe()

	s.Require().NoError(s.store.Delete(s.ctx, "players", "p1"))
	// An absent document fires no event.
	s.Require().NoError(s.store.Delete(s.ctx, "players", "p1"))

	s.Require().Len(events, 1)
	s.Assert().Equal(docstore.OpDelete, events[0].Op)
}

func (s *DocstoreTestSuite) TestUnsubscribeStopsEvents() {
	count := 0
	unsubscribe := s.store.Subscribe("players", func(docstore.Event) { count++ })

	s.Require().NoError(s.store.Set(s.ctx, "players", "p1", 1, json.RawMessage(`{}`)))
	unsubscribe()
	unsubscribe() // safe to call twice
	s.Require().NoError(s.store.Set(s.ctx, "players", "p2", 1, json.RawMessage(`{}`)))

	s.Assert().Equal(1, count)
}
