package localstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"brewnote.dev/BrewNote/pkg/localstore"
)

type LocalStoreTestSuite struct {
	suite.Suite
	store *localstore.MemStore
}

func TestLocalStoreTestSuite(t *testing.T) {
	suite.Run(t, new(LocalStoreTestSuite))
}

func (suite *LocalStoreTestSuite) SetupTest() {
	suite.store = localstore.NewMemStore()
}

type preferences struct {
	Theme string `json:"theme"`
	Units string `json:"units"`
}

func (suite *LocalStoreTestSuite) TestPutGetDelete() {
	ctx := context.Background()

	var missing preferences

	found, err := suite.store.Get(ctx, localstore.KeyPreferences, &missing)
	suite.Require().NoError(err)
	suite.False(found)

	suite.Require().NoError(suite.store.Put(ctx, localstore.KeyPreferences, preferences{Theme: "dark", Units: "metric"}))

	var stored preferences

	found, err = suite.store.Get(ctx, localstore.KeyPreferences, &stored)
	suite.Require().NoError(err)
	suite.True(found)
	suite.Equal("dark", stored.Theme)
	suite.Equal("metric", stored.Units)

	suite.Require().NoError(suite.store.Delete(ctx, localstore.KeyPreferences))

	found, err = suite.store.Get(ctx, localstore.KeyPreferences, &stored)
	suite.Require().NoError(err)
	suite.False(found)
}

func (suite *LocalStoreTestSuite) TestPushBounded_PrependsNewestFirst() {
	ctx := context.Background()

	items, err := localstore.PushBounded(ctx, suite.store, localstore.KeyCloneHistory, "first", localstore.CloneHistoryLimit)
	suite.Require().NoError(err)
	suite.Equal([]string{"first"}, items)

	items, err = localstore.PushBounded(ctx, suite.store, localstore.KeyCloneHistory, "second", localstore.CloneHistoryLimit)
	suite.Require().NoError(err)
	suite.Equal([]string{"second", "first"}, items)
}

func (suite *LocalStoreTestSuite) TestPushBounded_EvictsBeyondLimit() {
	ctx := context.Background()

	for _, draft := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		_, err := localstore.PushBounded(ctx, suite.store, localstore.KeyDrafts, draft, localstore.DraftLimit)
		suite.Require().NoError(err)
	}

	var drafts []string

	found, err := suite.store.Get(ctx, localstore.KeyDrafts, &drafts)
	suite.Require().NoError(err)
	suite.True(found)
	suite.Equal([]string{"g", "f", "e", "d", "c"}, drafts)
}
