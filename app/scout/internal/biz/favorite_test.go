package biz

import (
	"errors"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/favorites"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

type brokenBackend struct{}

func (brokenBackend) Read(string) ([]byte, error) { return nil, favorites.ErrNotFound }
func (brokenBackend) Write(string, []byte) error  { return errors.New("read-only") }

func newFavoriteUseCase(t *testing.T, b favorites.Backend) *FavoriteUseCase {
	t.Helper()
	store := favorites.NewStore(b)
	require.NoError(t, store.Load())
	return NewFavoriteUseCase(store, log.DefaultLogger)
}

func TestFavoriteUseCase_Toggle(t *testing.T) {
	uc := newFavoriteUseCase(t, favorites.NewMemoryBackend())
	p := model.PainPoint{ID: "7", Title: "Manual Compliance"}

	fav, err := uc.Toggle(p)
	require.NoError(t, err)
	assert.True(t, fav)
	assert.Equal(t, []string{"7"}, uc.FavoriteIDs([]model.PainPoint{{ID: "1"}, p}))

	fav, err = uc.Toggle(p)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Empty(t, uc.List())
}

func TestFavoriteUseCase_RejectsMissingID(t *testing.T) {
	uc := newFavoriteUseCase(t, favorites.NewMemoryBackend())
	_, err := uc.Toggle(model.PainPoint{Title: "no id"})
	assert.True(t, kerrors.Is(err, ErrInvalidPoint))
}

func TestFavoriteUseCase_PersistFailureKeepsState(t *testing.T) {
	uc := newFavoriteUseCase(t, brokenBackend{})
	fav, err := uc.Toggle(model.PainPoint{ID: "1"})
	require.NoError(t, err)
	assert.True(t, fav)
	assert.Len(t, uc.List(), 1)
}
