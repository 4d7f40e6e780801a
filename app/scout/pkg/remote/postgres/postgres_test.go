package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/config"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/remote"
)

func TestBuildQuery_NoFilter(t *testing.T) {
	query, args := buildQuery(remote.Query{})
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "FROM pain_points")
	assert.Contains(t, query, "LIMIT $1")
	assert.Equal(t, []any{remote.PoolSize}, args)
}

func TestBuildQuery_Filter(t *testing.T) {
	query, args := buildQuery(remote.Query{Sector: "Sports Management", Limit: 40})
	assert.Contains(t, query, "WHERE industry ILIKE $1 OR industry ILIKE $2 LIMIT $3")
	assert.Equal(t, []any{"%Sports Management%", "%Sports%", 40}, args)
}

func TestBuildQuery_AllIsUnfiltered(t *testing.T) {
	query, _ := buildQuery(remote.Query{Sector: "All"})
	assert.NotContains(t, query, "WHERE")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_pure\\`, escapeLike(`100% _pure\`))
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n"})
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", dsn)
}

func TestNewStorage_UnreachableKeepsQuerier(t *testing.T) {
	store, err := NewStorage(config.DBConfig{Host: "127.0.0.1", Port: 1, User: "u", Name: "n"})
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// 每次查询都会重新尝试连接，失败时以 QueryError 交给下一级
	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := store.Query(ctx, remote.Query{})
		cancel()
		var qe *remote.QueryError
		require.ErrorAs(t, err, &qe)
		assert.Equal(t, "postgres", qe.Provider)
	}
}
