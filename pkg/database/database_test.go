package database

import (
	"context"
	"testing"

	"worktrack/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := configs.Config{DBHost: "db", DBPort: 5433, DBUser: "wt", DBPassword: "pw", DBName: "worktrack", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=wt password=pw dbname=worktrack sslmode=disable", DSN(cfg))
}

func TestConnectRedisDisabled(t *testing.T) {
	client, err := ConnectRedis(context.Background(), configs.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
