package vault_test

import (
	"errors"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-tracker/internal"
	"github.com/sanLimbu/todo-tracker/internal/envvar/vault"
)

type logical struct {
	reads   []string
	secrets map[string]*api.Secret
}

func (l *logical) Read(path string) (*api.Secret, error) {
	l.reads = append(l.reads, path)

	if path == "data/todos/broken" {
		return nil, errors.New("permission denied")
	}

	return l.secrets[path], nil
}

func TestProvider_Get(t *testing.T) {
	t.Parallel()

	client := &logical{
		secrets: map[string]*api.Secret{
			"data/todos/database": {
				Data: map[string]interface{}{
					"data": map[string]interface{}{"password": "s3cr3t"},
				},
			},
		},
	}

	p := vault.NewWithClient(client, "todos")

	val, err := p.Get("database:password")
	require.NoError(t, err)
	require.Equal(t, "s3cr3t", val)

	val, err = p.Get("database:password")
	require.NoError(t, err)
	require.Equal(t, "s3cr3t", val)
	require.Len(t, client.reads, 1)

	_, err = p.Get("database")
	require.Equal(t, internal.ErrorCodeInvalidArgument, internal.CodeOf(err))

	_, err = p.Get("database:username")
	require.Equal(t, internal.ErrorCodeNotFound, internal.CodeOf(err))

	_, err = p.Get("other:password")
	require.Equal(t, internal.ErrorCodeNotFound, internal.CodeOf(err))

	_, err = p.Get("broken:password")
	require.Error(t, err)
}
