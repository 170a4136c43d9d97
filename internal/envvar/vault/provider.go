// Package vault resolves configuration secrets stored in HashiCorp Vault.
package vault

import (
	"path"
	"strings"
	"sync"

	"github.com/hashicorp/vault/api"

	"github.com/sanLimbu/todo-tracker/internal"
)

// Logical is the subset of *api.Logical used for reading secrets.
type Logical interface {
	Read(path string) (*api.Secret, error)
}

// Provider reads KV v2 secrets, values are cached for the life of the process.
type Provider struct {
	path   string
	client Logical

	mu     sync.Mutex
	values map[string]string
}

// New instantiates the Vault client.
func New(token, addr, path string) (*Provider, error) {
	config := &api.Config{
		Address: addr,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "api.NewClient")
	}

	client.SetToken(token)

	return NewWithClient(client.Logical(), path), nil
}

// NewWithClient instantiates the Provider with an already configured client.
func NewWithClient(client Logical, path string) *Provider {
	return &Provider{
		path:   path,
		client: client,
		values: make(map[string]string),
	}
}

// Get retrieves the value indicated by v, in the form "<secret>:<field>".
func (p *Provider) Get(v string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if res, ok := p.values[v]; ok {
		return res, nil
	}

	split := strings.Split(v, ":")
	if len(split) != 2 {
		return "", internal.NewErrorf(internal.ErrorCodeInvalidArgument, "missing key value: %s", v)
	}

	res, err := p.client.Read(path.Join("data", p.path, split[0]))
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.Read")
	}

	if res == nil {
		return "", internal.NewErrorf(internal.ErrorCodeNotFound, "secret not found: %s", split[0])
	}

	data, ok := res.Data["data"].(map[string]interface{})
	if !ok {
		return "", internal.NewErrorf(internal.ErrorCodeUnknown, "invalid secret data: %s", split[0])
	}

	val, ok := data[split[1]].(string)
	if !ok {
		return "", internal.NewErrorf(internal.ErrorCodeNotFound, "key not found: %s", v)
	}

	p.values[v] = val

	return val, nil
}
