package jsonserde

import (
	"fmt"
	"time"

	registry "github.com/riferrei/srclient"
	"github.com/tryfix/log"
)

// Metadata describes the latest registered schema version of a subject as
// reported by the registry.
type Metadata struct {
	ID      int
	Version int
	Schema  string
	Type    string
}

// Client is the registry capability consumed by the serializer. Calls are
// blocking network operations; retry policy, timeouts and authentication
// belong to the implementation, not to the serializer.
type Client interface {
	// Register registers the schema under the subject and returns the
	// registry assigned id. Registering an already known schema returns its
	// existing id.
	Register(subject string, schema *Schema) (int, error)

	// ID looks up the id of an already registered schema
	ID(subject string, schema *Schema) (int, error)

	// LatestSchemaMetadata fetches the latest registered version of the subject
	LatestSchemaMetadata(subject string) (*Metadata, error)
}

type clientOptions struct {
	client  registry.ISchemaRegistryClient
	timeout time.Duration
	logger  log.Logger
}

// ClientOption is a type to host NewRegistryClient configurations
type ClientOption func(*clientOptions)

// WithMockClient replaces the underlying srclient instance. Intended for tests
// with srclient.CreateMockSchemaRegistryClient
func WithMockClient(client registry.ISchemaRegistryClient) ClientOption {
	return func(options *clientOptions) {
		options.client = client
	}
}

// WithTimeout sets the request timeout on the underlying registry client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(options *clientOptions) {
		options.timeout = timeout
	}
}

// WithClientLogger returns a configuration to create a NewRegistryClient with
// the given logger
func WithClientLogger(logger log.Logger) ClientOption {
	return func(options *clientOptions) {
		options.logger = logger
	}
}

// RegistryClient is the Confluent Schema Registry backed Client implementation
type RegistryClient struct {
	client registry.ISchemaRegistryClient
	logger log.Logger
}

// NewRegistryClient returns a pointer to a connected RegistryClient with the
// given options
func NewRegistryClient(url string, opts ...ClientOption) (*RegistryClient, error) {
	options := new(clientOptions)
	for _, opt := range opts {
		opt(options)
	}

	if options.logger == nil {
		options.logger = log.NewNoopLogger()
	}

	if options.client == nil {
		options.client = registry.NewSchemaRegistryClient(url)
	}

	if options.timeout > 0 {
		options.client.SetTimeout(options.timeout)
	}

	return &RegistryClient{
		client: options.client,
		logger: options.logger,
	}, nil
}

func (c *RegistryClient) Register(subject string, schema *Schema) (int, error) {
	registered, err := c.client.CreateSchema(subject, schema.Render(), registry.Json)
	if err != nil {
		return 0, err
	}

	c.logger.Debug(`jsonserde.registry`,
		fmt.Sprintf(`subject [%s] registered with schema id [%d]`, subject, registered.ID()))

	return registered.ID(), nil
}

func (c *RegistryClient) ID(subject string, schema *Schema) (int, error) {
	found, err := c.client.LookupSchema(subject, schema.Render(), registry.Json)
	if err != nil {
		return 0, err
	}

	return found.ID(), nil
}

func (c *RegistryClient) LatestSchemaMetadata(subject string) (*Metadata, error) {
	latest, err := c.client.GetLatestSchema(subject)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		ID:      latest.ID(),
		Version: latest.Version(),
		Schema:  latest.Schema(),
	}
	if latest.SchemaType() != nil {
		md.Type = string(*latest.SchemaType())
	}

	return md, nil
}

// parseMetadata interprets a registry response as a JSON schema. A response of
// a different schema family means the registry (or the subject) was not set up
// for JSON schemas and is never coerced.
func parseMetadata(subject string, md *Metadata) (*Schema, error) {
	if md.Type != string(registry.Json) {
		return nil, &ConfigurationError{
			Subject: subject,
			Reason:  fmt.Sprintf(`registry returned schema type %q, JSON schema support is not enabled for this subject`, md.Type),
		}
	}

	parsed, err := ParseSchema(md.Schema)
	if err != nil {
		return nil, &ConfigurationError{
			Subject: subject,
			Reason:  fmt.Sprintf(`latest schema text does not compile due to %s`, err),
		}
	}

	return parsed, nil
}
