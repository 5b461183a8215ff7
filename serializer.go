package jsonserde

import (
	"fmt"
	"math"

	"github.com/tryfix/errors"
	"github.com/tryfix/log"
)

type options struct {
	autoRegistration          bool
	useLatestVersion          bool
	validatePayload           bool
	latestCompatibilityStrict bool
	isKey                     bool
	marshaller                Marshaller
	cache                     *ResolutionCache
	logger                    log.Logger
}

// Option is a type to host NewSerializer configurations
type Option func(*options)

// WithAutoRegistration makes the serializer register the candidate schema
// under the subject and frame messages with the returned id
func WithAutoRegistration() Option {
	return func(options *options) {
		options.autoRegistration = true
	}
}

// WithLatestVersion makes the serializer resolve the registry's latest schema
// for the subject and frame messages with its id. Ignored when automatic
// registration is enabled.
func WithLatestVersion() Option {
	return func(options *options) {
		options.useLatestVersion = true
	}
}

// WithStrictCompatibility makes latest version resolution fail with an
// IncompatibleSchemaError when the candidate schema is not backward compatible
// with the fetched latest version. Only meaningful together with
// WithLatestVersion.
func WithStrictCompatibility() Option {
	return func(options *options) {
		options.latestCompatibilityStrict = true
	}
}

// WithPayloadValidation makes the serializer validate every encoded document
// against the resolved schema before framing
func WithPayloadValidation() Option {
	return func(options *options) {
		options.validatePayload = true
	}
}

// ForKey builds a serializer for the key role of the topic. Subjects resolve
// to "<topic>-key" instead of "<topic>-value".
func ForKey() Option {
	return func(options *options) {
		options.isKey = true
	}
}

// WithMarshaller replaces the default JSON document encoder
func WithMarshaller(marshaller Marshaller) Option {
	return func(options *options) {
		options.marshaller = marshaller
	}
}

// WithResolutionCache injects an externally owned cache, letting several
// serializers (typically the key and value pair of a topic) share resolved
// latest versions
func WithResolutionCache(cache *ResolutionCache) Option {
	return func(options *options) {
		options.cache = cache
	}
}

// WithLogger returns a configuration to create a NewSerializer with given logger
func WithLogger(logger log.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// Serializer frames messages of one topic role (key or value) with the
// Confluent wire format. It is bound to one candidate schema for its entire
// lifetime and is safe for concurrent use.
type Serializer struct {
	client  Client
	schema  *Schema
	options *options
	logger  log.Logger
}

// NewSerializer returns a pointer to a Serializer for the given candidate
// schema with the given options. The default configuration serializes the
// value role, encodes documents as JSON and looks up the candidate schema's id
// without registering or validating anything.
func NewSerializer(client Client, schema *Schema, opts ...Option) (*Serializer, error) {
	options := new(options)
	for _, opt := range opts {
		opt(options)
	}

	if options.logger == nil {
		options.logger = log.NewNoopLogger()
	}

	if options.marshaller == nil {
		options.marshaller = NewJSONMarshaller()
	}

	if options.cache == nil {
		options.cache = NewResolutionCache()
	}

	if options.autoRegistration && options.useLatestVersion {
		options.logger.Warn(`jsonserde.serializer`,
			`latest version resolution is ignored when automatic registration is enabled`)
	}

	if err := options.marshaller.Init(); err != nil {
		return nil, errors.WithPrevious(err, `marshaller init failed`)
	}

	return &Serializer{
		client:  client,
		schema:  schema,
		options: options,
		logger:  options.logger,
	}, nil
}

// Serde bundles the key and value serializers of a topic family. Both share
// one configuration and one resolution cache and differ only in the role flag.
type Serde struct {
	Key   *Serializer
	Value *Serializer
}

// NewSerde returns key and value serializers built from the same options and
// a shared resolution cache
func NewSerde(client Client, keySchema, valueSchema *Schema, opts ...Option) (*Serde, error) {
	options := new(options)
	for _, opt := range opts {
		opt(options)
	}

	cache := options.cache
	if cache == nil {
		cache = NewResolutionCache()
	}

	shared := append(opts, WithResolutionCache(cache))

	key, err := NewSerializer(client, keySchema, append(shared, ForKey())...)
	if err != nil {
		return nil, err
	}

	value, err := NewSerializer(client, valueSchema, shared...)
	if err != nil {
		return nil, err
	}

	return &Serde{Key: key, Value: value}, nil
}

// SubjectName derives the registry subject for a topic and role
func SubjectName(topic string, isKey bool) string {
	if isKey {
		return topic + `-key`
	}

	return topic + `-value`
}

// Serialize encodes the value and frames it for the wire. Per call it derives
// the subject, encodes the document, resolves the schema to validate against,
// validates the document when configured and resolves the id written into the
// envelope.
//
// Validation is ordered before id resolution: a rejected payload never reaches
// the registry, so on the auto registration path a ValidationError means the
// candidate schema was not registered by this call.
//
// On failure no bytes are returned and the resolution cache is either
// unchanged or holds one new fully resolved entry.
func (s *Serializer) Serialize(topic string, v interface{}) ([]byte, error) {
	subject := SubjectName(topic, s.options.isKey)

	document, err := s.options.marshaller.Marshall(v)
	if err != nil {
		return nil, errors.WithPrevious(err, fmt.Sprintf(`encode failed for subject [%s]`, subject))
	}

	schema, err := s.schemaForValidation(subject)
	if err != nil {
		return nil, err
	}

	if s.options.validatePayload {
		if err := validatePayload(subject, schema, document); err != nil {
			return nil, err
		}
	}

	id, err := s.idForEnvelope(subject)
	if err != nil {
		return nil, err
	}

	// the header holds the id as an int32
	if id < 0 || id > math.MaxInt32 {
		return nil, errors.New(fmt.Sprintf(`schema id [%d] does not fit the envelope header`, id))
	}

	return newEnvelope(int32(id), document), nil
}

// schemaForValidation picks the schema the document is validated against. The
// candidate schema applies everywhere except on the latest version strategy,
// where the resolved latest wins.
func (s *Serializer) schemaForValidation(subject string) (*Schema, error) {
	if !s.options.autoRegistration && s.options.useLatestVersion {
		return s.resolveLatest(subject)
	}

	return s.schema, nil
}

// idForEnvelope picks the schema id written into the envelope. Resolution is
// independent from schemaForValidation; on the latest version strategy the id
// of the resolved latest schema is looked up, never the candidate's.
func (s *Serializer) idForEnvelope(subject string) (int, error) {
	if s.options.autoRegistration {
		return s.client.Register(subject, s.schema)
	}

	if s.options.useLatestVersion {
		latest, err := s.resolveLatest(subject)
		if err != nil {
			return 0, err
		}

		return s.client.ID(subject, latest)
	}

	return s.client.ID(subject, s.schema)
}

// resolveLatest returns the latest registered schema for the subject, fetching
// it from the registry at most once per subject and candidate pair. A cache
// hit skips both the fetch and the compatibility check, so registry side
// version bumps stay invisible until the cache is torn down.
func (s *Serializer) resolveLatest(subject string) (*Schema, error) {
	if cached, ok := s.options.cache.get(subject, s.schema); ok {
		return cached, nil
	}

	md, err := s.client.LatestSchemaMetadata(subject)
	if err != nil {
		return nil, err
	}

	latest, err := parseMetadata(subject, md)
	if err != nil {
		return nil, err
	}

	if issues := latest.CheckBackwardCompatibility(s.schema); len(issues) > 0 {
		if s.options.latestCompatibilityStrict {
			return nil, &IncompatibleSchemaError{Subject: subject, Issues: issues}
		}

		s.logger.Warn(`jsonserde.serializer`,
			fmt.Sprintf(`candidate schema for subject [%s] has %d backward compatibility issue/s, continuing in non strict mode`,
				subject, len(issues)))
	}

	return s.options.cache.insertIfAbsent(subject, s.schema, &cacheEntry{
		schema:  latest,
		id:      md.ID,
		version: md.Version,
	}), nil
}
