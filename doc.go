/*
Package jsonserde serializes Kafka messages as JSON documents framed with the
Confluent Schema Registry wire format.

A Serializer is bound to one candidate JSON schema and one role (key or value).
Per message it resolves the schema to a registry assigned id, optionally
validates the encoded document against the resolved schema and frames the
document as:

	magic byte (0x00) | schema id (4 bytes, big endian) | encoded document

Resolution is driven by the serializer configuration. With automatic
registration the candidate schema is registered (or looked up) under the
subject and its id is used. With the latest version strategy the registry's
latest schema for the subject is fetched once, checked for backward
compatibility against the candidate and remembered in a ResolutionCache for
the lifetime of the serializer.

Schema registry API : https://docs.confluent.io/platform/current/schema-registry/develop/api.html

JSON Schema : https://json-schema.org/specification
*/
package jsonserde
