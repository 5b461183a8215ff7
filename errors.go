package jsonserde

import (
	"fmt"
	"strings"
)

// ConfigurationError indicates the registry returned a schema this
// installation cannot interpret as a JSON schema. Typically the subject holds
// schemas of a different family or JSON schema support is not enabled on the
// registry.
type ConfigurationError struct {
	Subject string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(`jsonserde: subject [%s] misconfigured due to %s`, e.Subject, e.Reason)
}

// IncompatibleSchemaError is returned in strict mode when the candidate schema
// is not backward compatible with the latest registered version of the
// subject. Issues holds one entry per violation found.
type IncompatibleSchemaError struct {
	Subject string
	Issues  []Issue
}

func (e *IncompatibleSchemaError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}

	return fmt.Sprintf(`jsonserde: candidate schema for subject [%s] is not backward compatible with the latest version: %s`,
		e.Subject, strings.Join(msgs, `; `))
}

// ValidationError indicates the encoded document does not satisfy the
// resolved schema.
type ValidationError struct {
	Subject string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(`jsonserde: payload for subject [%s] failed schema validation due to %s`, e.Subject, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
