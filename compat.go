package jsonserde

import (
	"fmt"
	"reflect"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Issue describes a single backward compatibility violation between a
// candidate schema and the latest registered schema.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf(`%s: %s`, i.Path, i.Message)
}

// CheckBackwardCompatibility reports the ways in which documents written under
// the candidate schema could break a reader holding s (the latest registered
// schema). An empty result means the candidate is backward compatible.
func (s *Schema) CheckBackwardCompatibility(candidate *Schema) []Issue {
	c := &compatChecker{visited: map[[2]*jsonschema.Schema]bool{}}
	c.check(`#`, s.compiled, candidate.compiled)

	return c.issues
}

// compatChecker walks the latest (reader) and candidate (writer) schemas in
// lockstep collecting violations. The visited set guards against reference
// cycles.
type compatChecker struct {
	issues  []Issue
	visited map[[2]*jsonschema.Schema]bool
}

func (c *compatChecker) add(path, format string, args ...interface{}) {
	c.issues = append(c.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *compatChecker) check(path string, reader, writer *jsonschema.Schema) {
	if reader == nil || writer == nil {
		return
	}

	for reader.Ref != nil {
		reader = reader.Ref
	}
	for writer.Ref != nil {
		writer = writer.Ref
	}

	key := [2]*jsonschema.Schema{reader, writer}
	if c.visited[key] {
		return
	}
	c.visited[key] = true

	c.checkTypes(path, reader, writer)
	c.checkEnum(path, reader, writer)
	c.checkProperties(path, reader, writer)
	c.checkItems(path, reader, writer)
}

func (c *compatChecker) checkTypes(path string, reader, writer *jsonschema.Schema) {
	if len(reader.Types) == 0 || len(writer.Types) == 0 {
		return
	}

	for _, t := range writer.Types {
		if !acceptsType(reader.Types, t) {
			c.add(path, `candidate allows type %q which the latest schema does not accept`, t)
		}
	}
}

// acceptsType reports whether a reader declaring the given types can read a
// value of type t. integer values are readable wherever number is accepted.
func acceptsType(types []string, t string) bool {
	for _, rt := range types {
		if rt == t || (rt == `number` && t == `integer`) {
			return true
		}
	}

	return false
}

func (c *compatChecker) checkEnum(path string, reader, writer *jsonschema.Schema) {
	if len(reader.Enum) == 0 {
		return
	}

	if len(writer.Enum) == 0 {
		c.add(path, `candidate drops the enum restriction of the latest schema`)
		return
	}

	for _, wv := range writer.Enum {
		allowed := false
		for _, rv := range reader.Enum {
			if reflect.DeepEqual(rv, wv) {
				allowed = true
				break
			}
		}

		if !allowed {
			c.add(path, `candidate allows enum value %v unknown to the latest schema`, wv)
		}
	}
}

func (c *compatChecker) checkProperties(path string, reader, writer *jsonschema.Schema) {
	for _, required := range reader.Required {
		if !containsString(writer.Required, required) {
			c.add(path, `property %q is required by the latest schema but not by the candidate`, required)
		}
	}

	if allowed, ok := reader.AdditionalProperties.(bool); ok && !allowed {
		for name := range writer.Properties {
			if _, ok := reader.Properties[name]; !ok {
				c.add(path, `candidate declares property %q which the latest schema does not allow`, name)
			}
		}
	}

	for name, rp := range reader.Properties {
		if wp, ok := writer.Properties[name]; ok {
			c.check(path+`/properties/`+name, rp, wp)
		}
	}
}

func (c *compatChecker) checkItems(path string, reader, writer *jsonschema.Schema) {
	rs := itemsSchema(reader)
	ws := itemsSchema(writer)
	if rs != nil && ws != nil {
		c.check(path+`/items`, rs, ws)
	}
}

func itemsSchema(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Items2020 != nil {
		return s.Items2020
	}

	if sch, ok := s.Items.(*jsonschema.Schema); ok {
		return sch
	}

	return nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}

	return false
}
