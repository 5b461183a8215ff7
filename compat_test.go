package jsonserde

import (
	"strings"
	"testing"
)

func issues(t *testing.T, latest, candidate string) []Issue {
	t.Helper()
	return testSchema(t, latest).CheckBackwardCompatibility(testSchema(t, candidate))
}

func TestCheckBackwardCompatibility_Identical(t *testing.T) {
	if got := issues(t, testSchemaV1, testSchemaV1); len(got) != 0 {
		t.Errorf(`need no issues, have %v`, got)
	}
}

func TestCheckBackwardCompatibility_DroppedRequired(t *testing.T) {
	got := issues(t, testSchemaV1, testSchemaNoRequired)
	if len(got) != 1 {
		t.Fatalf(`need one issue, have %v`, got)
	}

	if !strings.Contains(got[0].Message, `field1`) {
		t.Errorf(`need the issue to name the property, have %v`, got[0])
	}
}

func TestCheckBackwardCompatibility_PropertyTypeChanged(t *testing.T) {
	latest := `{
		"type": "object",
		"properties": {"field3": {"type": "string"}}
	}`
	candidate := `{
		"type": "object",
		"properties": {"field3": {"type": "integer"}}
	}`

	got := issues(t, latest, candidate)
	if len(got) != 1 {
		t.Fatalf(`need one issue, have %v`, got)
	}

	if got[0].Path != `#/properties/field3` {
		t.Errorf(`need the issue at the property path, have %v`, got[0])
	}
}

func TestCheckBackwardCompatibility_IntegerReadableAsNumber(t *testing.T) {
	latest := `{"type": "object", "properties": {"total": {"type": "number"}}}`
	candidate := `{"type": "object", "properties": {"total": {"type": "integer"}}}`

	if got := issues(t, latest, candidate); len(got) != 0 {
		t.Errorf(`need integer to be readable where number is accepted, have %v`, got)
	}
}

func TestCheckBackwardCompatibility_ClosedContentModel(t *testing.T) {
	latest := `{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"additionalProperties": false
	}`
	candidate := `{
		"type": "object",
		"properties": {"a": {"type": "string"}, "b": {"type": "string"}}
	}`

	got := issues(t, latest, candidate)
	if len(got) != 1 {
		t.Fatalf(`need one issue, have %v`, got)
	}

	if !strings.Contains(got[0].Message, `"b"`) {
		t.Errorf(`need the issue to name the new property, have %v`, got[0])
	}
}

func TestCheckBackwardCompatibility_EnumNarrowing(t *testing.T) {
	latest := `{"type": "string", "enum": ["a", "b"]}`

	if got := issues(t, latest, `{"type": "string", "enum": ["a"]}`); len(got) != 0 {
		t.Errorf(`need a narrower enum to pass, have %v`, got)
	}

	if got := issues(t, latest, `{"type": "string", "enum": ["a", "c"]}`); len(got) != 1 {
		t.Errorf(`need one issue for an unknown enum value, have %v`, got)
	}

	if got := issues(t, latest, `{"type": "string"}`); len(got) != 1 {
		t.Errorf(`need one issue for a dropped enum, have %v`, got)
	}
}

func TestCheckBackwardCompatibility_Items(t *testing.T) {
	latest := `{"type": "array", "items": {"type": "string"}}`
	candidate := `{"type": "array", "items": {"type": "integer"}}`

	got := issues(t, latest, candidate)
	if len(got) != 1 {
		t.Fatalf(`need one issue, have %v`, got)
	}

	if got[0].Path != `#/items` {
		t.Errorf(`need the issue at the items path, have %v`, got[0])
	}
}
