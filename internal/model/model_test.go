package model

import (
	"encoding/json"
	"testing"
)

func TestSettingValueKeepsNumericLiteral(t *testing.T) {
	var v SettingValue
	if err := json.Unmarshal([]byte(`5.0`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Kind != KindNumber {
		t.Fatalf("expected number kind, got %v", v.Kind)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "5.0" {
		t.Fatalf("literal changed: %s", out)
	}
	if v.String() != "5.0" {
		t.Fatalf("string form changed: %s", v.String())
	}
}

func TestCoerceFollowsPriorKind(t *testing.T) {
	got, ok := Coerce(BoolValue(true), "no")
	if !ok || got.Kind != KindBool || got.Bool {
		t.Fatalf("bool coercion failed: %+v ok=%v", got, ok)
	}
	got, ok = Coerce(NumberValue(json.Number("3")), "4.5")
	if !ok || got.Kind != KindNumber || got.Num.String() != "4.5" {
		t.Fatalf("number coercion failed: %+v ok=%v", got, ok)
	}
	got, ok = Coerce(NumberValue(json.Number("3")), "abc")
	if ok || got.Kind != KindString || got.Str != "abc" {
		t.Fatalf("expected string fallback: %+v ok=%v", got, ok)
	}
	got, ok = Coerce(StringValue("x"), "7")
	if !ok || got.Kind != KindString || got.Str != "7" {
		t.Fatalf("string prior must stay string: %+v", got)
	}
}

func TestRuleUnmarshalShapes(t *testing.T) {
	var r Rule
	if err := json.Unmarshal([]byte(`{"min":1,"max":10}`), &r); err != nil {
		t.Fatalf("range: %v", err)
	}
	if r.Kind != RuleRange || r.Min.String() != "1" || r.Max.String() != "10" {
		t.Fatalf("bad range rule: %+v", r)
	}

	if err := json.Unmarshal([]byte(`["A","B"]`), &r); err != nil {
		t.Fatalf("enum: %v", err)
	}
	if r.Kind != RuleEnum || len(r.Allowed) != 2 || r.Allowed[0] != "A" {
		t.Fatalf("bad enum rule: %+v", r)
	}

	if err := json.Unmarshal([]byte(`"Critical"`), &r); err != nil {
		t.Fatalf("exact: %v", err)
	}
	if r.Kind != RuleExact || r.Value.String() != "Critical" {
		t.Fatalf("bad exact rule: %+v", r)
	}

	if err := json.Unmarshal([]byte(`{"min":1}`), &r); err != nil {
		t.Fatalf("partial object: %v", err)
	}
	if r.Kind != RuleExact {
		t.Fatalf("object without max should degrade to exact, got %+v", r)
	}
}

func TestItemJSONShape(t *testing.T) {
	it := NewItem("MOT-001")
	it.SetAttr("location", "Corridor 7")
	it.SetAttr("status", "Detected")
	it.AutoGenerated = true
	out, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"MOT-001","location":"Corridor 7","status":"Detected","auto_generated":true}`
	if string(out) != want {
		t.Fatalf("got %s want %s", out, want)
	}

	var back Item
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != "MOT-001" || !back.AutoGenerated || back.Attr("location") != "Corridor 7" {
		t.Fatalf("round trip lost data: %+v", back)
	}
	if back.RemoveAfterSim {
		t.Fatalf("unexpected removal flag")
	}
}

func TestDocumentRoundTripIsStable(t *testing.T) {
	in := []byte(`{"alert_sources":{"Zeta_Alert":{"fields":["val"],"thresholds":{"val":{"min":1,"max":10}},"settings":{"default_severity":"Medium"},"items":[{"id":"ZET-001","val":"5"}]},"Alpha_Alert":{"fields":["x"],"thresholds":{},"settings":{},"items":[]}},"sensor_types":{}}`)
	var doc Document
	if err := json.Unmarshal(in, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	names := doc.Sources.Names()
	if len(names) != 2 || names[0] != "Zeta_Alert" || names[1] != "Alpha_Alert" {
		t.Fatalf("insertion order lost: %v", names)
	}
	if _, ok := doc.Extra["sensor_types"]; !ok {
		t.Fatalf("unknown top-level key dropped")
	}
	first, err := json.Marshal(&doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Document
	if err := json.Unmarshal(first, &again); err != nil {
		t.Fatalf("second unmarshal: %v", err)
	}
	second, err := json.Marshal(&again)
	if err != nil {
		t.Fatalf("second marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("round trip not stable:\n%s\n%s", first, second)
	}
}
