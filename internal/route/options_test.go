package route

import (
	"encoding/json"
	"testing"
)

func TestParseOptions_AvoidCollision(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    bool
		wantErr bool
	}{
		{"Bool true", true, true, false},
		{"Bool false", false, false, false},
		{"String true", "true", true, false},
		{"String false", "false", false, false},
		{"Garbage string", "maybe", false, true},
		{"Wrong type", 3.5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]interface{}{
				"advanced": map[string]interface{}{"avoid_collision": tt.value},
			}
			opts, err := ParseOptions(raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOptions failed: %v", err)
			}
			if opts.AvoidCollision != tt.want {
				t.Errorf("AvoidCollision = %v, want %v", opts.AvoidCollision, tt.want)
			}
		})
	}
}

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := ParseOptions(map[string]interface{}{})
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}
	if len(opts.Anchors) != 0 || opts.AvoidCollision || opts.LeadIn != 0 || opts.LeadOut != 0 {
		t.Errorf("defaults not zero: %+v", opts)
	}
}

func TestParseOptions_AnchorOrderPreserved(t *testing.T) {
	// Keys deliberately in reverse alphabetical order: routing order is
	// the supplied order, never key order.
	raw := map[string]interface{}{}
	if err := json.Unmarshal([]byte(`{
		"anchors": [
			{"key": "z", "x": 1.0, "y": 2.0},
			{"key": "a", "x": 3.0, "y": 4.0},
			{"key": "m", "x": 5.0, "y": 6.0}
		],
		"lead_in": "0.2",
		"lead_out": 0.3
	}`), &raw); err != nil {
		t.Fatal(err)
	}

	opts, err := ParseOptions(raw)
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}

	wantKeys := []string{"z", "a", "m"}
	if len(opts.Anchors) != len(wantKeys) {
		t.Fatalf("got %d anchors, want %d", len(opts.Anchors), len(wantKeys))
	}
	for i, k := range wantKeys {
		if opts.Anchors[i].Key != k {
			t.Errorf("anchor %d key = %q, want %q", i, opts.Anchors[i].Key, k)
		}
	}
	if opts.Anchors[1].Position != pt(3, 4) {
		t.Errorf("anchor 1 position = %v", opts.Anchors[1].Position)
	}
	if opts.LeadIn != 0.2 || opts.LeadOut != 0.3 {
		t.Errorf("leads = %g, %g", opts.LeadIn, opts.LeadOut)
	}
}

func TestParseOptions_BadAnchors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"Not a list", map[string]interface{}{"anchors": "nope"}},
		{"Entry not an object", map[string]interface{}{"anchors": []interface{}{"nope"}}},
		{"Missing coordinates", map[string]interface{}{
			"anchors": []interface{}{map[string]interface{}{"key": "a"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOptions(tt.raw); err == nil {
				t.Error("expected error")
			}
		})
	}
}
