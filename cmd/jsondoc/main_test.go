package main

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/gomap"
	"github.com/signadot/jsondoc/parse"
)

func TestEnvFunc(t *testing.T) {
	env := map[string]any{}
	for _, a := range []string{"a.b=1", "a.c=[x, y]", "d=true"} {
		if err := envFunc(env, a); err != nil {
			t.Fatal(err)
		}
	}
	d, err := gomap.ToJSON(env, gomap.EncodeOptions(encode.Formatted(false)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"a":{"b":1,"c":["x","y"]},"d":true}`, string(d)); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
	if err := envFunc(env, "d.x=1"); err == nil {
		t.Error("expected error setting below a scalar")
	}
	if err := envFunc(env, "novalue"); err == nil {
		t.Error("expected usage error")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc, err := parse.ParseString(`{"z":1,"a":[true,null,"s"],"m":{"k":2.5}}`)
	if err != nil {
		t.Fatal(err)
	}
	d, err := yaml.Marshal(toYAML(doc))
	if err != nil {
		t.Fatal(err)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		t.Fatal(err)
	}
	back, err := fromYAML(v)
	if err != nil {
		t.Fatal(err)
	}
	got := encode.MustString(back, encode.Formatted(false))
	want := `{"z":1,"a":[true,null,"s"],"m":{"k":2.5}}`
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
