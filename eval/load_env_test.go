package eval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvEnv, "")
	env, err := LoadEnv()
	if err != nil || env != nil {
		t.Fatalf("got %v %v", env, err)
	}

	t.Setenv(EnvEnv, `{"a": "x", "b": [true]}`)
	env, err = LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := Env{"a": "x", "b": []any{true}}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	merged := env.Merge(Env{"a": "y"})
	if merged["a"] != "y" || env["a"] != "x" {
		t.Errorf("merge got %v, base now %v", merged["a"], env["a"])
	}

	t.Setenv(EnvEnv, `[1]`)
	if _, err := LoadEnv(); err == nil {
		t.Error("expected error for non-object env")
	}
}
