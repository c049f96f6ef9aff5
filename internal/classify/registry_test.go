package classify

import "testing"

func TestResolveFallsBackToGeneric(t *testing.T) {
	reg := DefaultRegistry()
	st := reg.Resolve("api.example.com")
	if st.Type != GenericType {
		t.Errorf("expected generic fallback, got %s", st.Type)
	}
}

func TestResolveIsCaseInsensitiveOnHost(t *testing.T) {
	reg := DefaultRegistry()
	st := reg.Resolve("API.TWILIO.COM")
	if st.Tag != "twilio" {
		t.Errorf("expected twilio, got %q", st.Tag)
	}
}

func TestResolveLongestTagWins(t *testing.T) {
	reg := NewRegistry(
		Subtype{Type: GenericType},
		Subtype{Tag: "office", Type: "office"},
		Subtype{Tag: "outlook.office", Type: "outlook.office"},
	)
	st := reg.Resolve("outlook.office365.com")
	if st.Tag != "outlook.office" {
		t.Errorf("expected most specific tag, got %q", st.Tag)
	}
}

func TestResolveEqualLengthTieGoesToEarliest(t *testing.T) {
	reg := NewRegistry(
		Subtype{Type: GenericType},
		Subtype{Tag: "aaa", Type: "first"},
		Subtype{Tag: "bbb", Type: "second"},
	)
	st := reg.Resolve("aaabbb.example.com")
	if st.Type != "first" {
		t.Errorf("expected earliest registered entry, got %s", st.Type)
	}
}

func TestDefaultRegistryTags(t *testing.T) {
	tags := DefaultRegistry().Tags()
	want := []string{"auth0", "twilio", "googleapis", "outlook.office"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %v", len(want), tags)
	}
	for i, tag := range want {
		if tags[i] != tag {
			t.Errorf("tag %d: expected %s, got %s", i, tag, tags[i])
		}
	}
}
