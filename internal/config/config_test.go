package config

import "testing"

func TestGetEnvList(t *testing.T) {
	fallback := []string{"http://localhost:5173"}

	got := getEnvList("CORS_TEST_UNSET", fallback)
	if len(got) != 1 || got[0] != fallback[0] {
		t.Fatalf("unset: got %v, want fallback", got)
	}

	t.Setenv("CORS_TEST_SET", " https://a.example.com , https://b.example.com ,, ")
	got = getEnvList("CORS_TEST_SET", fallback)
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("set: got %v, want two trimmed origins", got)
	}

	t.Setenv("CORS_TEST_BLANK", " , ,")
	got = getEnvList("CORS_TEST_BLANK", fallback)
	if len(got) != 1 || got[0] != fallback[0] {
		t.Fatalf("blank: got %v, want fallback", got)
	}
}
