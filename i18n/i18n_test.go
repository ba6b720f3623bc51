package i18n

import "testing"

func TestPassthroughBeforeInit(t *testing.T) {
	po = nil

	if got := T("Scan complete"); got != "Scan complete" {
		t.Fatalf("T = %q", got)
	}
	if got := N("one file", "many files", 1); got != "one file" {
		t.Fatalf("N(1) = %q", got)
	}
	if got := N("one file", "many files", 3); got != "many files" {
		t.Fatalf("N(3) = %q", got)
	}
}

func TestInitRussian(t *testing.T) {
	Init("ru")
	defer func() { po = nil }()

	if got := T("Scan complete"); got != "Сканирование завершено" {
		t.Fatalf("T = %q", got)
	}
	// Untranslated strings pass through.
	if got := T("no such msgid"); got != "no such msgid" {
		t.Fatalf("T = %q", got)
	}
}

func TestInitUnknownLanguage(t *testing.T) {
	Init("xx")
	defer func() { po = nil }()

	if got := T("Scan complete"); got != "Scan complete" {
		t.Fatalf("T = %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "LANGUAGE list takes first entry",
			env:  map[string]string{"LANGUAGE": "ru:en", "LANG": "de_DE.UTF-8"},
			want: "ru",
		},
		{
			name: "LC_ALL strips encoding",
			env:  map[string]string{"LC_ALL": "de_DE.UTF-8"},
			want: "de_DE",
		},
		{
			name: "LC_MESSAGES before LANG",
			env:  map[string]string{"LC_MESSAGES": "fr", "LANG": "it"},
			want: "fr",
		},
		{
			name: "C locale means English",
			env:  map[string]string{"LANG": "C"},
			want: "en",
		},
		{
			name: "POSIX falls through to the next variable",
			env:  map[string]string{"LC_ALL": "POSIX", "LANG": "ru_RU"},
			want: "ru_RU",
		},
		{
			name: "nothing set",
			env:  map[string]string{},
			want: "en",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
				t.Setenv(env, tc.env[env])
			}
			if got := detectLanguage(); got != tc.want {
				t.Fatalf("detectLanguage = %q, want %q", got, tc.want)
			}
		})
	}
}
