package matcher

import "testing"

func TestSanitizeIdempotence(t *testing.T) {
	cases := []string{
		"Witcher 3, The", "Doom (2016)", "Doom [HD]", "The_Witcher.3",
		"Half-Life 2: Episode One", "Prey™", "", "   already clean   ",
	}
	for _, s := range cases {
		once := Sanitize(s)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: once=%q twice=%q", s, once, twice)
		}
	}
}

func TestSanitizeArticleRotation(t *testing.T) {
	if got := Sanitize("Witcher 3, The"); got != "The Witcher 3" {
		t.Errorf("got %q, want %q", got, "The Witcher 3")
	}
	if got := Sanitize("Hobbit, the"); got != "the Hobbit" {
		t.Errorf("got %q, want %q", got, "the Hobbit")
	}
}

func TestSanitizeBracketStripping(t *testing.T) {
	if got := Sanitize("Doom (2016)"); got != "Doom" {
		t.Errorf("got %q, want %q", got, "Doom")
	}
	if got := Sanitize("Doom [HD]"); got != "Doom" {
		t.Errorf("got %q, want %q", got, "Doom")
	}
}

func TestSanitizeWhitespaceCollapse(t *testing.T) {
	cases := []string{"Doom   3", "  Doom  ", "Doom\t\t3", "Doom_3.Remastered"}
	for _, s := range cases {
		got := Sanitize(s)
		for i := 0; i+1 < len(got); i++ {
			if got[i] == ' ' && got[i+1] == ' ' {
				t.Errorf("Sanitize(%q) = %q contains a double space", s, got)
			}
		}
		if len(got) > 0 && (got[0] == ' ' || got[len(got)-1] == ' ') {
			t.Errorf("Sanitize(%q) = %q has leading/trailing space", s, got)
		}
	}
}

func TestSanitizeTrademarkGlyphs(t *testing.T) {
	if got := Sanitize("Fortnite™"); got != "Fortnite" {
		t.Errorf("got %q, want %q", got, "Fortnite")
	}
}
