package i18n

import "testing"

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguage(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "en_US.UTF-8:zh_CN")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := detectLanguage(); got != "en_US" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en_US")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LANG", "en_GB.UTF-8")

		if got := detectLanguage(); got != "en_GB" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en_GB")
		}
	})

	t.Run("falls back to zh", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "zh" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "zh")
		}
	})
}

func TestTFallbackWhenUninitialized(t *testing.T) {
	old := po
	po = nil
	t.Cleanup(func() { po = old })

	if got := T("未知错误"); got != "未知错误" {
		t.Fatalf("T fallback = %q, want %q", got, "未知错误")
	}
}

func TestEnglishCatalog(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	Init("en")
	if got := T("未知错误"); got != "Unknown error" {
		t.Errorf("T(未知错误) = %q, want %q", got, "Unknown error")
	}
	if got := T("no such message"); got != "no such message" {
		t.Errorf("unmatched msgid should pass through, got %q", got)
	}
}
