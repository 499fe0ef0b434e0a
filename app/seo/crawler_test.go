package seo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsCrawlerKnownBots(t *testing.T) {
	detector := NewDetector(nil)

	crawlers := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"GoogleBot/2.1",
		"facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
		"Twitterbot/1.0",
		"WhatsApp/2.19.81 A",
		"Mozilla/5.0 (compatible; bingbot/2.0)",
		"TelegramBot (like TwitterBot)",
		"Slackbot-LinkExpanding 1.0",
	}

	for _, ua := range crawlers {
		if !detector.IsCrawler(ua) {
			t.Errorf("Expected %q to classify as crawler", ua)
		}
	}
}

func TestIsCrawlerCaseInsensitive(t *testing.T) {
	detector := NewDetector(nil)

	if !detector.IsCrawler("GOOGLEBOT/2.1") {
		t.Error("Upper-cased user-agent should still match")
	}
	if !detector.IsCrawler("GoogleBot/2.1") {
		t.Error("Mixed-case user-agent should still match")
	}
}

func TestIsCrawlerBrowsers(t *testing.T) {
	detector := NewDetector(nil)

	browsers := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Version/17.0 Safari/605.1.15",
		"Mozilla/5.0 (ordinary browser)",
		"curl/8.4.0",
	}

	for _, ua := range browsers {
		if detector.IsCrawler(ua) {
			t.Errorf("Expected %q to classify as browser", ua)
		}
	}
}

func TestIsCrawlerEmptyUserAgent(t *testing.T) {
	detector := NewDetector(nil)

	if detector.IsCrawler("") {
		t.Error("Absent user-agent should never classify as crawler")
	}
}

func TestNewDetectorCustomSignatures(t *testing.T) {
	detector := NewDetector([]string{"MyBot", "  ", "otherbot"})

	if detector.SignatureCount() != 2 {
		t.Errorf("Expected 2 signatures after trimming, got %d", detector.SignatureCount())
	}
	if !detector.IsCrawler("Mozilla/5.0 mybot/1.0") {
		t.Error("Custom signature should match case-insensitively")
	}
	if detector.IsCrawler("Googlebot/2.1") {
		t.Error("Custom list should fully replace the built-in list")
	}
}

func TestLoadSignatures(t *testing.T) {
	tempDir := t.TempDir()

	content := `
signatures:
  - googlebot
  - custombot
`
	path := filepath.Join(tempDir, "crawlers.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	signatures, err := LoadSignatures(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(signatures) != 2 {
		t.Fatalf("Expected 2 signatures, got %d", len(signatures))
	}

	detector := NewDetector(signatures)
	if !detector.IsCrawler("CustomBot/1.0") {
		t.Error("Loaded signature should match")
	}
}

func TestLoadSignaturesEmptyFile(t *testing.T) {
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "crawlers.yml")
	if err := os.WriteFile(path, []byte("signatures: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSignatures(path); err == nil {
		t.Error("Expected error for empty signature list")
	}
}

func TestLoadSignaturesMissingFile(t *testing.T) {
	if _, err := LoadSignatures("/nonexistent/crawlers.yml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
