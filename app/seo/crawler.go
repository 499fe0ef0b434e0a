package seo

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultSignatures is the built-in crawler allow-list: search engine
// indexers, social preview fetchers, messaging-app link unfurlers, and
// generic headless tooling. Matching is case-insensitive substring, so
// entries stay lowercase.
var defaultSignatures = []string{
	"googlebot",
	"bingbot",
	"slurp",
	"duckduckbot",
	"baiduspider",
	"yandexbot",
	"facebookexternalhit",
	"facebot",
	"twitterbot",
	"linkedinbot",
	"pinterest",
	"whatsapp",
	"telegrambot",
	"discordbot",
	"slackbot",
	"redditbot",
	"embedly",
	"quora link preview",
	"showyoubot",
	"outbrain",
	"rogerbot",
	"vkshare",
	"opengraph",
	"metatags",
	"prerender",
	"headless",
}

// Detector classifies requests as crawler or browser from the declared
// user-agent string. The signature list is data, not logic; it can be
// replaced wholesale from a YAML file without touching the matcher.
type Detector struct {
	signatures []string
}

type signaturesFile struct {
	Signatures []string `yaml:"signatures"`
}

func NewDetector(signatures []string) *Detector {
	if len(signatures) == 0 {
		signatures = defaultSignatures
	}

	lowered := make([]string, 0, len(signatures))
	for _, s := range signatures {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			lowered = append(lowered, s)
		}
	}

	return &Detector{signatures: lowered}
}

// LoadSignatures reads a crawler signature list from a YAML file of the form:
//
//	signatures:
//	  - googlebot
//	  - twitterbot
func LoadSignatures(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signatures file: %w", err)
	}

	var parsed signaturesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse signatures file: %w", err)
	}

	if len(parsed.Signatures) == 0 {
		return nil, fmt.Errorf("signatures file %s contains no signatures", path)
	}

	return parsed.Signatures, nil
}

// IsCrawler reports whether any known signature is a substring of the
// lower-cased user-agent. An absent user-agent is never a crawler.
func (d *Detector) IsCrawler(userAgent string) bool {
	if userAgent == "" {
		return false
	}

	ua := strings.ToLower(userAgent)
	for _, signature := range d.signatures {
		if strings.Contains(ua, signature) {
			return true
		}
	}

	return false
}

// SignatureCount reports the size of the active signature list.
func (d *Detector) SignatureCount() int {
	return len(d.signatures)
}
