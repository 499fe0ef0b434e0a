package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Upstream configuration
	CMSBaseURL      string `long:"cms-base-url" env:"CMS_BASE_URL" default:"https://cms.decentraland.org/spaces/ea2ybdmmn1kv/environments/master" description:"Base URL of the headless CMS"`
	SiteURL         string `long:"site-url" env:"SITE_URL" default:"https://decentraland.org" description:"Canonical site origin used for redirects and meta tags"`
	ShellURL        string `long:"shell-url" env:"SHELL_URL" description:"URL of the SPA shell HTML (defaults to <site-url>/index.html)"`
	UpstreamTimeout int    `long:"upstream-timeout" env:"UPSTREAM_TIMEOUT" default:"5" description:"Per-request timeout for upstream fetches in seconds"`

	// SEO configuration
	SiteName      string `long:"site-name" env:"SITE_NAME" default:"Decentraland" description:"Site name appended to rewritten page titles"`
	CrawlersFile  string `long:"crawlers-file" env:"CRAWLERS_FILE" description:"Optional YAML file with crawler user-agent signatures (built-in list used when unset)"`
	PostScanLimit int    `long:"post-scan-limit" env:"POST_SCAN_LIMIT" default:"200" description:"Maximum number of posts fetched when looking up a post by slug"`

	// Reference cache configuration
	CacheTTL        int `long:"cache-ttl" env:"CACHE_TTL" default:"300" description:"TTL for cached resolved references in seconds (0 disables the cache)"`
	CacheMaxEntries int `long:"cache-max-entries" env:"CACHE_MAX_ENTRIES" default:"512" description:"Maximum number of cached resolved references"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Blog SEO Gateway/1.0" description:"User agent string for upstream HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		CMSBaseURL:      raw.CMSBaseURL,
		SiteURL:         raw.SiteURL,
		ShellURL:        raw.ShellURL,
		UpstreamTimeout: raw.UpstreamTimeout,
		SiteName:        raw.SiteName,
		CrawlersFile:    raw.CrawlersFile,
		PostScanLimit:   raw.PostScanLimit,
		CacheTTL:        raw.CacheTTL,
		CacheMaxEntries: raw.CacheMaxEntries,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if cfg.ShellURL == "" {
		cfg.ShellURL = cfg.SiteURL + "/index.html"
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
