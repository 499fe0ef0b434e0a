package cfg

type Cfg struct {
	// HTTP server configuration
	Port string

	// Upstream configuration
	CMSBaseURL      string
	SiteURL         string
	ShellURL        string
	UpstreamTimeout int

	// SEO configuration
	SiteName      string
	CrawlersFile  string
	PostScanLimit int

	// Reference cache configuration
	CacheTTL        int
	CacheMaxEntries int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
