// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Download Behavior - these keys govern transfer defaults and output handling.
const (
	DownloadDestination     = "download.destination"
	DownloadBackends        = "download.backends"
	DownloadTemplate        = "download.template"
	DownloadPreferredFormat = "download.preferred_format"
	DownloadOverwrite       = "download.overwrite"
	DownloadPostprocess     = "download.postprocess"
	DownloadRecord          = "download.record"
)

// Selection Constraints - these keys set the default quality ceilings applied to flavor ranking.
const (
	SelectionMaxHeight  = "selection.max_height"
	SelectionMaxBitrate = "selection.max_bitrate"
)

// Geolocation - these keys manage the region-restriction hint lookup.
const (
	GeoCheck = "geo.check"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the terminal-facing behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
