package config

const (
	defaultExportDir       = "~/.local/share/gordiva/exports"
	defaultCSVDir          = "~/.local/share/gordiva/csv"
	defaultDBDir           = "~/.local/share/gordiva/db"
	defaultXMLCheckinDir   = "~/.local/share/gordiva/xml"
	defaultProxyStoreDir   = "/mnt/gorilla/proxies"
	defaultDaletTmpDir     = "/mnt/dalet/tmp_checkin"
	defaultLogDir          = "~/.local/share/gordiva/logs"
	defaultWatchFolderRoot = "T://DaletStorage/Video_Watch_Folder"
	defaultCheckinLimit    = 500
	defaultCheckinMaxLimit = 10000
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ExportDir:     defaultExportDir,
			CSVDir:        defaultCSVDir,
			DBDir:         defaultDBDir,
			XMLCheckinDir: defaultXMLCheckinDir,
			ProxyStoreDir: defaultProxyStoreDir,
			DaletTmpDir:   defaultDaletTmpDir,
			LogDir:        defaultLogDir,
		},
		Checkin: Checkin{
			WatchFolderRoot: defaultWatchFolderRoot,
			DefaultLimit:    defaultCheckinLimit,
			MaxLimit:        defaultCheckinMaxLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
