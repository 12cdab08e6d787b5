package config

import "strings"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCheckin()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return err
	}
	if c.Paths.CSVDir, err = expandPath(c.Paths.CSVDir); err != nil {
		return err
	}
	if c.Paths.DBDir, err = expandPath(c.Paths.DBDir); err != nil {
		return err
	}
	if c.Paths.XMLCheckinDir, err = expandPath(c.Paths.XMLCheckinDir); err != nil {
		return err
	}
	if c.Paths.ProxyStoreDir, err = expandPath(c.Paths.ProxyStoreDir); err != nil {
		return err
	}
	if c.Paths.DaletTmpDir, err = expandPath(c.Paths.DaletTmpDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeCheckin() {
	c.Checkin.WatchFolderRoot = strings.TrimSpace(c.Checkin.WatchFolderRoot)
	if c.Checkin.WatchFolderRoot == "" {
		c.Checkin.WatchFolderRoot = defaultWatchFolderRoot
	}
	if c.Checkin.DefaultLimit <= 0 {
		c.Checkin.DefaultLimit = defaultCheckinLimit
	}
	if c.Checkin.MaxLimit <= 0 {
		c.Checkin.MaxLimit = defaultCheckinMaxLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
