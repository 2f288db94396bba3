package main

import "flag"

// cliFlags holds the command-line surface. Flags override the corresponding
// config file values.
type cliFlags struct {
	configFile string
	dataFile   string
	browserURL string
	once       bool
}

func parseFlags() cliFlags {
	configFile := flag.String("config", "config.yaml", "Path to the YAML/JSON configuration file.")
	configFileAlias := flag.String("c", "", "Alias for --config")

	dataFile := flag.String("data", "", "Path to the sqlite data file (overrides storage_config.sqlite_db_path).")
	browserURL := flag.String("browser-url", "", "Remote browser DevTools endpoint (overrides renderer_config.browser_url).")
	once := flag.Bool("once", false, "Patrol every target a single time and exit.")
	flag.Parse()

	if *configFileAlias != "" {
		*configFile = *configFileAlias
	}

	return cliFlags{
		configFile: *configFile,
		dataFile:   *dataFile,
		browserURL: *browserURL,
		once:       *once,
	}
}
