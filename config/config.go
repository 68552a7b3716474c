package config

import (
	"os"
	"strconv"
)

const (
	BuildVersion = "0.3.1"

	NotionAPIBase = "https://api.notion.com"
	NotionVersion = "2022-06-28"
)

func Environment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	return "development"
}

func BugsnagAPIKey() string {
	return os.Getenv("BUGSNAG_API_KEY")
}

// HTTPListenPort reads the single PORT variable that selects the listen
// port, matching the deployment contract of the hosted variants.
func HTTPListenPort() int {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		return 8000
	}
	return port
}
