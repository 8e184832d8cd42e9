package config

import "os"

type Config struct {
	Port        string
	MCPAddr     string
	DBPath      string
	StoragePath string
	Workers     int
	MutoolPath  string

	ArxivAPIURL  string
	ArxivPDFURL  string
	ArxivHTMLURL string
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		MCPAddr:     getEnv("MCP_ADDR", "localhost:8081"),
		DBPath:      getEnv("DB_PATH", "arxiv.db"),
		StoragePath: getEnv("STORAGE_PATH", "papers"),
		Workers:     getEnvInt("WORKERS", 2),
		MutoolPath:  getEnv("MUTOOL_PATH", "mutool"),

		ArxivAPIURL:  getEnv("ARXIV_API_URL", "https://export.arxiv.org/api/query"),
		ArxivPDFURL:  getEnv("ARXIV_PDF_URL", "https://arxiv.org/pdf"),
		ArxivHTMLURL: getEnv("ARXIV_HTML_URL", "https://export.arxiv.org/html"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
