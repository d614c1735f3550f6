package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetString returns the trimmed value of an environment variable or def when
// it is unset or blank.
func GetString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// GetInt returns def when the variable is unset or not an integer.
func GetInt(name string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil {
		return def
	}
	return n
}

// GetDuration accepts Go duration strings ("5s") and bare integers, which are
// read as seconds.
func GetDuration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

// GetList splits a comma separated variable, dropping blank entries.
func GetList(name string, def []string) []string {
	v := os.Getenv(name)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return SplitList(v)
}

func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
