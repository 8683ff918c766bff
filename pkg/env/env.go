package env

import (
	"os"
	"strings"
)

// Prefix namespaces the storefront's own variables.
const Prefix = "STOREFRONT_"

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Storefront reads STOREFRONT_<name> first, then the bare name, then fallback.
func Storefront(name, fallback string) string {
	return Get(Prefix+name, Get(name, fallback))
}
