package instance

import (
	"fmt"
	"os"
)

// GetID returns the process identifier used as lock owner prefix and log field.
func GetID() string {
	if id := os.Getenv("STOREFRONT_INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return fmt.Sprintf("%s-%d", host, os.Getpid())
	}
	return "instance-0"
}
