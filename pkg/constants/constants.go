// Package constants defines magic numbers and default values used throughout minireq
package constants

import "time"

// Timeouts
const (
	DefaultTimeout     = 30 * time.Second
	DefaultConnTimeout = 10 * time.Second
	DefaultDNSTimeout  = 5 * time.Second
)

// Default ports by target scheme
const (
	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
)

// Default ports by proxy scheme
const (
	DefaultProxyHTTPPort  = 8080
	DefaultProxyHTTPSPort = 443
	DefaultSOCKS5Port     = 1080
)

// HTTP limits
const (
	MaxHeaderBytes   = 64 * 1024
	MaxContentLength = 1024 * 1024 * 1024 * 1024 // 1TB
)
