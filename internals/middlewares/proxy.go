package middlewares

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TrustProxies makes c.IP() read X-Forwarded-For only when the peer is one of
// the listed CIDRs or IPs. An empty list keeps the socket address, so clients
// cannot pick their own limiter key.
func TrustProxies(cfg fiber.Config, cidrs string) fiber.Config {
	var trusted []string
	for _, p := range strings.Split(cidrs, ",") {
		if p = strings.TrimSpace(p); p != "" {
			trusted = append(trusted, p)
		}
	}
	if len(trusted) == 0 {
		cfg.ProxyHeader = ""
		cfg.EnableTrustedProxyCheck = false
		cfg.TrustedProxies = nil
		return cfg
	}
	log.Printf("[INFO] trusting X-Forwarded-For from %v", trusted)
	cfg.ProxyHeader = fiber.HeaderXForwardedFor
	cfg.EnableTrustedProxyCheck = true
	cfg.TrustedProxies = trusted
	return cfg
}
