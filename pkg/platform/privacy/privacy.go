// Package privacy holds helpers for reducing identifying data before it
// reaches logs.
package privacy

import (
	"fmt"
	"net"
	"strings"
)

// AnonymizeIP reduces an IP address to a coarse network prefix that is safe
// to log. IPv4 keeps the first three octets, IPv6 the first 48 bits.
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0/24", v4[0], v4[1], v4[2])
	}

	masked := parsed.Mask(net.CIDRMask(48, 128))
	return masked.String() + "/48"
}
