package gateway

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/platform"
)

// Derived gateway statuses shown to operators. The upstream record only
// carries the enabled flag; the console derives the rest from the
// credential bag.
const (
	StatusSetupRequired = "setup_required"
	StatusDisabled      = "disabled"
	StatusActive        = "active"
)

// requiredKeys lists the credential fields a gateway cannot operate
// without.
func requiredKeys(name cnst.GatewayName) []string {
	switch name {
	case cnst.GatewayStripe:
		return []string{"secret_key"}
	case cnst.GatewayPayTabs:
		return []string{"profile_id", "server_key"}
	default:
		return nil
	}
}

// HasCredentials reports whether every required credential field is
// present and non-blank.
func HasCredentials(name cnst.GatewayName, config map[string]any) bool {
	keys := requiredKeys(name)
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if strVal(config, k) == "" {
			return false
		}
	}
	return true
}

// DeriveStatus computes the display status for a gateway record.
func DeriveStatus(g platform.Gateway) string {
	if !HasCredentials(cnst.GatewayName(g.Name), g.Config) {
		return StatusSetupRequired
	}
	if !g.Enabled {
		return StatusDisabled
	}
	return StatusActive
}

// MaskSecrets returns a copy of the credential bag with sensitive string
// values reduced to their last four characters. Values at or under four
// characters are fully masked.
func MaskSecrets(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}
	masked := make(map[string]any, len(config))
	for k, v := range config {
		s, isString := v.(string)
		if !isString || !sensitiveKey(k) || s == "" {
			masked[k] = v
			continue
		}
		masked[k] = maskValue(s)
	}
	return masked
}

func sensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, marker := range []string{"key", "secret", "password", "token"} {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}

func maskValue(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// strVal reads a credential field that may arrive as a string or a JSON
// number (paytabs profile ids are numeric in some payloads).
func strVal(config map[string]any, key string) string {
	v, ok := config[key]
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}
