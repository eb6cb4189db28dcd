package rediskey

import (
	"fmt"

	"rapid-pay-api/internal/config"
)

func prefix() string {
	if config.C.Project.Name == "" {
		return "rapid-pay"
	}
	return config.C.Project.Name
}

// SysConfigKey is the hash caching sys_config rows by config_key.
func SysConfigKey() string {
	return prefix() + ":system:config"
}

// CartKey holds a cart's line items as sku -> qty.
func CartKey(cartID string) string {
	return fmt.Sprintf("%s:cart:%s", prefix(), cartID)
}

// StockKey is the available stock counter for a sku.
func StockKey(sku string) string {
	return fmt.Sprintf("%s:stock:%s", prefix(), sku)
}
