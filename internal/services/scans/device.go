package scans

import "strings"

// Классы устройств для аудита.
const (
	DeviceIOS     = "iOS"
	DeviceAndroid = "Android"
	DeviceMobile  = "Mobile"
	DeviceDesktop = "Desktop"
)

var iosTokens = []string{"iphone", "ipad", "ipod"}

// ClassifyDevice derives the audit device class from a User-Agent string.
// Substring tests in fixed priority order: iOS tokens, then Android, then a
// generic mobile marker. First match wins.
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, tok := range iosTokens {
		if strings.Contains(ua, tok) {
			return DeviceIOS
		}
	}
	if strings.Contains(ua, "android") {
		return DeviceAndroid
	}
	if strings.Contains(ua, "mobile") {
		return DeviceMobile
	}
	return DeviceDesktop
}
