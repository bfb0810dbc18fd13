package platform

import "strings"

// Platform identifies the mobile runtime the storefront client runs on.
// Only two values are recognized; there is deliberately no third branch.
type Platform string

const (
	IOS     Platform = "ios"
	Android Platform = "android"
)

// Parse normalizes a raw platform tag. Anything that is not recognizably
// iOS resolves to Android, matching the two-branch catalog behavior.
func Parse(raw string) Platform {
	if strings.EqualFold(strings.TrimSpace(raw), string(IOS)) {
		return IOS
	}
	return Android
}

// Detector answers which platform the current client session belongs to.
// It is an explicit dependency so tests can pin either platform without
// touching process globals.
type Detector interface {
	Platform() Platform
}

// Static is a Detector fixed at construction time.
type Static Platform

func (s Static) Platform() Platform { return Platform(s) }
