package platform

import (
	"os"

	domplat "github.com/Samerabualsoud/jam3a-payments/internal/domain/platform"
)

// FromEnv builds a Detector from the PLATFORM environment variable.
// Deployments of this service are platform-scoped (one instance serves the
// iOS storefront, another the Android one), so the value is fixed per
// process. Unrecognized or missing values resolve to Android.
func FromEnv() domplat.Detector {
	return domplat.Static(domplat.Parse(os.Getenv("PLATFORM")))
}
