package itemlist

import (
	"fmt"

	"github.com/on-the-ground/composable_ive_go/dependencies"
)

// FeatureService is the remote capability the item list consults before adding.
type FeatureService struct {
	Test func(n int) (bool, error)
}

// Service is the FeatureService dependency. Live, Test always succeeds;
// in tests it must be overridden.
var Service = dependencies.NewKey("feature_service",
	FeatureService{Test: func(int) (bool, error) { return true, nil }},
	dependencies.WithTestValue(FeatureService{Test: func(int) (bool, error) {
		panic(fmt.Errorf("%w: %s", dependencies.ErrUnimplemented, "feature_service.Test"))
	}}),
)
