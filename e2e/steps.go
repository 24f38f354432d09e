package e2e

import (
	"github.com/cucumber/godog"

	"cayley/e2e/steps/common"
	"cayley/e2e/steps/groups"
)

// RegisterSteps registers all step definitions from the step packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	groups.RegisterSteps(ctx, tc)
}
