package groups

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the e2e context the group steps need.
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	Body() []byte
	StatusCode() int
	GetResponseField(field string) (any, error)
	Save(key, value string)
	Load(key string) (string, bool)
}

// RegisterSteps registers catalog steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	s := &groupSteps{tc: tc}

	ctx.Step(`^I generate the group "([^"]*)" of order (\d+)$`, s.generate)
	ctx.Step(`^the group "([^"]*)" exists$`, s.groupExists)
	ctx.Step(`^I compose "([^"]*)" in "([^"]*)"$`, s.compose)
	ctx.Step(`^I ask where "([^"]*)" sends the vertices of "([^"]*)"$`, s.vertices)
	ctx.Step(`^I fetch the group "([^"]*)"$`, s.fetch)
	ctx.Step(`^the catalog should list "([^"]*)"$`, s.catalogShouldList)
	ctx.Step(`^the group should have (\d+) members$`, s.shouldHaveMembers)
	ctx.Step(`^step (\d+) should be marked as an error$`, s.stepShouldBeError)
	ctx.Step(`^the positions should be "([^"]*)"$`, s.positionsShouldBe)
}

type groupSteps struct {
	tc TestContext
}

func (s *groupSteps) generate(_ context.Context, family string, order int) error {
	if err := s.tc.POST("/api/groups/generate", map[string]any{"family": family, "order": order}); err != nil {
		return err
	}
	return s.rememberID()
}

// groupExists generates the group, tolerating a prior run having stored it.
func (s *groupSteps) groupExists(_ context.Context, name string) error {
	family, raw, ok := strings.Cut(name, "_")
	order, err := strconv.Atoi(raw)
	if !ok || err != nil {
		return fmt.Errorf("group name %q is not of the form F_n", name)
	}
	if err := s.tc.POST("/api/groups/generate", map[string]any{"family": family, "order": order}); err != nil {
		return err
	}
	switch s.tc.StatusCode() {
	case 201:
		return s.rememberID()
	case 409:
		return s.findByName(name)
	default:
		return fmt.Errorf("could not create %s: %d %s", name, s.tc.StatusCode(), s.tc.Body())
	}
}

func (s *groupSteps) compose(_ context.Context, elements, name string) error {
	groupID, err := s.idOf(name)
	if err != nil {
		return err
	}
	var seq []string
	if elements != "" {
		seq = strings.Split(elements, ",")
	}
	return s.tc.POST("/api/groups/"+groupID+"/compose", map[string]any{"elements": seq})
}

func (s *groupSteps) vertices(_ context.Context, element, name string) error {
	groupID, err := s.idOf(name)
	if err != nil {
		return err
	}
	return s.tc.GET("/api/groups/"+groupID+"/vertices?element="+url.QueryEscape(element), nil)
}

func (s *groupSteps) fetch(_ context.Context, name string) error {
	groupID, err := s.idOf(name)
	if err != nil {
		return err
	}
	return s.tc.GET("/api/groups/"+groupID, nil)
}

func (s *groupSteps) catalogShouldList(_ context.Context, name string) error {
	if err := s.tc.GET("/api/groups", nil); err != nil {
		return err
	}
	groups, err := s.list()
	if err != nil {
		return err
	}
	for _, g := range groups {
		if g.Name == name {
			return nil
		}
	}
	return fmt.Errorf("catalog does not list %s", name)
}

func (s *groupSteps) shouldHaveMembers(_ context.Context, n int) error {
	v, err := s.tc.GetResponseField("members")
	if err != nil {
		return err
	}
	members, ok := v.([]any)
	if !ok || len(members) != n {
		return fmt.Errorf("expected %d members, got %v", n, v)
	}
	return nil
}

func (s *groupSteps) stepShouldBeError(_ context.Context, step int) error {
	var resp struct {
		Steps []struct {
			Step  int  `json:"step"`
			Error bool `json:"error"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(s.tc.Body(), &resp); err != nil {
		return err
	}
	if step < 1 || step > len(resp.Steps) {
		return fmt.Errorf("trace has %d steps, no step %d", len(resp.Steps), step)
	}
	if !resp.Steps[step-1].Error {
		return fmt.Errorf("step %d is not marked as an error", step)
	}
	if len(resp.Steps) != step {
		return fmt.Errorf("trace continued past the failing step: %d steps", len(resp.Steps))
	}
	return nil
}

func (s *groupSteps) positionsShouldBe(_ context.Context, want string) error {
	var resp struct {
		Positions []int `json:"positions"`
	}
	if err := json.Unmarshal(s.tc.Body(), &resp); err != nil {
		return err
	}
	got := make([]string, len(resp.Positions))
	for i, p := range resp.Positions {
		got[i] = fmt.Sprint(p)
	}
	if strings.Join(got, ",") != want {
		return fmt.Errorf("expected positions %s, got %s", want, strings.Join(got, ","))
	}
	return nil
}

type groupSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *groupSteps) list() ([]groupSummary, error) {
	var groups []groupSummary
	if err := json.Unmarshal(s.tc.Body(), &groups); err != nil {
		return nil, fmt.Errorf("decode group list: %w", err)
	}
	return groups, nil
}

func (s *groupSteps) rememberID() error {
	if s.tc.StatusCode() != 201 {
		return nil
	}
	var g groupSummary
	if err := json.Unmarshal(s.tc.Body(), &g); err != nil {
		return err
	}
	s.tc.Save(g.Name, g.ID)
	return nil
}

func (s *groupSteps) findByName(name string) error {
	if err := s.tc.GET("/api/groups", nil); err != nil {
		return err
	}
	groups, err := s.list()
	if err != nil {
		return err
	}
	for _, g := range groups {
		if g.Name == name {
			s.tc.Save(name, g.ID)
			return nil
		}
	}
	return fmt.Errorf("%s reported as existing but not listed", name)
}

func (s *groupSteps) idOf(name string) (string, error) {
	if groupID, ok := s.tc.Load(name); ok {
		return groupID, nil
	}
	if err := s.findByName(name); err != nil {
		return "", err
	}
	groupID, _ := s.tc.Load(name)
	return groupID, nil
}
