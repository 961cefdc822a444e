package generate

import (
	"strings"
	"testing"
)

func TestBuildReportPrompt_Options(t *testing.T) {
	p := validParams()
	prompt := BuildReportPrompt(p)

	for _, want := range []string{
		"<document>",
		"<strategic_recommendations>",
		`title "Supply Chain & Logistics Analysis"`,
		`title "Comprehensive Risk Assessment", header_color="rose"`,
		"Foreign Partner Prospectus",
		"Supply Chain & Logistics Assessment",
	} {
		if !strings.Contains(prompt.System, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if strings.Contains(prompt.System, "economic_impact") {
		t.Error("unselected option leaked into system prompt")
	}
}

func TestBuildReportPrompt_UserDetails(t *testing.T) {
	p := validParams()
	prompt := BuildReportPrompt(p)
	for _, want := range []string{
		"- User Name: Maria Lopez",
		"- Target Country: Vietnam",
		"- Selected Options: supply_chain, risk_assessment",
	} {
		if !strings.Contains(prompt.User, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
	if strings.Contains(prompt.User, "Ideal Partner") {
		t.Error("partner profile included for market analysis")
	}
}

func TestBuildReportPrompt_PartnerProfile(t *testing.T) {
	p := validParams()
	p.AnalysisMode = ModePartnerMatchmaking
	p.Persona = PersonaCorporate
	p.KeyTechnologies = []string{"IoT", "Robotics"}
	prompt := BuildReportPrompt(p)

	if !strings.Contains(prompt.User, "- Ideal Partner Tech: IoT, Robotics") {
		t.Error("expected partner technologies")
	}
	if !strings.Contains(prompt.User, "- Ideal Partner Size: Any") {
		t.Error("expected default partner size")
	}
	if !strings.Contains(prompt.System, "Investment Intelligence Brief") {
		t.Error("expected corporate persona framing")
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := BuildAnalysisPrompt(AnalysisRequest{Topic: "Ports", Content: "Capacity is tight.", Region: "ASEAN"})
	if !strings.Contains(prompt.System, "<nad:section") {
		t.Error("expected NADL schema in system prompt")
	}
	if !strings.Contains(prompt.User, "- Region: ASEAN") {
		t.Error("expected region line")
	}
}
