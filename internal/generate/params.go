package generate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Analysis modes.
const (
	ModePartnerMatchmaking = "partner_matchmaking"
	ModeMarketAnalysis     = "market_analysis"
)

// Personas.
const (
	PersonaGovernment   = "Government Agency"
	PersonaCorporate    = "Corporate & Financial Sector"
	PersonaMultilateral = "Multi-lateral & Development Org"
)

const (
	maxObjectiveLength   = 2000
	maxProfileFieldItems = 10
)

// Tier is the purchased report depth.
type Tier struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// ReportParameters is everything the report prompt is built from.
type ReportParameters struct {
	AnalysisMode     string   `json:"analysis_mode"`
	ReportTemplateID string   `json:"report_template_id,omitempty"`
	UserName         string   `json:"user_name"`
	Organization     string   `json:"organization"`
	Country          string   `json:"country"`
	Persona          string   `json:"persona"`
	TargetCountry    string   `json:"target_country"`
	RegionalCity     string   `json:"regional_city"`
	Industry         string   `json:"industry"`
	CompanySize      []string `json:"company_size,omitempty"`
	KeyTechnologies  []string `json:"key_technologies,omitempty"`
	TargetMarket     []string `json:"target_market,omitempty"`
	SelectedTier     Tier     `json:"selected_tier"`
	Objective        string   `json:"objective"`
	SelectedOptions  []string `json:"selected_options,omitempty"`
}

// ErrInvalidParameters matches every parameter validation failure.
var ErrInvalidParameters = errors.New("invalid report parameters")

var injectionPattern = regexp.MustCompile(
	`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
		`act\s+as\s+|pretend\s+|forget\s+(everything|all)|override|` +
		`new\s+instructions)`,
)

// Validate checks required fields and enums, drops duplicate options, and
// rejects instruction-like text in the free-text fields.
func (p *ReportParameters) Validate() error {
	p.UserName = strings.TrimSpace(p.UserName)
	p.Organization = strings.TrimSpace(p.Organization)
	p.Country = strings.TrimSpace(p.Country)
	p.TargetCountry = strings.TrimSpace(p.TargetCountry)
	p.RegionalCity = strings.TrimSpace(p.RegionalCity)
	p.Industry = strings.TrimSpace(p.Industry)
	p.Objective = strings.TrimSpace(p.Objective)

	var missing []string
	for _, f := range []struct{ name, v string }{
		{"user_name", p.UserName},
		{"organization", p.Organization},
		{"country", p.Country},
		{"target_country", p.TargetCountry},
		{"industry", p.Industry},
		{"objective", p.Objective},
	} {
		if f.v == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidParameters, strings.Join(missing, ", "))
	}

	switch p.AnalysisMode {
	case ModePartnerMatchmaking, ModeMarketAnalysis:
	default:
		return fmt.Errorf("%w: unknown analysis_mode %q", ErrInvalidParameters, p.AnalysisMode)
	}
	switch p.Persona {
	case PersonaGovernment, PersonaCorporate, PersonaMultilateral:
	default:
		return fmt.Errorf("%w: unknown persona %q", ErrInvalidParameters, p.Persona)
	}
	if p.ReportTemplateID != "" {
		if _, ok := TemplateByID(p.ReportTemplateID); !ok {
			return fmt.Errorf("%w: unknown report_template_id %q", ErrInvalidParameters, p.ReportTemplateID)
		}
	}

	if len(p.Objective) > maxObjectiveLength {
		return fmt.Errorf("%w: objective longer than %d bytes", ErrInvalidParameters, maxObjectiveLength)
	}
	for _, s := range []string{p.Objective, p.UserName, p.Organization, p.RegionalCity, p.Industry} {
		if injectionPattern.MatchString(s) {
			return fmt.Errorf("%w: free text contains instruction-like phrases", ErrInvalidParameters)
		}
	}

	seen := make(map[string]bool, len(p.SelectedOptions))
	opts := p.SelectedOptions[:0]
	for _, id := range p.SelectedOptions {
		if _, ok := OptionByID(id); !ok {
			return fmt.Errorf("%w: unknown option %q", ErrInvalidParameters, id)
		}
		if !seen[id] {
			seen[id] = true
			opts = append(opts, id)
		}
	}
	p.SelectedOptions = opts

	// Limit partner profile lists.
	if len(p.CompanySize) > maxProfileFieldItems {
		p.CompanySize = p.CompanySize[:maxProfileFieldItems]
	}
	if len(p.KeyTechnologies) > maxProfileFieldItems {
		p.KeyTechnologies = p.KeyTechnologies[:maxProfileFieldItems]
	}
	if len(p.TargetMarket) > maxProfileFieldItems {
		p.TargetMarket = p.TargetMarket[:maxProfileFieldItems]
	}
	return nil
}

// AnalysisRequest asks for a NADL deep-dive on one finding.
type AnalysisRequest struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
	Region  string `json:"region,omitempty"`
}

// Validate checks an analysis request.
func (a *AnalysisRequest) Validate() error {
	a.Topic = strings.TrimSpace(a.Topic)
	a.Content = strings.TrimSpace(a.Content)
	if a.Topic == "" || a.Content == "" {
		return fmt.Errorf("%w: topic and content are required", ErrInvalidParameters)
	}
	if injectionPattern.MatchString(a.Topic) {
		return fmt.Errorf("%w: free text contains instruction-like phrases", ErrInvalidParameters)
	}
	return nil
}
