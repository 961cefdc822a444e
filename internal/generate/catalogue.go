package generate

// Option is an add-on analysis that becomes one data_table in the report.
type Option struct {
	ID          string
	Title       string
	Columns     string // Column guidance passed to the model verbatim
	HeaderColor string // Optional data_table header_color
	Category    string
	AvailableTo string // all, government, or business
}

// Options is the add-on catalogue, in prompt order.
var Options = []Option{
	{ID: "economic_impact", Title: "Economic Impact Modeling", Columns: "'Metric' (e.g., Job Creation), 'Projected 5-Year Impact', 'Key Assumptions'", Category: "Core Analysis", AvailableTo: "all"},
	{ID: "supply_chain", Title: "Supply Chain & Logistics Analysis", Columns: "'Infrastructure' (e.g., Port Capacity), 'Current State', 'AI Recommendation'", Category: "Core Analysis", AvailableTo: "all"},
	{ID: "risk_assessment", Title: "Comprehensive Risk Assessment", HeaderColor: "rose", Columns: "'Risk Category' (e.g., Geopolitical), 'Risk Level', 'Mitigation Strategy'", Category: "Risk & Governance", AvailableTo: "all"},
	{ID: "workforce_analysis", Title: "Workforce & Skills Gap Analysis", Columns: "'Skill Category', 'Availability', 'Identified Gap', 'Development Action'", Category: "Core Analysis", AvailableTo: "all"},
	{ID: "competitor_analysis", Title: "Competitive Landscape", Columns: "'Competitor', 'Market Share', 'Key Weakness'", Category: "Core Analysis", AvailableTo: "all"},
	{ID: "deal_structuring", Title: "Potential Deal Structuring", Columns: "'Model' (e.g., Joint Venture), 'Key Terms', 'Strategic Rationale'", Category: "Strategic Planning", AvailableTo: "all"},
	{ID: "opportunity_radar", Title: "AI-Driven Opportunity Radar", Columns: "'Adjacent Opportunity', 'Market Size', 'Strategic Fit Score (1-100)'", Category: "Opportunity & Growth", AvailableTo: "all"},
	{ID: "scenario_exploration", Title: `Scenario Exploration ("What-If" Analysis)`, Columns: "'Scenario', 'Likelihood', 'Potential Impact', 'Contingency Plan'", Category: "Strategic Planning", AvailableTo: "all"},
	{ID: "esg_sustainability", Title: "ESG & Sustainability Benchmark", Columns: "'Metric' (e.g., Carbon Intensity), 'Regional Score', 'Global Benchmark', 'AI Recommendation'", Category: "Risk & Governance", AvailableTo: "all"},
	{ID: "funding_finder", Title: "Grant, Fund & Incentive Matching", Columns: "'Funding Source', 'Program Name', 'Eligibility', 'Strategic Fit'", Category: "Opportunity & Growth", AvailableTo: "all"},
	{ID: "policy_impact_simulator", Title: "Policy Impact Simulator", Columns: "'Proposed Policy', 'Projected Economic Impact', 'Sector Affected', 'Confidence Level'", Category: "Opportunity & Growth", AvailableTo: "government"},
	{ID: "ppp_builder", Title: "Public-Private Partnership (PPP) Models", Columns: "'PPP Model' (e.g., BOOT), 'Best Fit For', 'Key Success Factors'", Category: "Strategic Planning", AvailableTo: "government"},
	{ID: "regional_benchmarking", Title: "Regional Performance Benchmarking", Columns: "'Metric' (e.g., FDI Growth), 'Target Region', 'Peer Region 1', 'Peer Region 2'", Category: "Opportunity & Growth", AvailableTo: "all"},
	{ID: "compliance_risk_shield", Title: "Compliance & Regulatory Shield", Columns: "'Compliance Area' (e.g., Data Privacy), 'Key Regulation', 'Status', 'Action Required'", Category: "Risk & Governance", AvailableTo: "government"},
	{ID: "market_entry_playbook", Title: "Market Entry Playbook", Columns: "'Phase' (e.g., Market Validation), 'Key Actions', 'Timeline'", Category: "Strategic Planning", AvailableTo: "business"},
	{ID: "investment_readiness_score", Title: "Investment Readiness Score", Columns: "'Category' (e.g., Financials), 'Readiness Score (1-100)', 'Area for Improvement'", Category: "Opportunity & Growth", AvailableTo: "business"},
	{ID: "local_talent_finder", Title: "Local Talent & Resource Finder", Columns: "'Resource Type' (e.g., University), 'Entity Name', 'Specialization', 'Contact Info'", Category: "Opportunity & Growth", AvailableTo: "all"},
	{ID: "supply_chain_resilience", Title: "Supply Chain Resilience Test", Columns: "'Supply Chain Link', 'Vulnerability', 'Stress Test Scenario', 'Resilience Score (1-100)'", Category: "Risk & Governance", AvailableTo: "business"},
}

// OptionByID looks up a catalogue option.
func OptionByID(id string) (Option, bool) {
	for _, o := range Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Template presets an objective and options for one analysis mode.
type Template struct {
	ID                 string
	Mode               string
	Name               string
	DefaultObjective   string
	PreselectedOptions []string
}

// Templates lists the report templates for both analysis modes.
var Templates = []Template{
	{
		ID: "standard_market_analysis", Mode: ModeMarketAnalysis, Name: "Standard Market Analysis",
		DefaultObjective: "Provide a standard market analysis of the specified target region for the designated industry. Include key economic indicators, growth drivers, primary challenges, and a brief overview of the competitive landscape.",
	},
	{
		ID: "competitive_landscape", Mode: ModeMarketAnalysis, Name: "Competitive Landscape Deep-Dive",
		DefaultObjective:   "Conduct a deep-dive competitive landscape analysis for the specified industry in the target region. Identify the top 3-5 competitors, their market share, strategies, strengths, and weaknesses.",
		PreselectedOptions: []string{"competitor_analysis"},
	},
	{
		ID: "supply_chain_risk", Mode: ModeMarketAnalysis, Name: "Supply Chain & Logistics Assessment",
		DefaultObjective:   "Perform a detailed supply chain and logistics assessment for moving goods related to the specified industry in and out of the target region. Analyze port capacity, transport networks, customs efficiency, and potential risks.",
		PreselectedOptions: []string{"supply_chain", "risk_assessment"},
	},
	{
		ID: "standard_prospectus", Mode: ModePartnerMatchmaking, Name: "Standard Partner Prospectus",
		DefaultObjective: "Create a compelling investment prospectus for the specified target region aimed at attracting foreign partners in the designated industry. Highlight our key strengths, infrastructure, and government incentives.",
	},
	{
		ID: "tech_focused_prospectus", Mode: ModePartnerMatchmaking, Name: "Technology-Focused Prospectus",
		DefaultObjective:   "Generate a technology-focused investment prospectus for the specified target region. Identify our key challenges that can be solved by technology and create a narrative to attract high-tech foreign partners in the designated industry, focusing on the specified key technologies.",
		PreselectedOptions: []string{"workforce_analysis"},
	},
	{
		ID: "g2g_partnership_blueprint", Mode: ModePartnerMatchmaking, Name: "G2G Partnership Blueprint",
		DefaultObjective:   "Develop a strategic blueprint for Government-to-Government (G2G) partnership between our country and the target country, focusing on the specified industry. Identify complementary strengths, opportunities for joint ventures, and policy alignment.",
		PreselectedOptions: []string{"economic_impact", "deal_structuring"},
	},
}

// TemplateByID looks up a report template.
func TemplateByID(id string) (Template, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
