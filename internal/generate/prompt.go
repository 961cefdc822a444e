package generate

import (
	"fmt"
	"strings"
)

const reportSchema = `Your output MUST be a single, well-formed XML document in the Nexus Intelligence Document Language (NIDL) v9.0.
Do NOT use Markdown or any other format. Do NOT wrap the document in code fences. Do NOT use namespaces.
Close every tag. Add no elements beyond this schema.

NIDL v9.0 LAYOUT, in this exact order:
1. <document> (root element)
2. <header>
3. <score_card>
4. <executive_summary>
5. One or more <data_table> elements: the core analysis first, then one per selected option
6. <strategic_recommendations>
7. <source_attribution>

ELEMENTS:
- <header> contains <report_title title="..."/> and <prepared_for name="..." department="..." country="..."/>.
- <score_card> contains one <overall_score value="0-100">. Inside it nest one <investment_tier value="...">,
  and inside that nest one <rationale> holding the explanation text.
- <executive_summary> holds the summary text.
- <data_table title="..."> may carry header_color="teal", "sky" or "rose". Its first <row> holds the column
  headers as <cell> elements; each following <row> holds one body row of <cell> elements. Every row has
  the same number of cells as the header row.
- <strategic_recommendations> holds numbered prose: "1. ... 2. ... 3. ...".
- <source_attribution> lists every URL used, separated by " | ".
- Escape &, < and > in text and attribute values.`

// BuildReportPrompt creates the system and user prompts for a NIDL report.
// Parameters are assumed to be validated.
func BuildReportPrompt(p ReportParameters) Prompt {
	var sys strings.Builder
	sys.WriteString("You are BWGA Nexus AI, a Regional Science Analyst. Ground every finding in established regional science methods and in current data from web search.\n\n")
	sys.WriteString(reportSchema)
	sys.WriteString("\n\n---\nPERSONA:\n")
	if p.Persona == PersonaGovernment {
		sys.WriteString(`The user wants to attract investment. Title the report "Foreign Partner Prospectus". The primary data table is "Recommended Foreign Partners".`)
	} else {
		sys.WriteString(`The user is seeking investment opportunities. Title the report "Investment Intelligence Brief". The primary data table is "Sector Opportunity Analysis".`)
	}
	sys.WriteString("\n")
	if t, ok := TemplateByID(p.ReportTemplateID); ok {
		fmt.Fprintf(&sys, "Structure the report around the %q template: %s\n", t.Name, t.DefaultObjective)
	}

	if len(p.SelectedOptions) > 0 {
		sys.WriteString("\n---\nREQUIRED OPTION TABLES (one <data_table> each, with realistic illustrative data):\n")
		for _, id := range p.SelectedOptions {
			o, ok := OptionByID(id)
			if !ok {
				continue
			}
			if o.HeaderColor != "" {
				fmt.Fprintf(&sys, "- %s: title %q, header_color=%q. Columns: %s.\n", o.ID, o.Title, o.HeaderColor, o.Columns)
			} else {
				fmt.Fprintf(&sys, "- %s: title %q. Columns: %s.\n", o.ID, o.Title, o.Columns)
			}
		}
	}

	var user strings.Builder
	user.WriteString("USER REQUEST DETAILS:\n")
	fmt.Fprintf(&user, "- User Name: %s\n", p.UserName)
	fmt.Fprintf(&user, "- Persona: %s\n", p.Persona)
	fmt.Fprintf(&user, "- User Organization/Dept: %s\n", p.Organization)
	fmt.Fprintf(&user, "- User Country: %s\n", p.Country)
	fmt.Fprintf(&user, "- Analysis Mode: %s\n", p.AnalysisMode)
	fmt.Fprintf(&user, "- Target Country: %s\n", p.TargetCountry)
	fmt.Fprintf(&user, "- Target Region: %s\n", orDefault(p.RegionalCity, "Any"))
	fmt.Fprintf(&user, "- Target Industry: %s\n", p.Industry)
	fmt.Fprintf(&user, "- Strategic Objective: %s\n", p.Objective)
	fmt.Fprintf(&user, "- Selected Tier: %s\n", orDefault(p.SelectedTier.Name, "None"))
	fmt.Fprintf(&user, "- Selected Template: %s\n", orDefault(p.ReportTemplateID, "None"))
	fmt.Fprintf(&user, "- Selected Options: %s\n", joinOr(p.SelectedOptions, "None"))
	if p.AnalysisMode == ModePartnerMatchmaking {
		fmt.Fprintf(&user, "- Ideal Partner Size: %s\n", joinOr(p.CompanySize, "Any"))
		fmt.Fprintf(&user, "- Ideal Partner Tech: %s\n", joinOr(p.KeyTechnologies, "Any"))
		fmt.Fprintf(&user, "- Ideal Partner Markets: %s\n", joinOr(p.TargetMarket, "Any"))
	}
	user.WriteString("\nGenerate the requested intelligence report as one NIDL v9.0 document, including a table for every selected option.")

	return Prompt{System: sys.String(), User: user.String()}
}

const analysisSchema = `Format your entire output as one XML document in the Nexus Analysis Document Language (NADL).
Do NOT use Markdown and do NOT wrap the document in code fences.

<nad:analysis_report xmlns:nad="urn:nexus:nadl">
  <nad:report_title title="..."/>
  <nad:report_subtitle subtitle="..."/>          (optional)
  <nad:section title="...">                       (one or more, in reading order)
    <nad:paragraph>...</nad:paragraph>
    <nad:recommendation>...</nad:recommendation>  (optional, mixed with paragraphs)
  </nad:section>
</nad:analysis_report>

Escape &, < and > in text and attribute values.`

// BuildAnalysisPrompt creates the prompts for a NADL deep-dive on one finding.
func BuildAnalysisPrompt(a AnalysisRequest) Prompt {
	sys := "You are Nexus Symbiosis, an expert strategy consultant. The user picked one finding from an intelligence report " +
		"and wants a deep-dive: unpack it, test what-if scenarios, and propose concrete responses. Use web search for current data.\n\n" +
		analysisSchema

	var user strings.Builder
	user.WriteString("FINDING TO ANALYZE:\n")
	fmt.Fprintf(&user, "- Topic: %s\n", a.Topic)
	fmt.Fprintf(&user, "- Original Finding: %s\n", a.Content)
	if a.Region != "" {
		fmt.Fprintf(&user, "- Region: %s\n", a.Region)
	}
	user.WriteString("\nProduce the deep-dive analysis now.")
	return Prompt{System: sys, User: user.String()}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}
