package scoring

type Band string

const (
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandAdvanced Band = "advanced"
)

var bandRecommendations = map[Band][]string{
	BandLow: {
		"- Focus on stabilizing core business operations before major digital investments",
		"- Consider basic digital tools for immediate efficiency gains",
		"- Start with essential digital tools that have immediate ROI",
		"- Invest in basic digital skills training for your team",
	},
	BandModerate: {
		"- Gradually implement digital solutions while building team capabilities",
		"- Invest in employee digital skills training",
		"- Focus on tools that improve operational efficiency",
		"- Consider implementing automation for repetitive tasks",
	},
	BandAdvanced: {
		"- Accelerate digital transformation initiatives",
		"- Consider advanced automation and AI-powered solutions",
		"- Implement integrated digital systems for maximum efficiency",
		"- Lead industry innovation through digital excellence",
	},
}

// BandFor maps a rounded score onto its readiness band.
func BandFor(score float64, t BandThresholds) Band {
	switch {
	case score < t.Moderate:
		return BandLow
	case score < t.Advanced:
		return BandModerate
	default:
		return BandAdvanced
	}
}

// Recommendations returns a copy of the band's four fixed entries.
func (b Band) Recommendations() []string {
	return append([]string(nil), bandRecommendations[b]...)
}
