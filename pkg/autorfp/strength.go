package autorfp

// ProfileFacts is what profile strength is computed from.
type ProfileFacts struct {
	Description    string
	Website        string
	Services       int
	Certifications int
	Documents      int
	TeamMembers    int
	Playbooks      int
}

type StrengthItem struct {
	Key      string `json:"key"`
	Weight   int    `json:"weight"`
	Complete bool   `json:"complete"`
	Hint     string `json:"hint,omitempty"`
}

type ProfileStrength struct {
	Score int            `json:"score"`
	Items []StrengthItem `json:"items"`
	// Hints for the items still missing, heaviest first
	Missing []string `json:"missing"`
}

// Weights add up to 100.
var strengthWeights = []struct {
	key    string
	weight int
	hint   string
	done   func(ProfileFacts) bool
}{
	{"description", 20, "Add a company description of at least a few sentences", func(f ProfileFacts) bool { return len([]rune(f.Description)) >= 50 }},
	{"documents", 20, "Upload capability statements, resumes or case studies", func(f ProfileFacts) bool { return f.Documents > 0 }},
	{"services", 15, "List the services you offer", func(f ProfileFacts) bool { return f.Services > 0 }},
	{"teamMembers", 15, "Add team members with roles and rates", func(f ProfileFacts) bool { return f.TeamMembers > 0 }},
	{"website", 10, "Add your company website", func(f ProfileFacts) bool { return f.Website != "" }},
	{"certifications", 10, "List certifications your company holds", func(f ProfileFacts) bool { return f.Certifications > 0 }},
	{"playbooks", 10, "Create an industry playbook to tailor generated proposals", func(f ProfileFacts) bool { return f.Playbooks > 0 }},
}

// ScoreProfile is monotonic: completing an item never lowers the score.
func ScoreProfile(f ProfileFacts) ProfileStrength {
	out := ProfileStrength{
		Items:   make([]StrengthItem, 0, len(strengthWeights)),
		Missing: []string{},
	}

	for _, w := range strengthWeights {
		item := StrengthItem{Key: w.key, Weight: w.weight, Complete: w.done(f)}
		if item.Complete {
			out.Score += w.weight
		} else {
			item.Hint = w.hint
			out.Missing = append(out.Missing, w.hint)
		}
		out.Items = append(out.Items, item)
	}

	return out
}
