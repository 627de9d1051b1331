package locale

import "github.com/abhisek/ideaforge/internal/pipeline"

var english = &Catalog{
	Welcome:     "Let's sharpen your idea: %q. We'll go through %d topics together, one question at a time.",
	ExpandIdea:  "Before we start, a few things worth thinking about:",
	Apology:     "Sorry, I had trouble preparing a tailored question. Let's keep going with this one.",
	ModuleDone:  "Great, that gives a clear picture of the %s.",
	NeutralAck:  "Thanks, got it. Let's move on.",
	Celebration: "That's everything! Your idea now covers the problem, the customer, the value, the revenue model, and the competitive edge.",
	TipPrefix:   "Tip:",

	ModuleNames: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "problem definition",
		pipeline.TargetCustomer:       "target customer",
		pipeline.ValueProposition:     "value proposition",
		pipeline.RevenueModel:         "revenue model",
		pipeline.CompetitiveAdvantage: "competitive advantage",
	},
	Questions: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "What specific problem does your idea solve, and who feels that pain most often?",
		pipeline.TargetCustomer:       "Who is your target customer? Describe them as concretely as you can.",
		pipeline.ValueProposition:     "What makes your solution valuable to that customer compared to what they do today?",
		pipeline.RevenueModel:         "How will your idea make money? Who pays, how much, and how often?",
		pipeline.CompetitiveAdvantage: "What will make it hard for competitors to copy you?",
	},
	FollowUps: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "Can you give a concrete example of when this problem happens and what it costs the people involved?",
		pipeline.TargetCustomer:       "Can you narrow that down? Think about age, location, job, or the situation they are in.",
		pipeline.ValueProposition:     "What is the single most important benefit, and how would a customer measure it?",
		pipeline.RevenueModel:         "Can you put rough numbers on it, such as price point and expected number of paying customers?",
		pipeline.CompetitiveAdvantage: "Which existing alternatives come closest, and what exactly do you have that they don't?",
	},

	NarrativeOpening: "The idea: %s.",
	Connectives: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "It starts from a real problem: %s.",
		pipeline.TargetCustomer:       "The people who feel it most are %s.",
		pipeline.ValueProposition:     "What it offers them: %s.",
		pipeline.RevenueModel:         "It makes money through %s.",
		pipeline.CompetitiveAdvantage: "And what sets it apart: %s.",
	},

	Quality: QualityCopy{
		SpecificTerms: []string{
			"problem", "customer", "client", "user", "revenue", "market", "price", "pricing",
			"subscription", "fee", "pay", "cost", "profit", "margin", "competitor", "competition",
			"advantage", "segment", "niche", "value", "solution", "pain", "commission", "partner",
			"exclusive", "commuter", "business", "retention", "acquisition", "b2b", "b2c",
		},
		GenericTerms: []string{"app", "application", "service", "platform", "website", "tool", "system"},

		IssueTooShort:      "The text is very short.",
		IssueBrief:         "The text is brief and leaves out detail.",
		IssueFewWords:      "Only a few words were used.",
		IssueGeneric:       "It relies on generic terms like \"app\" or \"platform\" without saying what is specific.",
		IssueNoSpecifics:   "No concrete business terms were mentioned.",
		SuggestElaborate:   "Describe it in at least one or two full sentences.",
		SuggestMoreDetail:  "Add a concrete example or a number.",
		SuggestWhoAndWhy:   "Say who it is for and why they need it.",
		SuggestBeSpecific:  "Replace generic terms with what the product actually does.",
		SuggestBusinessTie: "Mention the problem, the customer, or how it makes money.",
	},
}
