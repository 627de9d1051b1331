package questiongen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

const systemPrompt = `You are an experienced startup mentor helping a founder refine a business idea, one topic at a time.

Rules:
- Ask exactly one open question about the given topic. Do not answer it yourself.
- Tailor the question to the idea and to what the founder has already said. Build on their words.
- Keep the question under 40 words, friendly and concrete.
- Optionally add one short educational tip that teaches a concept relevant to the question (for example what a customer segment or a moat is).
- Optionally suggest up to three narrower follow-up questions.
- Do not repeat any question from the "already asked" list.
- Write everything in {{.Language}}.`

const followUpSystemPrompt = `You are an experienced startup mentor. The founder's last answer on a topic was incomplete.

Rules:
- Ask exactly one narrower question on the same topic that targets what the answer left out.
- Refer to something specific the founder said.
- Keep it under 30 words.
- Write it in {{.Language}}.`

var (
	systemTemplate   = template.Must(template.New("system").Parse(systemPrompt))
	followUpTemplate = template.Must(template.New("follow-up-system").Parse(followUpSystemPrompt))
)

var userTemplate = template.Must(template.New("user").Parse(`Idea: {{.OriginalIdea}}
Topic: {{.Topic}}

Conversation so far:
{{if .Context}}{{.Context}}{{else}}None{{end}}

Already asked:
{{.Asked}}`))

var followUpUserTemplate = template.Must(template.New("follow-up-user").Parse(`Idea: {{.OriginalIdea}}
Topic: {{.Topic}}

Conversation so far:
{{if .Context}}{{.Context}}{{else}}None{{end}}

Latest answer on this topic: {{.Answer}}
{{if .Insights}}What is missing: {{.Insights}}{{end}}`))

type promptData struct {
	Language     string
	OriginalIdea string
	Topic        string
	Context      string
	Asked        string
	Answer       string
	Insights     string
}

func newPromptData(in Input, cfg Config) promptData {
	return promptData{
		Language:     in.Locale.LanguageName(),
		OriginalIdea: in.OriginalIdea,
		Topic:        topicName(in),
		Context:      trimContext(in.Context, cfg.MaxContextChars),
		Asked:        buildAsked(in.PriorQuestions, cfg.MaxPriorQuestions),
	}
}

func render(t *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// topicName renders the module id as words for the prompt.
func topicName(in Input) string {
	return strings.ReplaceAll(string(in.Module), "_", " ")
}

// trimContext keeps the most recent max bytes of the conversation,
// cutting at a line boundary.
func trimContext(ctx string, max int) string {
	if max <= 0 || len(ctx) <= max {
		return ctx
	}
	cut := ctx[len(ctx)-max:]
	if i := strings.IndexByte(cut, '\n'); i >= 0 {
		cut = cut[i+1:]
	}
	return "(earlier conversation omitted)\n" + cut
}

// buildAsked formats prior questions for the prompt, keeping the most
// recent max.
func buildAsked(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
