package usecase

import (
	"regexp"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

// Outbound agent messages are scanned for document-upload requests so the
// client can render upload controls instead of a bare text box. Field-level
// prompts are derived from the stage the session landed in.

var uploadContextRe = regexp.MustCompile(`(?i)upload|share|provide|submit|send\s*(me|us)?|attach|need.*document|require.*document|please.*document`)

var documentPrompts = []struct {
	re     *regexp.Regexp
	prompt dto.InputPrompt
}{
	{
		re: regexp.MustCompile(`(?i)salary\s*slip|pay\s*slip|salary\s*certificate`),
		prompt: dto.InputPrompt{
			Name:  "salary_slip",
			Kind:  dto.PromptDocument,
			Label: "Salary slips for the last 2 months",
		},
	},
	{
		re: regexp.MustCompile(`(?i)bank\s*statement|salary\s*account\s*statement`),
		prompt: dto.InputPrompt{
			Name:  "bank_statement",
			Kind:  dto.PromptDocument,
			Label: "Primary bank statement for the last 3 months",
		},
	},
}

var stagePrompts = map[string][]dto.InputPrompt{
	valueobject.StageNeedsDiscovery.String(): {
		{Name: "amount", Kind: dto.PromptField, Label: "Loan amount"},
		{Name: "tenure_months", Kind: dto.PromptField, Label: "Tenure in months"},
	},
	valueobject.StageVerifying.String(): {
		{Name: "name", Kind: dto.PromptField, Label: "Full name"},
		{Name: "phone", Kind: dto.PromptField, Label: "Registered phone number"},
		{Name: "address", Kind: dto.PromptField, Label: "Residential address"},
		{Name: "dob", Kind: dto.PromptField, Label: "Date of birth (YYYY-MM-DD)"},
	},
}

// detectPrompts builds the structured InputSpec list for an outbound reply:
// stage-derived field prompts plus any document requests found in the agent
// message.
func detectPrompts(stage valueobject.Stage, agentMsg string) []dto.InputPrompt {
	prompts := append([]dto.InputPrompt(nil), stagePrompts[stage.String()]...)

	if uploadContextRe.MatchString(agentMsg) {
		for _, d := range documentPrompts {
			if d.re.MatchString(agentMsg) {
				prompts = append(prompts, d.prompt)
			}
		}
	}
	return prompts
}
