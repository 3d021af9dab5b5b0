package compare

import (
	"fmt"
	"strings"
)

const defaultSystemPrompt = "You are a business analyst expert. Provide detailed, well-structured comparisons of companies based on their market position, business model, products/services, and competitive advantages. Use bullet points and clear sections."

// Topics are the numbered areas every comparison covers, in order.
var Topics = []string{
	"Company Overview",
	"Market Position",
	"Key Products/Services",
	"Business Model",
	"Competitive Advantages",
	"Recent Performance",
	"Future Outlook",
}

func buildUserMessage(in Input) string {
	a, b := strings.TrimSpace(in.NameA), strings.TrimSpace(in.NameB)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compare %s and %s. Provide a comprehensive analysis covering:", a, b)
	for i, t := range Topics {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, t)
	}
	sb.WriteString("\n\nMake it informative and easy to understand.")
	if in.Structured {
		sb.WriteString("\n\nFormat: use one Markdown heading (##) per topic. Under each heading write bullet lines of the form")
		fmt.Fprintf(&sb, "\n- <Aspect>: %s: <value>; %s: <value>", a, b)
		sb.WriteString("\nKeep each value short and do not use semicolons inside values.")
	}
	if h := strings.TrimSpace(in.LanguageHint); h != "" {
		sb.WriteString("\nWrite in language: ")
		sb.WriteString(h)
	}
	return sb.String()
}
