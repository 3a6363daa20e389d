package evaluator

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/darielli/evochar/core/schemadoc"
	"github.com/darielli/evochar/internal/utils"
	"github.com/darielli/evochar/providers/ai"
)

const responseTemplate = `Reply with XML in exactly this shape:

<response>
  <updates>
    <update>
      <field>path.of.field</field>
      <new>proposed value</new>
      <old>current value, if known</old>
      <reason>short justification</reason>
      <confidence>number between 0 and 1</confidence>
    </update>
  </updates>
</response>

Repeat <update> for each proposed change. If nothing should change, reply
with <response><updates></updates></response>. Do not add prose outside the
XML.`

// buildPrompt assembles the system and user prompts for one evaluation.
func buildPrompt(schema *schemadoc.Schema, req Request) (system, user string) {
	name := req.CharacterName
	if name == "" {
		name = "the character"
	}

	var sys strings.Builder
	sys.WriteString("You maintain the persistent character record for " + name + ".\n")
	sys.WriteString("Given the current record and a recent conversation, propose only the field updates the conversation justifies. Be conservative: no update is better than a speculative one.\n\n")
	sys.WriteString("The record has these fields:\n")
	sys.WriteString(schemadoc.Describe(schema))
	sys.WriteString("\n\n")
	sys.WriteString(responseTemplate)

	var usr strings.Builder
	usr.WriteString("Current record:\n")
	usr.WriteString(utils.JSONToString(req.Record, true))
	usr.WriteString("\n\nRecent conversation:\n")
	usr.WriteString(formatTranscript(req.Transcript))
	if req.Guidance != "" {
		usr.WriteString("\n\nAdditional guidance: " + req.Guidance)
	}

	return sys.String(), usr.String()
}

// formatTranscript renders conversation messages one per line as
// "speaker (role): content".
func formatTranscript(messages []ai.Message) string {
	if len(messages) == 0 {
		return "(no conversation provided)"
	}
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		speaker := msg.Name
		if speaker == "" {
			speaker = string(msg.Role)
		} else {
			speaker += " (" + string(msg.Role) + ")"
		}
		lines = append(lines, speaker+": "+normalizeContent(msg.Content))
	}
	return strings.Join(lines, "\n")
}

// htmlHint matches common formatting tags so only content that actually
// looks like rich HTML goes through conversion.
var htmlHint = regexp.MustCompile(`(?i)</?(p|div|br|span|ul|ol|li|a|b|i|strong|em|blockquote|h[1-6])\b`)

// normalizeContent converts rich HTML chat content to markdown so prompts
// stay readable; plain text passes through untouched, as does anything the
// converter rejects.
func normalizeContent(content string) string {
	if !htmlHint.MatchString(content) {
		return content
	}
	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(markdown)
}
