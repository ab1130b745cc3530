package extraction

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the model as a parser rather than a chat partner.
const SystemPrompt = "You are a smart grocery list parser. You answer with JSON only."

const promptTemplate = `The user will give you a transcription of a spoken grocery list.
It may be in English, Hindi, Odia, Bengali, Tamil, Telugu, Malayalam, Kannada or Marathi, or a mix of them.

Your job is to:
1. Extract only grocery items with their quantities like "1 kg", "2 packets", "500 gm", "6 pieces", "1 litre", etc.
2. If no quantity is spoken for an item, use "1 unit".
3. Return ONLY a JSON array in exactly this format, with no explanation and no markdown code fence:
[
  { "item": "<item_name>", "quantity": "<quantity>" }
]

Here is the transcription:
"%s"
`

// BuildPrompt embeds transcript, in double quotes, in the extraction
// instructions.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(transcript))
}
