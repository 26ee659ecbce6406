// Fixed instructions sent to the hosted model. The classification
// instruction and the stylist prompt pin the exact JSON shape the caller
// decodes; candidate items are serialized as plain text lines because the
// model selects by pattern-matching over text, not by constrained decoding,
// which is why downstream ID filtering is mandatory.
package inference

import (
	"fmt"
	"strings"
)

// classifyInstruction asks the vision model for the five classification
// fields as a JSON object.
const classifyInstruction = `Analyze this clothing item and provide the following information in JSON format:
{
  "name": "brief name of the item",
  "category": "top/bottom/shoes/accessory/outerwear",
  "color": "primary color",
  "description": "detailed description including style, pattern, material",
  "tags": ["array", "of", "relevant", "tags"]
}`

// stylistSystemInstruction frames every composition request.
const stylistSystemInstruction = "You are a fashion stylist. Create outfits from the user's wardrobe that match their request."

// candidateLine renders one catalog item in the fixed line format the
// stylist prompt uses: ID: <id> - <category>: <name> (<color>) - <description>
func candidateLine(c Candidate) string {
	return fmt.Sprintf("ID: %s - %s: %s (%s) - %s", c.ID, c.Category, c.Name, c.Color, c.Description)
}

// buildOutfitPrompt assembles the user message for an outfit composition
// call: the occasion prompt, the candidate list, and the required reply
// shape.
func buildOutfitPrompt(prompt string, candidates []Candidate) string {
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		lines = append(lines, candidateLine(c))
	}

	return fmt.Sprintf(`Create an outfit for: %q

Available clothing items:
%s

Respond with ONLY a JSON object in this format:
{
  "outfit": ["item_id_1", "item_id_2", "item_id_3"],
  "explanation": "brief explanation of why this outfit works"
}

Select 3-5 items that work well together.`, prompt, strings.Join(lines, "\n"))
}
