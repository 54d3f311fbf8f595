package outfit

import (
	"fmt"
	"strings"
)

// PromptInput is everything the prompt composer needs.
type PromptInput struct {
	Occasion  string
	Condition string
	TempAvg   float64
	Gender    string
	Age       int // 0 when unknown
	Country   string
	State     string
}

const genderUnspecified = "prefer_not_to_say"

// ComposePrompt builds the generation prompt. It is pure: identical inputs
// always yield the identical string. The flat-lay constraint keeps people and
// mannequins out of the generated image.
func ComposePrompt(in PromptInput) string {
	gender := displayGender(in.Gender)

	age := ""
	if in.Age > 0 {
		age = fmt.Sprintf(", age %d", in.Age)
	}

	location := locationPhrase(in.Country, in.State)

	var b strings.Builder
	fmt.Fprintf(&b, "A stylish, full-body outfit for a %s%s%s for a %s occasion. ", gender, age, location, in.Occasion)
	fmt.Fprintf(&b, "A professional flat lay of %s%s clothing for a %s occasion. ", gender, age, in.Occasion)
	fmt.Fprintf(&b, "The outfit is designed for %s weather at %.1f°C%s. ", in.Condition, in.TempAvg, location)
	fmt.Fprintf(&b, "High-quality %s fashion items laid flat on a clean, neutral background. ", gender)
	b.WriteString("Visible items: [Top Piece] and [Bottom Piece]. ")
	b.WriteString("Strictly no people, no models, no limbs, and no mannequins. ")
	b.WriteString("Only the clothes are shown, neatly arranged from a top-down perspective.")
	return b.String()
}

func displayGender(gender string) string {
	trimmed := strings.TrimSpace(gender)
	if trimmed == "" || trimmed == genderUnspecified {
		return "person"
	}
	return strings.ReplaceAll(trimmed, "_", " ")
}

func locationPhrase(country, state string) string {
	country = strings.TrimSpace(country)
	state = strings.TrimSpace(state)
	switch {
	case state != "" && country != "":
		return fmt.Sprintf(" in %s, %s", state, country)
	case country != "":
		return fmt.Sprintf(" in %s", country)
	default:
		return ""
	}
}

// outfitDescriptions synthesizes the human readable top/bottom text; the
// generation capability itself returns no structured descriptions.
func outfitDescriptions(occasion string, snap WeatherSnapshot) (top, bottom string) {
	top = fmt.Sprintf("Top suitable for %s in %s", occasion, snap.Condition)
	bottom = fmt.Sprintf("Bottoms tailored for %.1fC weather", snap.TempAvg)
	return top, bottom
}
