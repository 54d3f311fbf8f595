package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposePrompt_IncludesContext(t *testing.T) {
	prompt := ComposePrompt(PromptInput{
		Occasion:  "wedding",
		Condition: "Rain",
		TempAvg:   18.2,
		Gender:    "female",
		Age:       30,
		Country:   "India",
		State:     "Maharashtra",
	})

	require.Contains(t, prompt, "for a wedding occasion")
	require.Contains(t, prompt, "Rain weather at 18.2°C")
	require.Contains(t, prompt, "female, age 30 in Maharashtra, India")
	require.Contains(t, prompt, "Strictly no people, no models, no limbs, and no mannequins.")
	require.Contains(t, prompt, "laid flat on a clean, neutral background")
}

func TestComposePrompt_Deterministic(t *testing.T) {
	in := PromptInput{Occasion: "office", Condition: "Cloudy", TempAvg: 21.5, Gender: "male", Country: "Japan", State: "Tokyo"}
	require.Equal(t, ComposePrompt(in), ComposePrompt(in))
}

func TestComposePrompt_GenderDisplay(t *testing.T) {
	cases := []struct {
		gender string
		want   string
	}{
		{"", "for a person"},
		{"prefer_not_to_say", "for a person"},
		{"non_binary", "for a non binary"},
		{"male", "for a male"},
	}
	for _, tc := range cases {
		prompt := ComposePrompt(PromptInput{Occasion: "party", Condition: "Clear", TempAvg: 25, Gender: tc.gender})
		require.Contains(t, prompt, tc.want, "gender %q", tc.gender)
	}
}

func TestComposePrompt_OmitsLocationAndAgeWhenUnknown(t *testing.T) {
	prompt := ComposePrompt(PromptInput{Occasion: "party", Condition: "Clear", TempAvg: 25})
	require.NotContains(t, prompt, " in ")
	require.NotContains(t, prompt, ", age")
}

func TestOutfitDescriptions(t *testing.T) {
	top, bottom := outfitDescriptions("hiking", WeatherSnapshot{Condition: "Snow", TempAvg: -2.5})
	require.Equal(t, "Top suitable for hiking in Snow", top)
	require.Equal(t, "Bottoms tailored for -2.5C weather", bottom)
}

func TestAgeFromDOB(t *testing.T) {
	require.Equal(t, 30, ageFromDOB("1995-03-10", testNow))
	require.Equal(t, 29, ageFromDOB("1995-08-10", testNow))
	require.Zero(t, ageFromDOB("", testNow))
	require.Zero(t, ageFromDOB("not-a-date", testNow))
	require.Zero(t, ageFromDOB("2030-01-01", testNow))
}
