package emotion

// syntheticPhrases is the fixed augmentation set appended to every training
// corpus. Each label carries exactly fifteen short phrases.
var syntheticPhrases = map[string][]string{
	Happy: {
		"I'm feeling great!", "This is fantastic!", "So much joy!",
		"Wonderful experience", "I love this!", "Amazing day!",
		"Feeling blessed", "So grateful", "Excellent news!",
		"I'm over the moon", "Pure happiness", "Life is good",
		"So excited about this", "Having a wonderful time", "This is awesome",
	},
	Sad: {
		"Feeling down", "This is terrible", "So disappointed",
		"Heartbroken", "Miserable day", "Feeling blue",
		"So upset", "Can't stop crying", "Everything is wrong",
		"So depressing", "Feeling low", "Empty inside",
		"Nothing going right", "Feeling hopeless", "So lonely",
	},
	Angry: {
		"This is ridiculous", "I'm furious", "So annoyed",
		"Completely unacceptable", "I hate this", "So frustrating",
		"Making me mad", "Infuriating situation", "I'm livid",
		"This pisses me off", "Unbelievable!", "How dare they",
		"So angry right now", "This makes me rage", "Completely pissed off",
	},
	Stress: {
		"Overwhelmed", "Too much pressure", "Can't handle this",
		"Stressed out", "Anxious feeling", "Pressure building",
		"Too many deadlines", "Burning out", "Panic setting in",
		"Too much to do", "Feeling pressured", "Stressful situation",
		"So much anxiety", "Overloaded with work", "Can't cope anymore",
	},
	Neutral: {
		"Regular day", "Nothing special", "Usual routine",
		"Average day", "Standard procedure", "Normal activities",
		"Typical day", "As expected", "Routine work",
		"Ordinary tasks", "Standard day", "Nothing unusual",
		"Just normal stuff", "Everything is fine", "Nothing to report",
	},
}

// SyntheticExamples returns the augmentation set in canonical label order.
// The returned slice is freshly allocated on every call.
func SyntheticExamples() []Example {
	out := make([]Example, 0, 75)
	for _, label := range Canonical() {
		for _, text := range syntheticPhrases[label] {
			out = append(out, Example{Text: text, Emotion: label})
		}
	}
	return out
}
